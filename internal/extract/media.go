package extract

import (
	"encoding/base64"
	"net/http"
	"regexp"
)

const (
	// minBase64Len is the shortest base64 run the fallback scan considers.
	minBase64Len = 100

	// minDecodedLen is the size floor for fallback matches: shorter decoded
	// blobs are overwhelmingly ids, hashes, or tokens rather than media.
	minDecodedLen = 1000
)

var (
	// dataURLPattern matches inline data URLs: "data:" mediatype ";base64," payload.
	dataURLPattern = regexp.MustCompile(`data:([A-Za-z0-9.+-]+/[A-Za-z0-9.+-]+);base64,([A-Za-z0-9+/]+={0,2})`)

	// rawBase64Pattern matches standalone base64-alphabet runs. Used only
	// when no data URL is present: some servers return bare base64 blobs
	// with no wrapper at all.
	rawBase64Pattern = regexp.MustCompile(`[A-Za-z0-9+/]{100,}={0,2}`)
)

// ScanMedia locates embedded binary blobs in a raw payload, preserving
// encounter order. Data URLs are authoritative when present; the raw-base64
// fallback only runs when the payload carries none, mirroring the behavior of
// servers that skip the data-URL wrapper entirely.
//
// The scan is textual rather than structural: base64 and data-URL characters
// never require JSON escaping, so matching the raw body sees through any
// depth of JSON-in-text nesting.
func ScanMedia(raw []byte) []Media {
	var media []Media

	for _, match := range dataURLPattern.FindAllSubmatch(raw, -1) {
		decoded, err := decodeBase64(string(match[2]))
		if err != nil {
			continue
		}
		media = append(media, Media{
			MediaType: string(match[1]),
			Data:      decoded,
		})
	}

	if len(media) > 0 {
		return media
	}

	for _, match := range rawBase64Pattern.FindAll(raw, -1) {
		if len(match) < minBase64Len {
			continue
		}
		decoded, err := decodeBase64(string(match))
		if err != nil || len(decoded) < minDecodedLen {
			continue
		}
		media = append(media, Media{
			MediaType: http.DetectContentType(decoded),
			Data:      decoded,
		})
	}

	return media
}

// decodeBase64 accepts both padded and unpadded standard encoding.
func decodeBase64(s string) ([]byte, error) {
	if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
