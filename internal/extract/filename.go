package extract

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// mediaExtensions maps common media types to file extensions for saved blobs.
var mediaExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"audio/mpeg": ".mp3",
	"audio/wav":  ".wav",
	"video/mp4":  ".mp4",
	"application/pdf": ".pdf",
}

// Filename builds a filesystem-safe name for a saved media blob:
// {timestamp}_{tool}_{index suffix}{ext}. The tool name is reduced to
// alphanumerics joined by underscores and capped so paths stay short.
func Filename(now time.Time, tool string, index, total int, mediaType string) string {
	timestamp := now.Format("20060102_150405")

	suffix := "main"
	if total > 1 {
		suffix = fmt.Sprintf("media_%d", index+1)
	}

	ext, ok := mediaExtensions[normalizeMediaType(mediaType)]
	if !ok {
		ext = ".bin"
	}

	return fmt.Sprintf("%s_%s_%s%s", timestamp, sanitize(tool), suffix, ext)
}

// sanitize keeps alphanumerics, collapses everything else into single
// underscores, and caps the result at 30 characters.
func sanitize(s string) string {
	var fields []string
	field := strings.Builder{}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			field.WriteRune(r)
			continue
		}
		if field.Len() > 0 {
			fields = append(fields, field.String())
			field.Reset()
		}
	}
	if field.Len() > 0 {
		fields = append(fields, field.String())
	}

	clean := strings.Join(fields, "_")
	if clean == "" {
		clean = "output"
	}
	if len(clean) > 30 {
		clean = clean[:30]
	}
	return clean
}

// normalizeMediaType strips any parameters, e.g. "image/png; charset=utf-8".
func normalizeMediaType(mt string) string {
	if idx := strings.IndexByte(mt, ';'); idx >= 0 {
		mt = mt[:idx]
	}
	return strings.TrimSpace(strings.ToLower(mt))
}
