package extract

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// pngBlob builds a blob of the given size that sniffs as image/png.
func pngBlob(size int) []byte {
	blob := make([]byte, size)
	copy(blob, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	for i := 8; i < size; i++ {
		blob[i] = byte(i % 251)
	}
	return blob
}

func TestScanMedia_DataURL(t *testing.T) {
	t.Parallel()

	blob := pngBlob(2000)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(blob)

	payload, err := json.Marshal(map[string]any{
		"content": []map[string]any{
			{"text": fmt.Sprintf(`{"image":{"data":"%s"}}`, dataURL)},
		},
	})
	require.NoError(t, err)

	media := ScanMedia(payload)
	require.Len(t, media, 1)
	require.Equal(t, "image/png", media[0].MediaType)
	require.Len(t, media[0].Data, 2000)
	require.True(t, bytes.Equal(blob, media[0].Data))
}

func TestScanMedia_MultipleDataURLsInOrder(t *testing.T) {
	t.Parallel()

	first := pngBlob(1500)
	second := pngBlob(2500)

	payload := fmt.Sprintf(
		`{"thumbnail":"data:image/png;base64,%s","image":"data:image/jpeg;base64,%s"}`,
		base64.StdEncoding.EncodeToString(first),
		base64.StdEncoding.EncodeToString(second),
	)

	media := ScanMedia([]byte(payload))
	require.Len(t, media, 2)
	require.Equal(t, "image/png", media[0].MediaType)
	require.Len(t, media[0].Data, 1500)
	require.Equal(t, "image/jpeg", media[1].MediaType)
	require.Len(t, media[1].Data, 2500)
}

func TestScanMedia_RawBase64Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		blobSize int
		want     int
	}{
		{
			// ~150 base64 chars decode to ~112 bytes, under the floor.
			name:     "below size floor is not captured",
			blobSize: 112,
			want:     0,
		},
		{
			name:     "above size floor is captured",
			blobSize: 2000,
			want:     1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			encoded := base64.StdEncoding.EncodeToString(pngBlob(tc.blobSize))
			require.GreaterOrEqual(t, len(encoded), 150)

			payload := fmt.Sprintf(`{"image_data":"%s"}`, encoded)

			media := ScanMedia([]byte(payload))
			require.Len(t, media, tc.want)
			if tc.want == 1 {
				require.Len(t, media[0].Data, tc.blobSize)
				require.Equal(t, "image/png", media[0].MediaType)
			}
		})
	}
}

func TestScanMedia_DataURLSuppressesFallback(t *testing.T) {
	t.Parallel()

	blob := pngBlob(2000)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(blob)
	payload := fmt.Sprintf(`{"image":"%s"}`, dataURL)

	// The base64 run inside the data URL must not be re-captured by the
	// fallback scan.
	media := ScanMedia([]byte(payload))
	require.Len(t, media, 1)
}

func TestScanMedia_NoMedia(t *testing.T) {
	t.Parallel()

	media := ScanMedia([]byte(`{"content":[{"text":"no media here"}]}`))
	require.Empty(t, media)
}
