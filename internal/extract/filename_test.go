package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	tests := []struct {
		name      string
		tool      string
		index     int
		total     int
		mediaType string
		want      string
	}{
		{
			name:      "single blob",
			tool:      "generate_image",
			index:     0,
			total:     1,
			mediaType: "image/png",
			want:      "20260314_150926_generate_image_main.png",
		},
		{
			name:      "multiple blobs are numbered",
			tool:      "generate_image",
			index:     1,
			total:     3,
			mediaType: "image/jpeg",
			want:      "20260314_150926_generate_image_media_2.jpg",
		},
		{
			name:      "unknown media type falls back to bin",
			tool:      "render",
			index:     0,
			total:     1,
			mediaType: "application/x-custom",
			want:      "20260314_150926_render_main.bin",
		},
		{
			name:      "media type parameters are stripped",
			tool:      "render",
			index:     0,
			total:     1,
			mediaType: "image/png; charset=utf-8",
			want:      "20260314_150926_render_main.png",
		},
		{
			name:      "unsafe characters collapse to underscores",
			tool:      "my tool / v2!",
			index:     0,
			total:     1,
			mediaType: "image/png",
			want:      "20260314_150926_my_tool_v2_main.png",
		},
		{
			name:      "empty tool name",
			tool:      "///",
			index:     0,
			total:     1,
			mediaType: "image/png",
			want:      "20260314_150926_output_main.png",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Filename(now, tc.tool, tc.index, tc.total, tc.mediaType)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSanitize_CapsLength(t *testing.T) {
	t.Parallel()

	long := sanitize("abcdefghijklmnopqrstuvwxyz_abcdefghijklmnopqrstuvwxyz")
	require.LessOrEqual(t, len(long), 30)
}
