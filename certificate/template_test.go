package certificate

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestTemplate writes a plain background PNG to a temp dir and returns
// its path.
func writeTestTemplate(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	bg := color.NRGBA{R: 0xF4, G: 0xEF, B: 0xE4, A: 0xFF}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}

	path := filepath.Join(t.TempDir(), "template.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(writeTestTemplate(t, 1100, 780))
	require.NoError(t, err)
	return r
}

func TestNewTemplateRendererMissingAsset(t *testing.T) {
	_, err := NewTemplateRenderer(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, ErrTemplateAsset)
}

func TestNewTemplateRendererCorruptAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := NewTemplateRenderer(path)
	assert.ErrorIs(t, err, ErrTemplateAsset)
}

func TestRenderDeterministic(t *testing.T) {
	r := newTestRenderer(t)

	first, err := r.Render("Ada Lovelace", "Intro to Computing", "January 5, 2026")
	require.NoError(t, err)
	second, err := r.Render("Ada Lovelace", "Intro to Computing", "January 5, 2026")
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "same inputs must produce identical raster bytes")
}

func TestRenderMatchesTemplateDimensions(t *testing.T) {
	r := newTestRenderer(t)

	raster, err := r.Render("Ada Lovelace", "Intro to Computing", "January 5, 2026")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raster))
	require.NoError(t, err)
	assert.Equal(t, 1100, img.Bounds().Dx())
	assert.Equal(t, 780, img.Bounds().Dy())
}

func TestRenderDrawsText(t *testing.T) {
	r := newTestRenderer(t)

	blank, err := r.Render("", "", "")
	require.NoError(t, err)
	withName, err := r.Render("Ada Lovelace", "", "")
	require.NoError(t, err)
	otherName, err := r.Render("Grace Hopper", "", "")
	require.NoError(t, err)

	assert.False(t, bytes.Equal(blank, withName), "drawing a name must change pixels")
	assert.False(t, bytes.Equal(withName, otherName), "different names must render differently")
}

func TestRenderFitsLongStrings(t *testing.T) {
	r := newTestRenderer(t)

	long := "An Exhaustively Comprehensive Introduction To Distributed Systems Engineering And Operations"
	raster, err := r.Render("Maximilian Bartholomew Featherstonehaugh-Smythe III", long, "September 30, 2026")
	require.NoError(t, err)

	// Oversized strings are fitted by stepping the face down, never by failing.
	img, err := png.Decode(bytes.NewReader(raster))
	require.NoError(t, err)
	assert.Equal(t, 1100, img.Bounds().Dx())
}

func TestSanitizeOverlayText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Ada Lovelace", want: "Ada Lovelace"},
		{name: "collapses whitespace", in: "  Ada   Lovelace  ", want: "Ada Lovelace"},
		{name: "strips newlines", in: "Ada\nLovelace", want: "Ada Lovelace"},
		{name: "strips tabs and control codes", in: "Ada\tLove\x00lace\x07", want: "Ada Love lace"},
		{name: "markup passes through as glyphs", in: "<b>Ada</b> & \"Lovelace\"", want: "<b>Ada</b> & \"Lovelace\""},
		{name: "empty", in: "", want: ""},
		{name: "only control", in: "\x00\x1b\r\n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeOverlayText(tt.in))
		})
	}
}

func TestFormatCompletionDate(t *testing.T) {
	assert.Equal(t, "January 5, 2026", FormatCompletionDate(time.Date(2026, time.January, 5, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "December 31, 2025", FormatCompletionDate(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
