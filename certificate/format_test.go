package certificate

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRaster returns PNG bytes of a small patterned image.
func testRaster(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0x40, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIsSupportedFormat(t *testing.T) {
	for _, f := range []string{FormatPNG, FormatJPG, FormatPDF} {
		assert.True(t, IsSupportedFormat(f), f)
	}
	for _, f := range []string{"", "gif", "PNG", "jpeg", "docx"} {
		assert.False(t, IsSupportedFormat(f), f)
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(FormatPNG))
	assert.Equal(t, "image/jpeg", ContentType(FormatJPG))
	assert.Equal(t, "application/pdf", ContentType(FormatPDF))
}

func TestToFormatPNGPreservesDimensions(t *testing.T) {
	raster := testRaster(t, 320, 200)

	out, err := ToFormat(raster, FormatPNG)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestToFormatJPG(t *testing.T) {
	raster := testRaster(t, 320, 200)

	out, err := ToFormat(raster, FormatJPG)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestToFormatPDFSinglePage(t *testing.T) {
	raster := testRaster(t, 320, 200)

	out, err := ToFormat(raster, FormatPDF)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.True(t, bytes.Contains(out, []byte("/Count 1")), "document must have exactly one page")
}

func TestToFormatDeterministic(t *testing.T) {
	raster := testRaster(t, 320, 200)

	for _, format := range []string{FormatPNG, FormatJPG, FormatPDF} {
		t.Run(format, func(t *testing.T) {
			first, err := ToFormat(raster, format)
			require.NoError(t, err)
			second, err := ToFormat(raster, format)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(first, second), "identical input must convert to identical bytes")
		})
	}
}

func TestToFormatUnsupported(t *testing.T) {
	raster := testRaster(t, 10, 10)

	_, err := ToFormat(raster, "gif")
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestToFormatRejectsGarbageRaster(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatJPG, FormatPDF} {
		_, err := ToFormat([]byte("definitely not a PNG"), format)
		assert.Error(t, err, format)
	}
}
