package certificate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatPDF = "pdf"
)

// jpegQuality is the fixed quality setting for JPEG output.
const jpegQuality = 90

// pdfEpoch pins the PDF creation/modification dates so conversion stays
// byte-deterministic. gofpdf treats the zero time as "now", hence Unix(0, 0).
var pdfEpoch = time.Unix(0, 0).UTC()

// IsSupportedFormat reports whether format is one of png, jpg or pdf.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatPNG, FormatJPG, FormatPDF:
		return true
	}
	return false
}

// ContentType returns the MIME type for a stored certificate format.
func ContentType(format string) string {
	switch format {
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// ToFormat converts the composited raster (PNG bytes) into the requested
// final format. Pure and stateless: identical input and format produce
// identical output bytes.
func ToFormat(rasterBytes []byte, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return reencode(rasterBytes, imaging.PNG)
	case FormatJPG:
		return reencode(rasterBytes, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case FormatPDF:
		return wrapPDF(rasterBytes)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}

func reencode(rasterBytes []byte, format imaging.Format, opts ...imaging.EncodeOption) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(rasterBytes))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return nil, fmt.Errorf("encode %v: %w", format, err)
	}
	return buf.Bytes(), nil
}

// wrapPDF embeds the raster as the sole page of a landscape A4 document,
// scaled to fit while preserving aspect ratio, centered.
func wrapPDF(rasterBytes []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(rasterBytes))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	imgW := float64(img.Bounds().Dx())
	imgH := float64(img.Bounds().Dy())
	if imgW <= 0 || imgH <= 0 {
		return nil, fmt.Errorf("raster has empty dimensions")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	const margin = 10.0
	availW := pageW - 2*margin
	availH := pageH - 2*margin

	scale := availW / imgW
	if imgH*scale > availH {
		scale = availH / imgH
	}
	drawW := imgW * scale
	drawH := imgH * scale
	x := (pageW - drawW) / 2
	y := (pageH - drawH) / 2

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, bytes.NewReader(rasterBytes))
	pdf.ImageOptions("certificate", x, y, drawW, drawH, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
