package certificate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
	"time"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fixed anchor layout, expressed as fractions of the template height so the
// design survives a re-exported background of a different resolution.
const (
	nameAnchorY   = 0.52
	courseAnchorY = 0.66
	dateAnchorY   = 0.82

	nameFontSize   = 64.0
	courseFontSize = 40.0
	dateFontSize   = 26.0

	// text may occupy at most this fraction of the template width
	maxTextWidthRatio = 0.80
	minFontSize       = 16.0
)

var (
	textColor    = color.NRGBA{R: 0x1B, G: 0x2A, B: 0x4A, A: 0xFF} // deep navy
	outlineColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// TemplateRenderer composites student name, course name and completion date
// onto the fixed certificate background. Rendering is deterministic: same
// strings in, same PNG bytes out.
type TemplateRenderer struct {
	background image.Image
	boldFont   *opentype.Font
	bodyFont   *opentype.Font
}

// NewTemplateRenderer loads the background template from disk and parses the
// embedded fonts. A missing or corrupt template is a deployment defect and
// returns ErrTemplateAsset.
func NewTemplateRenderer(templatePath string) (*TemplateRenderer, error) {
	f, err := os.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateAsset, err)
	}
	defer f.Close()

	background, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateAsset, err)
	}

	boldFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	bodyFont, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse body font: %w", err)
	}

	return &TemplateRenderer{
		background: background,
		boldFont:   boldFont,
		bodyFont:   bodyFont,
	}, nil
}

// Render composites the three display strings onto the background and
// returns the raster as PNG bytes. The certificate ID is deliberately not
// drawn on the face; it lives in the QR code and the backing record.
func (r *TemplateRenderer) Render(studentName, courseName, completionDateDisplay string) ([]byte, error) {
	bounds := r.background.Bounds()
	canvas := image.NewNRGBA(bounds)
	draw.Draw(canvas, bounds, r.background, bounds.Min, draw.Src)

	lines := []struct {
		text     string
		font     *opentype.Font
		fontSize float64
		anchorY  float64
	}{
		{sanitizeOverlayText(studentName), r.boldFont, nameFontSize, nameAnchorY},
		{sanitizeOverlayText(courseName), r.bodyFont, courseFontSize, courseAnchorY},
		{sanitizeOverlayText(completionDateDisplay), r.bodyFont, dateFontSize, dateAnchorY},
	}

	width := bounds.Dx()
	for _, line := range lines {
		if line.text == "" {
			continue
		}
		if err := r.drawCentered(canvas, line.text, line.font, line.fontSize, line.anchorY, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCentered draws text horizontally centered at the given vertical
// anchor, stepping the face size down until the string fits the width
// budget, with a contrasting outline stroke for legibility.
func (r *TemplateRenderer) drawCentered(canvas *image.NRGBA, text string, otFont *opentype.Font, fontSize, anchorY float64, width int) error {
	maxWidth := int(float64(width) * maxTextWidthRatio)

	for size := fontSize; size >= minFontSize; size -= 2 {
		face, err := opentype.NewFace(otFont, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("create font face: %w", err)
		}

		textWidth := font.MeasureString(face, text).Ceil()
		if textWidth > maxWidth && size-2 >= minFontSize {
			face.Close()
			continue
		}

		originX := (width - textWidth) / 2
		originY := int(float64(canvas.Bounds().Dy()) * anchorY)

		// Outline stroke: draw the string in the outline color at the 8
		// neighbouring offsets, then the fill on top.
		for dy := -2; dy <= 2; dy += 2 {
			for dx := -2; dx <= 2; dx += 2 {
				if dx == 0 && dy == 0 {
					continue
				}
				d := &font.Drawer{
					Dst:  canvas,
					Src:  image.NewUniform(outlineColor),
					Face: face,
					Dot:  fixed.P(originX+dx, originY+dy),
				}
				d.DrawString(text)
			}
		}

		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(textColor),
			Face: face,
			Dot:  fixed.P(originX, originY),
		}
		d.DrawString(text)

		face.Close()
		return nil
	}
	return nil
}

// sanitizeOverlayText strips control characters and collapses whitespace.
// The renderer draws glyphs directly so there is no markup channel, but
// embedded control codes would still corrupt layout and metrics.
func sanitizeOverlayText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatCompletionDate renders a completion date the way the certificate
// face displays it, e.g. "January 5, 2026".
func FormatCompletionDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
