package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gridironlabs/field-report/internal/models"
)

const (
	markerRadius = 5
	lineHeight   = 13 // basicfont.Face7x13 line height
)

var (
	markerColor = color.RGBA{R: 255, A: 255}
	textColor   = color.Black
)

// PNGRenderer draws the annotated field diagram: it opens the base field
// image, places the layout's markers and labels on it, and writes a PNG to
// a fixed output path, overwriting any previous render. Concurrent renders
// race on the output path; that is an accepted limitation.
type PNGRenderer struct {
	fieldPath  string
	outputPath string
	logger     *logrus.Logger
}

// NewPNGRenderer creates a renderer reading the field image from fieldPath
// and writing the annotated plot to outputPath.
func NewPNGRenderer(fieldPath, outputPath string, logger *logrus.Logger) *PNGRenderer {
	return &PNGRenderer{
		fieldPath:  fieldPath,
		outputPath: outputPath,
		logger:     logger,
	}
}

// Render produces the annotated field image for the given report data.
func (r *PNGRenderer) Render(players []*models.PlayerRecord, team *models.TeamRecord) error {
	src, err := r.loadField()
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	layout := BuildLayout(players, team, bounds.Dx(), bounds.Dy())

	for _, marker := range layout.Markers {
		r.drawMarker(dst, marker)
	}
	for _, label := range layout.PlayerLabels {
		r.drawLabel(dst, label)
	}
	for _, label := range layout.StatLabels {
		r.drawLabel(dst, label)
	}
	r.drawLabel(dst, layout.TeamNote)

	out, err := os.Create(r.outputPath)
	if err != nil {
		return fmt.Errorf("creating field plot: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, dst); err != nil {
		return fmt.Errorf("encoding field plot: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"path":    r.outputPath,
		"players": len(players),
	}).Info("Field plot rendered")

	return nil
}

func (r *PNGRenderer) loadField() (image.Image, error) {
	f, err := os.Open(r.fieldPath)
	if err != nil {
		return nil, fmt.Errorf("opening field image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding field image: %w", err)
	}
	return img, nil
}

func (r *PNGRenderer) drawMarker(dst *image.RGBA, marker Marker) {
	for dy := -markerRadius; dy <= markerRadius; dy++ {
		for dx := -markerRadius; dx <= markerRadius; dx++ {
			if dx*dx+dy*dy <= markerRadius*markerRadius {
				dst.Set(marker.X+dx, marker.Y+dy, markerColor)
			}
		}
	}
}

func (r *PNGRenderer) drawLabel(dst *image.RGBA, label Label) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
	}

	for i, line := range label.Lines {
		x := fixed.I(label.X)
		if label.AnchorRight {
			x -= drawer.MeasureString(line)
		}
		drawer.Dot = fixed.Point26_6{
			X: x,
			Y: fixed.I(label.Y + (i+1)*lineHeight),
		}
		drawer.DrawString(line)
	}
}
