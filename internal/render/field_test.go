package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestField(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestPNGRendererWritesPlot(t *testing.T) {
	dir := t.TempDir()
	fieldPath := filepath.Join(dir, "field.png")
	outPath := filepath.Join(dir, "field_plot.png")
	writeTestField(t, fieldPath, 640, 480)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	renderer := NewPNGRenderer(fieldPath, outPath, logger)

	players, team := layoutFixture()
	require.NoError(t, renderer.Render(players, team))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestPNGRendererOverwritesPreviousPlot(t *testing.T) {
	dir := t.TempDir()
	fieldPath := filepath.Join(dir, "field.png")
	outPath := filepath.Join(dir, "field_plot.png")
	writeTestField(t, fieldPath, 320, 240)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	renderer := NewPNGRenderer(fieldPath, outPath, logger)

	players, team := layoutFixture()
	require.NoError(t, renderer.Render(players, team))
	first, err := os.Stat(outPath)
	require.NoError(t, err)

	require.NoError(t, renderer.Render(players, team))
	second, err := os.Stat(outPath)
	require.NoError(t, err)

	assert.Equal(t, first.Size(), second.Size())
}

func TestPNGRendererMissingFieldImage(t *testing.T) {
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	renderer := NewPNGRenderer(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.png"), logger)

	players, team := layoutFixture()
	assert.Error(t, renderer.Render(players, team))
}
