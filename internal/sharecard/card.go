package sharecard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Shubhamjh4/airsense360/internal/models"
	"github.com/Shubhamjh4/airsense360/internal/predictor"
)

// CardWidth and CardHeight are the standard Open Graph image dimensions.
const (
	CardWidth  = 1200
	CardHeight = 630
)

const footerHeight = 90

// Generate renders a share card for a reading: category-colored background,
// the AQI number large, and a pollutant summary. Output is PNG.
func Generate(location string, reading models.Reading) ([]byte, error) {
	category := predictor.CategoryFor(reading.AQI)
	palette := predictor.GetPalette(category)

	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	drawGradientBackground(img, palette)
	drawFooterBand(img, palette)

	drawTextScaled(img, location, 80, 70, palette.Text, 5)
	drawTextScaled(img, category.Label(), 80, 160, palette.Accent, 4)

	aqiStr := strconv.Itoa(reading.AQI)
	drawTextScaled(img, aqiStr, 80, 240, palette.Text, 16)
	aqiWidth := font.MeasureString(basicfont.Face7x13, aqiStr).Ceil() * 16
	drawTextScaled(img, "AQI", 80+aqiWidth+30, 396, palette.TextMuted, 4)

	summary := fmt.Sprintf("PM2.5 %d   PM10 %d   NO2 %d   SO2 %d   CO %.1f",
		reading.PM25, reading.PM10, reading.NO2, reading.SO2, reading.CO)
	drawTextScaled(img, summary, 80, 490, palette.TextMuted, 3)

	drawTextScaled(img, "airsense360", 80, 566, palette.Text, 3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawGradientBackground fills the image with the palette background,
// darkening toward the bottom.
func drawGradientBackground(img *image.RGBA, p predictor.Palette) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		progress := float64(y) / float64(bounds.Dy())
		shade := 1.0 - 0.25*progress
		c := color.RGBA{
			R: uint8(float64(p.Background.R) * shade),
			G: uint8(float64(p.Background.G) * shade),
			B: uint8(float64(p.Background.B) * shade),
			A: 255,
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawFooterBand(img *image.RGBA, p predictor.Palette) {
	bounds := img.Bounds()
	for y := bounds.Max.Y - footerHeight; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, p.Band)
		}
	}
}

// drawTextScaled renders text with the bitmap face into a small buffer and
// scales it up with nearest-neighbor, keeping the blocky look crisp.
func drawTextScaled(img *image.RGBA, text string, x, y int, col color.Color, scale int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	if width == 0 {
		return
	}

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(ascent)},
	}
	d.DrawString(text)

	dstRect := image.Rect(x, y, x+width*scale, y+height*scale)
	draw.NearestNeighbor.Scale(img, dstRect, small, small.Bounds(), draw.Over, nil)
}
