package predictor

import "image/color"

// Palette defines the color scheme used when rendering a category on a
// share card.
type Palette struct {
	// Background fills the card body
	Background color.RGBA
	// Band fills the darker footer strip
	Band color.RGBA
	// Text is the primary text color
	Text color.RGBA
	// TextMuted is the secondary text color
	TextMuted color.RGBA
	// Accent colors the AQI figure
	Accent color.RGBA
}

// DefaultPalette is the fallback neutral scheme.
var DefaultPalette = Palette{
	Background: color.RGBA{0x1a, 0x1a, 0x2e, 0xff},
	Band:       color.RGBA{0x0f, 0x0f, 0x1a, 0xff},
	Text:       color.RGBA{0xee, 0xee, 0xee, 0xff},
	TextMuted:  color.RGBA{0x9a, 0x9a, 0xaa, 0xff},
	Accent:     color.RGBA{0x4f, 0xc3, 0xf7, 0xff},
}

// palettes follows the CPCB category colors, darkened enough for light text.
var palettes = map[Category]Palette{
	CategoryGood: {
		Background: color.RGBA{0x0b, 0x3d, 0x20, 0xff},
		Band:       color.RGBA{0x06, 0x28, 0x14, 0xff},
		Text:       color.RGBA{0xf0, 0xfa, 0xf2, 0xff},
		TextMuted:  color.RGBA{0x8f, 0xc4, 0xa2, 0xff},
		Accent:     color.RGBA{0x3d, 0xd6, 0x7a, 0xff},
	},
	CategorySatisfactory: {
		Background: color.RGBA{0x27, 0x3d, 0x12, 0xff},
		Band:       color.RGBA{0x19, 0x28, 0x0b, 0xff},
		Text:       color.RGBA{0xf5, 0xfa, 0xec, 0xff},
		TextMuted:  color.RGBA{0xad, 0xc4, 0x8a, 0xff},
		Accent:     color.RGBA{0xa3, 0xc8, 0x53, 0xff},
	},
	CategoryModerate: {
		Background: color.RGBA{0x44, 0x3a, 0x0e, 0xff},
		Band:       color.RGBA{0x2d, 0x26, 0x08, 0xff},
		Text:       color.RGBA{0xfc, 0xf9, 0xe8, 0xff},
		TextMuted:  color.RGBA{0xc9, 0xbc, 0x80, 0xff},
		Accent:     color.RGBA{0xf2, 0xd3, 0x2c, 0xff},
	},
	CategoryPoor: {
		Background: color.RGBA{0x4c, 0x29, 0x0c, 0xff},
		Band:       color.RGBA{0x33, 0x1a, 0x07, 0xff},
		Text:       color.RGBA{0xfd, 0xf2, 0xe8, 0xff},
		TextMuted:  color.RGBA{0xd0, 0xa2, 0x7e, 0xff},
		Accent:     color.RGBA{0xf2, 0x8b, 0x2c, 0xff},
	},
	CategoryVeryPoor: {
		Background: color.RGBA{0x4a, 0x10, 0x10, 0xff},
		Band:       color.RGBA{0x31, 0x0a, 0x0a, 0xff},
		Text:       color.RGBA{0xfd, 0xec, 0xec, 0xff},
		TextMuted:  color.RGBA{0xce, 0x88, 0x88, 0xff},
		Accent:     color.RGBA{0xef, 0x44, 0x44, 0xff},
	},
	CategorySevere: {
		Background: color.RGBA{0x36, 0x0a, 0x1c, 0xff},
		Band:       color.RGBA{0x23, 0x06, 0x12, 0xff},
		Text:       color.RGBA{0xfb, 0xea, 0xf1, 0xff},
		TextMuted:  color.RGBA{0xbd, 0x7f, 0x9a, 0xff},
		Accent:     color.RGBA{0xc4, 0x2a, 0x60, 0xff},
	},
}

// GetPalette returns the color palette for a category.
func GetPalette(c Category) Palette {
	if p, ok := palettes[c]; ok {
		return p
	}
	return DefaultPalette
}
