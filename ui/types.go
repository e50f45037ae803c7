// Package ui draws the heads-up display over the pet canvas: noise-filled
// gauges, the start and game-over banners, and the Feed/Play controls.
package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds colors and metrics for the HUD.
type Theme struct {
	FullnessBase  color.RGBA
	HappinessBase color.RGBA
	GaugeBorder   color.RGBA

	StartBase        color.RGBA
	StartBorder      color.RGBA
	StartInner       color.RGBA
	StartFlourish    color.RGBA
	GameOverBase     color.RGBA
	GameOverBorder   color.RGBA
	GameOverInner    color.RGBA
	GameOverFlourish color.RGBA
	GameOverShade    rl.Color

	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color

	GaugeWidth     int
	GaugeHeight    int
	GaugeRadius    float32
	GaugeStroke    float32
	GaugeVariation float64

	BannerWidth     int
	BannerHeight    int
	BannerRadius    float32
	BannerVariation float64

	Padding      int32
	LineHeight   int32
	FontSize     int32
	ButtonWidth  float32
	ButtonHeight float32
}

// DefaultTheme returns the default HUD theme.
func DefaultTheme() Theme {
	return Theme{
		FullnessBase:  color.RGBA{R: 255, G: 102, B: 102, A: 255},
		HappinessBase: color.RGBA{R: 102, G: 255, B: 102, A: 255},
		GaugeBorder:   color.RGBA{A: 255},

		StartBase:        color.RGBA{R: 255, G: 215, A: 255},
		StartBorder:      color.RGBA{R: 139, G: 69, B: 19, A: 255},
		StartInner:       color.RGBA{R: 255, G: 255, B: 255, A: 153},
		StartFlourish:    color.RGBA{R: 139, G: 69, B: 19, A: 255},
		GameOverBase:     color.RGBA{R: 180, G: 30, B: 30, A: 255},
		GameOverBorder:   color.RGBA{R: 80, G: 10, B: 10, A: 255},
		GameOverInner:    color.RGBA{R: 255, G: 255, B: 255, A: 102},
		GameOverFlourish: color.RGBA{R: 100, G: 20, B: 20, A: 255},
		GameOverShade:    rl.Color{A: 189},

		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 200},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,

		GaugeWidth:     150,
		GaugeHeight:    40,
		GaugeRadius:    10,
		GaugeStroke:    4,
		GaugeVariation: 20,

		BannerWidth:     460,
		BannerHeight:    300,
		BannerRadius:    20,
		BannerVariation: 30,

		Padding:      10,
		LineHeight:   18,
		FontSize:     16,
		ButtonWidth:  90,
		ButtonHeight: 30,
	}
}
