// Package ui draws the heads-up display and the performance panel over the
// meadow view.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	AlertColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme, tuned for a light background.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 245, G: 245, B: 240, A: 220},
		PanelBorder:    rl.Color{R: 160, G: 160, B: 150, A: 255},
		SectionHeader:  rl.DarkGray,
		LabelColor:     rl.Gray,
		ValueColor:     rl.Black,
		AlertColor:     rl.Red,
		BarBg:          rl.Color{R: 220, G: 220, B: 215, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 80, B: 80, A: 255},
		BarFillMedium:  rl.Color{R: 210, G: 170, B: 60, A: 255},
		BarFillHigh:    rl.Color{R: 80, G: 170, B: 80, A: 255},
		Padding:        10,
		LineHeight:     20,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       16,
		HeaderFontSize: 20,
	}
}
