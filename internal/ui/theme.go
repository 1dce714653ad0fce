package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// UpscalerTheme tints the default theme with the upscaler palette
type UpscalerTheme struct{}

// NewUpscalerTheme creates the application theme
func NewUpscalerTheme() fyne.Theme {
	return &UpscalerTheme{}
}

// Color returns theme colors
func (t *UpscalerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 124, G: 77, B: 255, A: 255} // Violet for the upscale action
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // Green for processing complete
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 17, G: 17, B: 27, A: 255}
		}
		return color.RGBA{R: 248, G: 247, B: 252, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *UpscalerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *UpscalerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with a larger heading for the title
func (t *UpscalerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 26
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNameInputRadius:
		return 8
	}

	return theme.DefaultTheme().Size(name)
}
