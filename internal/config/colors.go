package config

import "suivi/internal/config/colors"

// ColorScheme aliases the colors package type so config files only deal
// with one package.
type ColorScheme = colors.ColorScheme

// DefaultColorScheme returns the default color scheme (blue theme)
func DefaultColorScheme() colors.ColorScheme {
	return *colors.Default()
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() colors.ColorScheme {
	return *colors.Monochrome()
}
