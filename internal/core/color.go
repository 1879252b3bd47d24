package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorCyan
	ColorBrightWhite
	ColorGray
)

// Palette cycles through actor colors so a population stays distinguishable.
var Palette = []Color{
	ColorBrightYellow,
	ColorCyan,
	ColorBrightWhite,
	ColorRed,
	ColorYellow,
}
