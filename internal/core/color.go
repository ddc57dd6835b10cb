package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the houses renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// Semantic aliases so renderers name what they draw rather than the hue.
const (
	ColorHouse       = ColorGreen
	ColorRuin        = ColorGray
	ColorDestructor  = ColorRed
	ColorPassive     = ColorOrange
	ColorRetreating  = ColorMagenta
	ColorStopped     = ColorBlue
	ColorPerson      = ColorCyan
	ColorHUD         = ColorWhite
	ColorHUDDisabled = ColorGray
	ColorWarning     = ColorYellow
)
