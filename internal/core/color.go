package core

// Color is the foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Board and HUD colors. ColorDefault leaves the terminal's own color.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen // safe rows
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite     // board frame
	ColorBrightRed // left-moving traffic
	ColorBrightGreen
	ColorBrightYellow // right-moving traffic
	ColorBrightBlue
	ColorBrightMagenta // crashed token
	ColorBrightCyan    // player token
	ColorBrightWhite
	ColorOrange
	ColorGray // road
)
