package core

// Color is the foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Palette used by the cube views and the HUD.
const (
	ColorDefault     Color = iota
	ColorYellow            // snake body
	ColorBlue              // view frames
	ColorCyan              // view titles
	ColorWhite             // overlays
	ColorGray              // empty grid cells
	ColorBrightRed         // apple
	ColorBrightGreen       // snake head
)
