package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the playfield, HUD and menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorBrown
	ColorGold
)

// Cell is a single character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
	Tint  Color // background; ColorDefault leaves the terminal's own
}

// blank is the cell value of a cleared screen.
var blank = Cell{Rune: ' ', Color: ColorDefault}
