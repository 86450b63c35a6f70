package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/milkrun/internal/core"
)

// palette maps core.Color to ANSI 256 codes for foregrounds.
var palette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "218",
	core.ColorBrown:         "130",
	core.ColorGold:          "220",
}

// tints are the dark shades used when a color is a cell background,
// so glyphs drawn on top stay readable.
var tints = map[core.Color]string{
	core.ColorRed:     "52",
	core.ColorGreen:   "22",
	core.ColorYellow:  "58",
	core.ColorBlue:    "17",
	core.ColorMagenta: "53",
	core.ColorCyan:    "23",
	core.ColorGray:    "236",
	core.ColorOrange:  "94",
	core.ColorBrown:   "52",
}

type cellStyle struct {
	fg, bg core.Color
}

// styles caches one lipgloss style per foreground/tint pair.
// SSH sessions render concurrently, hence the lock.
var (
	stylesMu sync.Mutex
	styles   = map[cellStyle]lipgloss.Style{}
)

func styleFor(k cellStyle) lipgloss.Style {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	if st, ok := styles[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code, ok := palette[k.fg]; ok {
		st = st.Foreground(lipgloss.Color(code))
	}
	if k.fg == core.ColorGold {
		st = st.Bold(true)
	}
	if code, ok := tints[k.bg]; ok {
		st = st.Background(lipgloss.Color(code))
	}
	styles[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string.
// Runs of cells with the same color and tint share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			cell := s.GetCell(x, y)
			k := cellStyle{cell.Color, cell.Tint}
			run.Reset()
			for ; x < s.Width(); x++ {
				cell = s.GetCell(x, y)
				if cell.Color != k.fg || cell.Tint != k.bg {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if k == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(k).Render(run.String()))
		}
	}
	return sb.String()
}
