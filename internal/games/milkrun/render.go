package milkrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/milkrun/internal/core"
)

// viewport maps the logical field onto terminal cells. Cells are about
// twice as tall as wide, so a row covers twice the pixels of a column.
type viewport struct {
	screenW, screenH int
	ox, oy           int
	cols, rows       int
	ppc, ppr         float64 // field pixels per column / row
	fieldW, fieldH   float64
}

func newViewport(screenW, screenH int, fieldW, fieldH float64) viewport {
	availCols := max(screenW-2, 1)
	availRows := max(screenH-3, 1)
	ppc := math.Max(fieldW/float64(availCols), fieldH/float64(2*availRows))
	if ppc <= 0 {
		ppc = 1
	}
	cols := min(int(math.Ceil(fieldW/ppc)), availCols)
	rows := min(int(math.Ceil(fieldH/(2*ppc))), availRows)
	return viewport{
		screenW: screenW,
		screenH: screenH,
		ox:      max((screenW-cols)/2, 1),
		oy:      2,
		cols:    cols,
		rows:    rows,
		ppc:     ppc,
		ppr:     2 * ppc,
		fieldW:  fieldW,
		fieldH:  fieldH,
	}
}

// toCell converts a field position to a cell. ok is false outside the field.
func (v viewport) toCell(p core.Vec2) (x, y int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= v.fieldW || p.Y >= v.fieldH {
		return 0, 0, false
	}
	return v.ox + int(p.X/v.ppc), v.oy + int(p.Y/v.ppr), true
}

// toField converts normalized screen coordinates to a field position,
// clamped to the field.
func (v viewport) toField(nx, ny float64) core.Vec2 {
	cx := nx * float64(v.screenW)
	cy := ny * float64(v.screenH)
	p := core.V((cx-float64(v.ox)+0.5)*v.ppc, (cy-float64(v.oy)+0.5)*v.ppr)
	return core.NewBounds(v.fieldW, v.fieldH).ClampPoint(p)
}

// plot draws r at p when p is on the field.
func (v viewport) plot(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	if x, y, ok := v.toCell(p); ok {
		dst.SetColor(x, y, r, c)
	}
}

// plotText draws text centered on p.
func (v viewport) plotText(dst *core.Screen, p core.Vec2, text string, c core.Color) {
	x, y, ok := v.toCell(p)
	if !ok {
		return
	}
	runes := []rune(text)
	start := x - len(runes)/2
	for i, r := range runes {
		cx := start + i
		if cx >= v.ox && cx < v.ox+v.cols {
			dst.SetColor(cx, y, r, c)
		}
	}
}

// ring draws a circle outline of radius r around center.
func (v viewport) ring(dst *core.Screen, center core.Vec2, radius float64, glyph rune, c core.Color) {
	if radius <= 0 {
		return
	}
	steps := max(int(radius/v.ppc)*4, 12)
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		v.plot(dst, center.Add(core.V(math.Cos(a), math.Sin(a)).Scale(radius)), glyph, c)
	}
}

// background is the field decoration for a background id.
type background struct {
	name   string
	glyph  rune
	color  core.Color
	border core.Color
}

var backgrounds = []background{
	{"pasture", '.', core.ColorGreen, core.ColorBrightGreen},
	{"dusk", ',', core.ColorYellow, core.ColorOrange},
	{"night", '·', core.ColorBlue, core.ColorBrightBlue},
	{"storm", '\'', core.ColorGray, core.ColorWhite},
	{"desert", '~', core.ColorOrange, core.ColorYellow},
	{"glacier", '*', core.ColorCyan, core.ColorBrightCyan},
	{"volcano", '^', core.ColorRed, core.ColorBrightRed},
	{"deep space", '+', core.ColorMagenta, core.ColorBrightMagenta},
}

func backgroundFor(id int) background {
	if id < 0 || id >= len(backgrounds) {
		return backgrounds[0]
	}
	return backgrounds[id]
}

var skinColors = map[string]core.Color{
	"ufo":      core.ColorBrightCyan,
	"swift":    core.ColorBrightGreen,
	"hauler":   core.ColorYellow,
	"bastion":  core.ColorBrightBlue,
	"st_suzzy": core.ColorPink,
}

func drawWorld(dst *core.Screen, v viewport, s *Snapshot) {
	bg := backgroundFor(s.Background)
	dst.DrawBox(v.ox-1, v.oy-1, v.cols+2, v.rows+2, bg.border)
	dst.Tint(v.ox, v.oy, v.cols, v.rows, bg.color)
	for y := range v.rows {
		for x := range v.cols {
			if (x*7+y*13)%11 == 0 {
				dst.SetColor(v.ox+x, v.oy+y, bg.glyph, bg.color)
			}
		}
	}

	for _, pu := range s.Powerups {
		c := pu.Kind.Color()
		if pu.Life < 2000 && int(pu.Life/150)%2 == 0 {
			c = core.ColorGray
		}
		v.plot(dst, pu.Pos, pu.Kind.Glyph(), c)
	}
	for _, c := range s.Cows {
		if c.Golden {
			v.plot(dst, c.Pos, 'M', core.ColorGold)
		} else {
			v.plot(dst, c.Pos, 'm', core.ColorBrightWhite)
		}
	}
	if s.JokerLive {
		colors := []core.Color{core.ColorRed, core.ColorYellow, core.ColorGreen, core.ColorCyan, core.ColorMagenta}
		v.plot(dst, s.Joker.Pos, 'J', colors[int(s.Elapsed/120)%len(colors)])
	}
	for _, en := range s.Enemies {
		v.plot(dst, en.Pos, 'T', core.ColorRed)
	}
	for _, m := range s.Missiles {
		glyph := '•'
		if s.Elapsed-m.SpawnAt < missileGraceMS {
			glyph = '∘'
		}
		v.plot(dst, m.Pos, glyph, core.ColorOrange)
	}
	for _, p := range s.Particles {
		v.plot(dst, p.Pos, p.Glyph, p.Color)
	}
	if s.Counter.Active {
		v.ring(dst, s.Counter.Center, s.Counter.Radius(), 'o', core.ColorBrightYellow)
	}
	if s.EMP.Active {
		v.ring(dst, s.EMP.Center, s.EMP.Radius(), 'o', core.ColorMagenta)
	}
	drawPlayer(dst, v, s)
}

func drawPlayer(dst *core.Screen, v viewport, s *Snapshot) {
	p := s.Player
	if p.TractorBeam.Active() {
		v.ring(dst, p.Pos, p.BeamSize/2, '·', core.ColorBrightYellow)
	}
	if p.Milkstorm.Active() {
		v.ring(dst, p.Pos, vortexRadius*(0.5+0.5*math.Abs(math.Sin(s.Elapsed/200))), '@', core.ColorWhite)
	}
	if p.Invincible.Active() && int(s.Elapsed/100)%2 == 0 {
		return
	}
	c, ok := skinColors[s.Skin]
	if !ok {
		c = core.ColorBrightCyan
	}
	body := "<O>"
	if p.Shield.Active() {
		body = "(<O>)"
	}
	v.plotText(dst, p.Pos, body, c)
}

func drawHUD(dst *core.Screen, s *Snapshot, streakGoal int) {
	r := s.Run
	lives := strings.Repeat("♥", max(r.Lives, 0))
	line := fmt.Sprintf(" SCORE %d  MILK %d  %s  WAVE %d  STREAK %d/%d", r.Score, r.Milk, lives, r.Wave, r.Streak, streakGoal)
	dst.DrawTextColor(0, 0, line, core.ColorBrightWhite)

	x := len([]rune(line)) + 2
	put := func(label string, c core.Color) {
		dst.DrawTextColor(x, 0, label, c)
		x += len([]rune(label)) + 1
	}
	if r.CounterAttackReady {
		put("READY", core.ColorBrightYellow)
	}
	effects := []struct {
		name string
		e    TimedEffect
		c    core.Color
	}{
		{"SHIELD", s.Player.Shield, core.ColorCyan},
		{"x2", s.DoubleScore, core.ColorYellow},
		{"STORM", s.Player.Milkstorm, core.ColorWhite},
		{"FREEZE", s.TimeFreeze, core.ColorBlue},
	}
	for _, fx := range effects {
		if fx.e.Active() {
			put(fmt.Sprintf("%s %ds", fx.name, int(math.Ceil(fx.e.Remaining/1000))), fx.c)
		}
	}
	if s.GoldenBonus > 0 {
		put(fmt.Sprintf("GOLD+%d", s.GoldenBonus), core.ColorGold)
	}
}

func drawBanner(dst *core.Screen, title, hint string) {
	y := dst.Height() / 2
	w := max(len([]rune(hint)), len([]rune(title))) + 4
	x := (dst.Width() - w) / 2
	dst.FillRect(x, y-2, w, 5, ' ', core.ColorDefault)
	dst.DrawBox(x, y-2, w, 5, core.ColorBrightWhite)
	dst.DrawTextCentered(y-1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(y+1, hint, core.ColorWhite)
}
