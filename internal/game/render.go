package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

// Visual characters for rendering
const (
	ActorChar     = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// StartPrompt is shown while a round is waiting to start.
const StartPrompt = "Press SPACE to start"

// Render draws the runner's current state. Row 0 is the HUD, the last row is
// the ground, and the world is scaled into the rows between.
func (r *Runner) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 4 || h < 4 {
		return
	}

	vp := core.NewViewport(0, 1, w, h-2, r.cfg.Screen.Width, r.cfg.Screen.Height)

	if r.session != nil {
		for _, o := range r.session.Field().Obstacles() {
			drawObstacle(dst, vp, o)
		}
		for _, a := range r.session.Actors() {
			if a.Alive {
				vp.Fill(dst, a.Rect(), ActorChar, a.Color)
			}
		}
	}

	dst.DrawHLine(0, h-1, w, GroundChar, core.ColorGray)
	r.drawHUD(dst)

	if r.phase == core.PhaseAwaitingStart {
		r.drawStartBox(dst)
	}
}

func drawObstacle(dst *core.Screen, vp core.Viewport, o Obstacle) {
	top, bottom := o.TopRect(), o.BottomRect()
	vp.Fill(dst, top, PipeChar, core.ColorGreen)
	vp.Fill(dst, bottom, PipeChar, core.ColorGreen)

	// Caps on the gap edges
	if !top.Empty() {
		x0, _, x1, y1 := vp.Cells(top)
		dst.FillCells(x0, y1-1, x1, y1, PipeCapTop, core.ColorBrightGreen)
	}
	if !bottom.Empty() {
		x0, y0, x1, _ := vp.Cells(bottom)
		dst.FillCells(x0, y0, x1, y0+1, PipeCapBottom, core.ColorBrightGreen)
	}
}

func (r *Runner) drawHUD(dst *core.Screen) {
	st := r.State()
	hud := fmt.Sprintf(" %s  Round %d  Score %d  Best %d", r.hooks.Title(), st.Round, st.Score, r.bestEver)
	if st.Total > 1 {
		if kinds := aliveByKind(r.session.Actors()); kinds != "" {
			hud += "  Alive " + kinds
		} else {
			hud += fmt.Sprintf("  Alive %d/%d", st.Alive, st.Total)
		}
	}
	if r.session != nil {
		hud += fmt.Sprintf("  Speed %.0f", r.session.Speed())
	}
	if s, ok := r.hooks.(Statuser); ok {
		if line := s.Status(); line != "" {
			hud += "  " + line
		}
	}
	dst.DrawTextColored(0, 0, hud+" ", core.ColorBrightWhite)
}

// aliveByKind breaks the alive count down by controller kind, in spawn
// order. Empty when every actor has the same kind.
func aliveByKind(actors []*Actor) string {
	var order []string
	alive := map[string]int{}
	total := map[string]int{}
	for _, a := range actors {
		k := agent.Kind(a.Control)
		if total[k] == 0 {
			order = append(order, k)
		}
		total[k]++
		if a.Alive {
			alive[k]++
		}
	}
	if len(order) < 2 {
		return ""
	}

	parts := make([]string, len(order))
	for i, k := range order {
		parts[i] = fmt.Sprintf("%s %d/%d", k, alive[k], total[k])
	}
	return strings.Join(parts, " ")
}

func (r *Runner) drawStartBox(dst *core.Screen) {
	lines := []string{r.hooks.Title(), StartPrompt}
	if r.round > 0 {
		lines = append(lines, fmt.Sprintf("Round %d over  |  Best %d", r.last.Round, r.last.Best))
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillCells(boxX, boxY, boxX+boxW, boxY+boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		c := core.ColorDefault
		if i == 1 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, boxY+1+i*2, l, c)
	}
}
