package houses

import (
	"fmt"

	"github.com/vovakirdan/houseguard/internal/core"
	"github.com/vovakirdan/houseguard/internal/sim"
)

// Render draws the current session into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorWarning)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorHUD)
		return
	}

	g.renderHUD(dst)
	for _, t := range g.session.Targets() {
		g.renderTarget(dst, t)
	}
	for _, a := range g.session.Agents() {
		g.renderAgent(dst, a)
	}
	g.renderPlayer(dst, g.session.Player())

	if sum, ended := g.session.Summary(); ended {
		g.renderSummary(dst, sum)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.status
	x := 1

	draw := func(text string, c core.Color) {
		dst.DrawText(x, 0, text, c)
		x += len([]rune(text)) + 3
	}

	draw(fmt.Sprintf("Houses %d/%d", st.AliveTargets, st.TotalTargets), core.ColorHouse)
	draw(fmt.Sprintf("Time %2ds", st.Seconds), timeColor(st))

	letter := core.ColorHUD
	if st.LetterSent || st.Phase == sim.PhaseEnded {
		letter = core.ColorHUDDisabled
	}
	draw("[1] Letter", letter)

	vote := core.ColorHUD
	switch {
	case st.VoteStopActive && st.Phase == sim.PhaseRunning:
		vote = core.ColorStopped
	case st.VoteStopUsed || st.Phase == sim.PhaseEnded:
		vote = core.ColorHUDDisabled
	}
	draw("[2] Vote stop", vote)

	sound := "Sound on"
	if !g.flags.SoundOn {
		sound = "Sound off"
	}
	draw(sound, core.ColorHUDDisabled)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorHUDDisabled)
}

func timeColor(st sim.Status) core.Color {
	if st.Phase == sim.PhaseRunning && st.Seconds <= 3 {
		return core.ColorWarning
	}
	return core.ColorHUD
}

func (g *Game) renderTarget(dst *core.Screen, t *sim.Target) {
	x, y, w, h := g.view.cells(t.Bounds)
	if !t.Alive() {
		g.fill(dst, x, y, w, h, '░', core.ColorRuin)
		return
	}
	if w < 3 || h < 3 {
		g.fill(dst, x, y, w, h, '█', core.ColorHouse)
		return
	}

	g.fill(dst, x+1, y+1, w-2, h-2, ' ', core.ColorHouse)
	dst.DrawBox(x, y, w, h, core.ColorHouse)
	for col := x + 1; col < x+w-1; col++ {
		if g.view.visible(y) {
			dst.SetColored(col, y, '▲', core.ColorHouse)
		}
	}
	if h > 3 {
		dst.SetColored(x+w/2, y+h-2, '∏', core.ColorHouse)
	}
}

func (g *Game) renderAgent(dst *core.Screen, a *sim.Agent) {
	glyph := 'D'
	if a.Variant == sim.VariantPassive {
		glyph = 'd'
	}
	x, y, w, h := g.view.cells(a.Bounds())
	g.fill(dst, x, y, w, h, glyph, agentColor(a))
}

func agentColor(a *sim.Agent) core.Color {
	switch {
	case a.IsStopped():
		return core.ColorStopped
	case a.IsMovingBack():
		return core.ColorRetreating
	case a.Variant == sim.VariantPassive:
		return core.ColorPassive
	default:
		return core.ColorDestructor
	}
}

func (g *Game) renderPlayer(dst *core.Screen, p *sim.Player) {
	glyph := '@'
	if p.Anim() == sim.AnimWalk && (g.tick/6)%2 == 1 {
		glyph = '&'
	}
	x, y, w, h := g.view.cells(p.Bounds())
	g.fill(dst, x, y, w, h, glyph, core.ColorPerson)
}

// fill is Screen.Fill restricted to the playfield rows.
func (g *Game) fill(dst *core.Screen, x, y, w, h int, r rune, c core.Color) {
	for row := y; row < y+h; row++ {
		if !g.view.visible(row) {
			continue
		}
		dst.Fill(x, row, w, 1, r, c)
	}
}

func (g *Game) renderSummary(dst *core.Screen, sum sim.Summary) {
	title := "The village stands!"
	titleColor := core.ColorHouse
	if !sum.Passed() {
		title = "All houses destroyed"
		titleColor = core.ColorDestructor
	}

	lines := []string{
		fmt.Sprintf("Houses standing: %d/%d", sum.AliveCount, sum.TotalTargets),
		fmt.Sprintf("Letter: %s   Vote stop: %s", used(sum.LetterSent), used(sum.VoteStopUsed)),
		fmt.Sprintf("Time played: %.1fs", sum.Elapsed.Seconds()),
		"Press R to restart, Q to quit",
	}

	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 4
	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2

	dst.Fill(x, y, width, height, ' ', core.ColorDefault)
	dst.DrawBox(x, y, width, height, titleColor)
	dst.DrawTextCentered(y+1, title, titleColor)
	for i, l := range lines {
		dst.DrawTextCentered(y+3+i, l, core.ColorHUD)
	}
}

func used(b bool) string {
	if b {
		return "used"
	}
	return "unused"
}
