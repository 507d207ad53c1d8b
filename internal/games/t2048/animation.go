package t2048

// TileAnimation is one tile in flight.
type TileAnimation struct {
	Value    int
	From     Pos
	To       Pos
	Progress float64 // 0.0 → 1.0
	Merged   bool
	IsNew    bool
}

// AnimationPhase is the current phase of a move's animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// startSlideAnimation animates every tile that travelled during the move.
func (g *Game) startSlideAnimation(moves []TileMove) {
	g.animations = g.animations[:0]
	for _, m := range moves {
		g.animations = append(g.animations, TileAnimation{
			Value:  m.Value,
			From:   m.From,
			To:     m.To,
			Merged: m.Merged,
		})
	}
	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

// startPopAnimation highlights a freshly spawned tile.
func (g *Game) startPopAnimation(sp Spawn) {
	g.animations = append(g.animations[:0], TileAnimation{
		Value: sp.Value,
		From:  sp.Pos,
		To:    sp.Pos,
		IsNew: true,
	})
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation.
// Returns true while the animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	duration := g.settings.SlideTicks
	if g.animationPhase == PhasePop {
		duration = g.settings.PopTicks
	}

	if g.animationTicks >= duration {
		return g.finishAnimation()
	}

	progress := float64(g.animationTicks) / float64(duration)
	for i := range g.animations {
		g.animations[i].Progress = progress
	}
	return true
}

// finishAnimation ends the current phase and reports whether another began.
func (g *Game) finishAnimation() bool {
	if g.animationPhase == PhaseSlide && g.pendingNewTile != nil && g.settings.PopTicks > 0 {
		sp := *g.pendingNewTile
		g.pendingNewTile = nil
		g.startPopAnimation(sp)
		return true
	}

	g.clearAnimation()
	g.settle()
	return false
}

func (g *Game) clearAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animationTicks = 0
	g.animations = g.animations[:0]
	g.pendingNewTile = nil
}

// hiddenDuringSlide reports whether the tile at p should wait for the slide
// to finish before it is drawn.
func (g *Game) hiddenDuringSlide(p Pos) bool {
	if g.animationPhase != PhaseSlide {
		return false
	}
	if g.pendingNewTile != nil && g.pendingNewTile.Pos == p {
		return true
	}
	for _, a := range g.animations {
		if a.To == p {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolate returns the animated position in fractional cells.
func (a *TileAnimation) interpolate() (row, col float64) {
	t := easeOutQuad(a.Progress)
	row = float64(a.From.Row) + float64(a.To.Row-a.From.Row)*t
	col = float64(a.From.Col) + float64(a.To.Col-a.From.Col)*t
	return row, col
}
