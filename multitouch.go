package gesture

// pairCoordinator classifies the joint motion of exactly two active
// contacts. While it runs, every active context is switched to the multi
// state so it is force-released once fewer than two contacts remain.
type pairCoordinator struct {
	panning bool
	lastPan Vec2
}

func (c *pairCoordinator) reset() {
	c.panning = false
	c.lastPan = Vec2{}
}

// update compares the chords of the two contacts. Both resting emits
// nothing; one resting emits a rotate at the moving contact; chords pointing
// the same way emit a two-finger move at the midpoint; otherwise a pinch
// whose scale is the squared distance between the end points over the
// squared distance between the start points. Contacts beyond the second are
// marked but not classified.
func (c *pairCoordinator) update(r *BaseRecognizer, now int64) {
	var pair [2]*TouchTrack
	n := 0
	for i := range r.pending {
		ctx := &r.pending[i]
		if !ctx.track.Active() {
			continue
		}
		if n < len(pair) {
			pair[n] = ctx.track
		}
		n++
		if ctx.state != stateMulti {
			r.transition(ctx, stateMulti)
		}
	}
	if n != 2 {
		return
	}

	a, b := pair[0], pair[1]
	v0, v1 := a.Chord(), b.Chord()
	steady := r.th.SteadyDistance()
	rest0 := resting(v0.Len(), steady)
	rest1 := resting(v1.Len(), steady)

	switch {
	case rest0 && rest1:
		return
	case rest0 || rest1:
		p := a.EndPos()
		if rest0 {
			p = b.EndPos()
		}
		r.emit(Event{
			Kind:         KindRotate,
			X:            p.X,
			Y:            p.Y,
			Timestamp:    now,
			ContactCount: 2,
			Angle:        RotatePlaceholderAngle,
		})
	case v0.Dot(v1) > 0:
		mid := a.EndPos().Add(b.EndPos()).Scale(0.5)
		r.emit(Event{
			Kind:         KindMove,
			X:            mid.X,
			Y:            mid.Y,
			Timestamp:    now,
			ContactCount: 2,
		})
		c.panning = true
		c.lastPan = mid
	default:
		startSq := a.StartPos().DistSq(b.StartPos())
		if startSq == 0 {
			return
		}
		p := b.EndPos()
		r.emit(Event{
			Kind:         KindPinch,
			X:            p.X,
			Y:            p.Y,
			Timestamp:    now,
			ContactCount: 2,
			Scale:        a.EndPos().DistSq(p) / startSq,
		})
	}
}

// resting reports whether a chord of the given length counts as no motion.
// A zero-length chord always rests, even with a zero steady gate.
func resting(length, steady float64) bool {
	return length == 0 || length < steady
}
