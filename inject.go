package gesture

// syntheticTouch is a single injected contact change.
type syntheticTouch struct {
	contact int
	x, y    float64
	change  ChangeKind
}

// syntheticFrame holds every change applied on one tick.
type syntheticFrame []syntheticTouch

func (m *Manager) inject(f syntheticFrame) {
	m.injectQueue = append(m.injectQueue, f)
}

// InjectPress queues a press of contact at (x, y). Each queued frame is
// consumed by one call to Update and stamped with that tick's time.
func (m *Manager) InjectPress(contact int, x, y float64) {
	m.inject(syntheticFrame{{contact: contact, x: x, y: y, change: ChangePress}})
}

// InjectMove queues a move of a pressed contact.
func (m *Manager) InjectMove(contact int, x, y float64) {
	m.inject(syntheticFrame{{contact: contact, x: x, y: y, change: ChangeMove}})
}

// InjectRelease queues a release of contact at (x, y).
func (m *Manager) InjectRelease(contact int, x, y float64) {
	m.inject(syntheticFrame{{contact: contact, x: x, y: y, change: ChangeRelease}})
}

// InjectIdle queues frames with no changes.
func (m *Manager) InjectIdle(frames int) {
	for i := 0; i < frames; i++ {
		m.inject(nil)
	}
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (m *Manager) InjectTap(contact int, x, y float64) {
	m.InjectPress(contact, x, y)
	m.InjectRelease(contact, x, y)
}

// InjectSwipe queues a full stroke: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2.
func (m *Manager) InjectSwipe(contact int, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	m.InjectPress(contact, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		m.InjectMove(contact, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	m.InjectRelease(contact, toX, toY)
}

// InjectPinch queues a two-contact pinch on contacts 0 and 1, placed
// horizontally around (cx, cy). Their separation goes from fromDist to
// toDist over frames frames. Minimum frames is 2.
func (m *Manager) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	pair := func(dist float64, change ChangeKind) syntheticFrame {
		h := dist / 2
		return syntheticFrame{
			{contact: 0, x: cx - h, y: cy, change: change},
			{contact: 1, x: cx + h, y: cy, change: change},
		}
	}
	m.inject(pair(fromDist, ChangePress))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		m.inject(pair(fromDist+(toDist-fromDist)*t, ChangeMove))
	}
	m.inject(pair(toDist, ChangeRelease))
}

// PendingInjected returns the number of queued frames.
func (m *Manager) PendingInjected() int { return len(m.injectQueue) }

// processInjectedInput pops one frame from the inject queue and applies it.
// Returns true if a frame was consumed.
func (m *Manager) processInjectedInput(now int64) bool {
	if len(m.injectQueue) == 0 {
		return false
	}
	f := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue[len(m.injectQueue)-1] = nil
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]

	for _, ev := range f {
		switch ev.change {
		case ChangePress:
			m.Press(ev.contact, ev.x, ev.y, now)
		case ChangeMove:
			m.Move(ev.contact, ev.x, ev.y, now)
		case ChangeRelease:
			m.Release(ev.contact, ev.x, ev.y, now)
		}
	}
	return true
}
