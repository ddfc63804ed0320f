package gesture

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// mouseContact is the contact slot driven by the left mouse button.
const mouseContact = 0

// --- Per-contact state ---

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// EbitenSource polls Ebitengine mouse and touch state once per tick and
// feeds the changes into a Manager. Contact 0 is the left mouse button;
// touches take the remaining slots in arrival order.
type EbitenSource struct {
	start     time.Time
	pointers  []pointerState
	touchMap  []ebiten.TouchID
	touchUsed []bool
	touchIDs  []ebiten.TouchID
	active    []bool

	// DisableMouse stops the mouse from driving contact 0.
	DisableMouse bool
}

// NewEbitenSource creates a source for a manager with maxContacts slots.
func NewEbitenSource(maxContacts int) *EbitenSource {
	if maxContacts < 1 {
		maxContacts = DefaultMaxContacts
	}
	return &EbitenSource{
		start:     time.Now(),
		pointers:  make([]pointerState, maxContacts),
		touchMap:  make([]ebiten.TouchID, maxContacts),
		touchUsed: make([]bool, maxContacts),
		active:    make([]bool, maxContacts),
	}
}

// Now returns the milliseconds elapsed since the source was created.
func (s *EbitenSource) Now() int64 {
	return time.Since(s.start).Milliseconds()
}

// Update polls input and runs one Manager tick. Call it from the game's
// Update method.
func (s *EbitenSource) Update(m *Manager) {
	now := s.Now()
	s.Poll(m, now)
	m.Update(now)
}

// Poll reads mouse and touch state and reports presses, moves and releases
// to m. Moves are only reported when the position changed.
func (s *EbitenSource) Poll(m *Manager, now int64) {
	if !s.DisableMouse {
		mx, my := ebiten.CursorPosition()
		pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		s.processPointer(m, mouseContact, float64(mx), float64(my), pressed, now)
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for i := range s.active {
		s.active[i] = false
	}
	for _, tid := range s.touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		s.active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(m, slot, float64(tx), float64(ty), true, now)
	}
	s.releaseStale(m, now)
}

// releaseStale releases touch slots whose touch ID disappeared this tick.
func (s *EbitenSource) releaseStale(m *Manager, now int64) {
	for i := mouseContact + 1; i < len(s.touchUsed); i++ {
		if s.touchUsed[i] && !s.active[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(m, i, ps.lastX, ps.lastY, false, now)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a contact slot past the mouse slot.
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *EbitenSource) touchSlot(tid ebiten.TouchID) int {
	for i := mouseContact + 1; i < len(s.touchUsed); i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := mouseContact + 1; i < len(s.touchUsed); i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer turns the pressed state of one slot into Manager calls.
func (s *EbitenSource) processPointer(m *Manager, slot int, x, y float64, pressed bool, now int64) {
	ps := &s.pointers[slot]
	switch {
	case pressed && !ps.down:
		ps.down = true
		m.Press(slot, x, y, now)
	case !pressed && ps.down:
		ps.down = false
		m.Release(slot, x, y, now)
	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		m.Move(slot, x, y, now)
	default:
		// Hover is not a contact.
	}
	ps.lastX = x
	ps.lastY = y
}
