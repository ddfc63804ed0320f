package gesture

import (
	"fmt"

	"go.uber.org/zap"
)

// --- Constants ---

const (
	DefaultMaxContacts = 10

	defaultViewportWidth  = 640
	defaultViewportHeight = 480
)

// Listener receives every gesture the Manager dispatches. Listeners are
// compared by value when registered, so use pointer receivers.
type Listener interface {
	GestureEvent(e Event)
}

// --- Handler registry ---

type gestureHandler struct {
	id       uint32
	listener Listener
	fn       func(Event)
}

type handlerRegistry struct {
	handlers []gestureHandler
	nextID   uint32
}

func (r *handlerRegistry) add(l Listener, fn func(Event)) uint32 {
	r.nextID++
	r.handlers = append(r.handlers, gestureHandler{id: r.nextID, listener: l, fn: fn})
	return r.nextID
}

func (r *handlerRegistry) remove(id uint32) {
	for i := range r.handlers {
		if r.handlers[i].id == id {
			copy(r.handlers[i:], r.handlers[i+1:])
			r.handlers[len(r.handlers)-1] = gestureHandler{}
			r.handlers = r.handlers[:len(r.handlers)-1]
			return
		}
	}
}

func (r *handlerRegistry) find(l Listener) (uint32, bool) {
	for _, h := range r.handlers {
		if h.listener != nil && h.listener == l {
			return h.id, true
		}
	}
	return 0, false
}

// CallbackHandle allows removing a callback registered with OnGesture.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

// --- Options ---

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used by the Manager and its recognizers.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) Option {
	return func(m *Manager) {
		m.width = width
		m.height = height
	}
}

// WithMaxContacts sets the number of contact slots.
func WithMaxContacts(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxContacts = n
		}
	}
}

// --- Manager ---

// Manager owns one TouchTrack per contact slot, the active recognizer and
// the listeners. Feed it raw touches with Press, Move and Release between
// ticks, and call Update once per tick.
type Manager struct {
	cfg         Config
	log         *zap.Logger
	width       int
	height      int
	maxContacts int

	tracks     []*TouchTrack
	recognizer Recognizer
	handlers   handlerRegistry

	injectQueue []syntheticFrame
	runner      *ScriptRunner
}

// NewManager creates a Manager running the base recognizer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		cfg:         DefaultConfig(),
		log:         zap.NewNop(),
		width:       defaultViewportWidth,
		height:      defaultViewportHeight,
		maxContacts: DefaultMaxContacts,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tracks = make([]*TouchTrack, m.maxContacts)
	for i := range m.tracks {
		m.tracks[i] = NewTouchTrack(i)
	}
	if err := m.SetRecognizer(BaseRecognizerID); err != nil {
		panic(err)
	}
	return m
}

// MaxContacts returns the number of contact slots.
func (m *Manager) MaxContacts() int { return m.maxContacts }

// Viewport returns the viewport size thresholds are derived from.
func (m *Manager) Viewport() (width, height int) { return m.width, m.height }

// Recognizer returns the active recognizer.
func (m *Manager) Recognizer() Recognizer { return m.recognizer }

// SetRecognizer switches to the recognizer registered under id. Selecting
// the active recognizer again is a no-op. Switching clears every track.
func (m *Manager) SetRecognizer(id string) error {
	if m.recognizer != nil && m.recognizer.ID() == id {
		return nil
	}
	r, err := NewRecognizer(id, m.cfg, m.log)
	if err != nil {
		return fmt.Errorf("set recognizer: %w", err)
	}
	r.Initialize(m.width, m.height)
	if m.recognizer != nil {
		// The old recognizer's contexts go with it; restart every contact.
		for _, t := range m.tracks {
			t.Clear()
		}
	}
	m.recognizer = r
	m.log.Debug("recognizer selected", zap.String("id", id))
	return nil
}

// SetViewport re-derives the recognizer thresholds for a new viewport size.
func (m *Manager) SetViewport(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	if m.recognizer != nil {
		m.recognizer.Initialize(width, height)
	}
}

// Track returns the track of a contact slot, or nil when out of range.
func (m *Manager) Track(contactID int) *TouchTrack {
	if contactID < 0 || contactID >= len(m.tracks) {
		return nil
	}
	return m.tracks[contactID]
}

// ActiveContacts returns how many contacts are currently pressed.
func (m *Manager) ActiveContacts() int {
	n := 0
	for _, t := range m.tracks {
		if t.Active() {
			n++
		}
	}
	return n
}

// Press starts a new track on a contact slot. Out-of-range ids are ignored.
func (m *Manager) Press(contactID int, x, y float64, now int64) {
	t := m.Track(contactID)
	if t == nil {
		return
	}
	t.Start(x, y, now)
	m.trackChanged(t, ChangePress, now)
}

// Move extends the track of a pressed contact.
func (m *Manager) Move(contactID int, x, y float64, now int64) {
	t := m.Track(contactID)
	if t == nil {
		return
	}
	t.Move(x, y, now)
	m.trackChanged(t, ChangeMove, now)
}

// Release ends the track of a pressed contact.
func (m *Manager) Release(contactID int, x, y float64, now int64) {
	t := m.Track(contactID)
	if t == nil {
		return
	}
	t.Release(x, y, now)
	m.trackChanged(t, ChangeRelease, now)
}

func (m *Manager) trackChanged(t *TouchTrack, kind ChangeKind, now int64) {
	if m.recognizer == nil {
		return
	}
	m.recognizer.TrackChanged(t, kind, now)
}

// AddListener registers l. Registering the same listener twice is a no-op
// and reports false.
func (m *Manager) AddListener(l Listener) bool {
	if _, ok := m.handlers.find(l); ok {
		return false
	}
	m.handlers.add(l, nil)
	return true
}

// RemoveListener unregisters l.
func (m *Manager) RemoveListener(l Listener) {
	if id, ok := m.handlers.find(l); ok {
		m.handlers.remove(id)
	}
}

// OnGesture registers a callback for every dispatched gesture.
func (m *Manager) OnGesture(fn func(Event)) CallbackHandle {
	id := m.handlers.add(nil, fn)
	return CallbackHandle{id: id, reg: &m.handlers}
}

// Enabled reports whether Update recognizes anything: a recognizer is set
// and at least one listener is registered.
func (m *Manager) Enabled() bool {
	return m.recognizer != nil && len(m.handlers.handlers) > 0
}

// Update runs one tick: a script step and one injected frame if any, then
// recognition. A valid event is forwarded to every listener and the
// recognizer is reset before Update returns.
func (m *Manager) Update(now int64) {
	if m.runner != nil {
		m.runner.step(m)
	}
	m.processInjectedInput(now)

	if !m.Enabled() {
		return
	}
	m.recognizer.Update(now)
	e := m.recognizer.CurrentEvent()
	if !e.IsValid() {
		return
	}
	m.dispatch(e)
	m.recognizer.Reset()
}

func (m *Manager) dispatch(e Event) {
	for _, h := range m.handlers.handlers {
		if h.listener != nil {
			h.listener.GestureEvent(e)
		}
		if h.fn != nil {
			h.fn(e)
		}
	}
}
