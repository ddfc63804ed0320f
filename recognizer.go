package gesture

import "go.uber.org/zap"

// Recognizer turns per-contact track changes into gesture events, one tick
// at a time. Implementations are single-threaded: TrackChanged and Update
// must not run concurrently.
type Recognizer interface {
	// ID returns the identifier the recognizer was registered under.
	ID() string
	// Initialize derives thresholds for a width x height viewport. It may be
	// called again when the viewport changes.
	Initialize(width, height int)
	// TrackChanged records that t was pressed, moved or released at now.
	// It never emits events; recognition happens in Update.
	TrackChanged(t *TouchTrack, kind ChangeKind, now int64) bool
	// Update runs one recognition tick.
	Update(now int64)
	// CurrentEvent returns the live event. It is invalid when nothing was
	// recognized since the last Reset.
	CurrentEvent() Event
	// Reset invalidates the live event.
	Reset()
}

// ChangeKind is the kind of raw change reported for a contact.
type ChangeKind uint8

const (
	ChangeNone ChangeKind = iota
	ChangePress
	ChangeMove
	ChangeRelease
)

func (k ChangeKind) String() string {
	switch k {
	case ChangePress:
		return "press"
	case ChangeMove:
		return "move"
	case ChangeRelease:
		return "release"
	default:
		return "none"
	}
}

// contactState is the per-contact recognition state.
type contactState uint8

const (
	stateTap contactState = iota
	stateSwipe
	stateMove
	stateLongTap
	stateDoubleTap
	stateDrag
	stateDragMove
	stateMulti
	stateNone
)

var stateNames = [...]string{
	stateTap:       "tap",
	stateSwipe:     "swipe",
	stateMove:      "move",
	stateLongTap:   "long_tap",
	stateDoubleTap: "double_tap",
	stateDrag:      "drag",
	stateDragMove:  "drag_move",
	stateMulti:     "multi",
	stateNone:      "none",
}

func (s contactState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "invalid"
}

// recognitionContext is the recognition state of one tracked contact. It
// lives in the pending list until its contact concludes.
type recognitionContext struct {
	track       *TouchTrack
	lastChange  ChangeKind
	releaseTime int64
	releasePos  Vec2
	repeatCount int
	state       contactState
}

// BaseRecognizer is the stock recognizer: a per-contact state machine for
// taps, swipes, arcs, moves and drags, plus a two-contact coordinator for
// pinch, rotate and two-finger pan.
type BaseRecognizer struct {
	cfg Config
	th  Thresholds
	log *zap.Logger

	event    Event
	deferred Event
	pending  []recognitionContext
	batch   []recognitionContext
	pair    pairCoordinator
}

// NewBaseRecognizer creates a BaseRecognizer. Call Initialize before the
// first Update. A nil logger disables logging.
func NewBaseRecognizer(cfg Config, log *zap.Logger) *BaseRecognizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &BaseRecognizer{
		cfg: cfg,
		log: log.Named(BaseRecognizerID),
	}
}

// ID returns BaseRecognizerID.
func (r *BaseRecognizer) ID() string { return BaseRecognizerID }

// Initialize derives the threshold set for the viewport.
func (r *BaseRecognizer) Initialize(width, height int) {
	r.th = r.cfg.Thresholds(width, height)
	r.log.Debug("thresholds initialized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("steadyX", r.th.SteadyDistanceX),
		zap.Float64("steadyY", r.th.SteadyDistanceY),
		zap.Float64("minSwipeSpeed", r.th.MinSwipeSpeed))
}

// Thresholds returns the active threshold set.
func (r *BaseRecognizer) Thresholds() Thresholds { return r.th }

// CurrentEvent returns the live event.
func (r *BaseRecognizer) CurrentEvent() Event { return r.event }

// Reset invalidates the live event.
func (r *BaseRecognizer) Reset() { r.event = Event{} }

// Pending returns the number of contacts still under recognition.
func (r *BaseRecognizer) Pending() int { return len(r.pending) }

func (r *BaseRecognizer) find(t *TouchTrack) int {
	for i := range r.pending {
		if r.pending[i].track == t {
			return i
		}
	}
	return -1
}

// TrackChanged records a press, move or release of t.
//
// A press on an untracked contact starts a new context in the tap state. A
// release bumps the repeat count and remembers its time so the tap state can
// tell a single tap from a double click. A press on a contact whose context
// is past the tap states supersedes that context, carrying over a pending
// EndMove or Drop to the next Update. Changes on untracked contacts other
// than a press, and moves of a released contact, are ignored. It reports
// whether the change was recorded.
func (r *BaseRecognizer) TrackChanged(t *TouchTrack, kind ChangeKind, now int64) bool {
	i := r.find(t)
	if i < 0 {
		if kind != ChangePress || !t.Active() {
			return false
		}
		r.pending = append(r.pending, recognitionContext{
			track:       t,
			lastChange:  kind,
			releaseTime: now,
			state:       stateTap,
		})
		return true
	}

	ctx := &r.pending[i]
	switch kind {
	case ChangeMove:
		if !t.Active() {
			return false
		}
	case ChangePress:
		if ctx.state != stateTap && ctx.state != stateDoubleTap {
			r.supersede(ctx)
			*ctx = recognitionContext{
				track:       t,
				lastChange:  kind,
				releaseTime: now,
				state:       stateTap,
			}
			return true
		}
	}
	if kind == ChangeRelease {
		if ctx.lastChange != ChangePress && ctx.lastChange != ChangeMove {
			if r.cfg.Debug {
				debugCheckRelease(t.ContactID(), ctx.lastChange)
			}
			r.log.Warn("dropping release",
				zap.Int("contact", t.ContactID()),
				zap.Stringer("last", ctx.lastChange))
			return false
		}
		ctx.releaseTime = now
		ctx.releasePos = t.EndPos()
		ctx.repeatCount++
	}
	ctx.lastChange = kind
	return true
}

// supersede abandons ctx for a new press of its contact. A released move or
// drag still owes its terminal event, which is held for the next Update.
func (r *BaseRecognizer) supersede(ctx *recognitionContext) {
	kind := KindUnknown
	if ctx.lastChange == ChangeRelease {
		switch ctx.state {
		case stateMove:
			kind = KindEndMove
		case stateDragMove:
			kind = KindDrop
		}
	}
	if kind != KindUnknown {
		r.deferred = Event{Kind: kind, X: ctx.releasePos.X, Y: ctx.releasePos.Y, ContactCount: 1}
	}
	r.log.Debug("context superseded",
		zap.Int("contact", ctx.track.ContactID()),
		zap.Stringer("state", ctx.state),
		zap.Stringer("carried", kind))
}

func (r *BaseRecognizer) activeCount() int {
	n := 0
	for i := range r.pending {
		if r.pending[i].track.Active() {
			n++
		}
	}
	return n
}

// Update runs one tick. With two or more active contacts the pair
// coordinator owns the tick; otherwise every context pending at the start of
// the tick is stepped once and either re-queued or concluded.
func (r *BaseRecognizer) Update(now int64) {
	if r.deferred.IsValid() {
		e := r.deferred
		e.Timestamp = now
		r.deferred = Event{}
		r.emit(e)
	}
	if r.activeCount() > 1 {
		r.pair.update(r, now)
		return
	}
	if r.pair.panning {
		r.emit(Event{
			Kind:         KindEndMove,
			X:            r.pair.lastPan.X,
			Y:            r.pair.lastPan.Y,
			Timestamp:    now,
			ContactCount: 2,
		})
		r.pair.reset()
	}

	batch := r.pending
	r.pending = r.batch[:0]
	for _, ctx := range batch {
		r.step(ctx, now)
	}
	r.batch = batch[:0]
	r.debugCheckPending()
}

func (r *BaseRecognizer) step(ctx recognitionContext, now int64) {
	switch ctx.state {
	case stateTap:
		r.onTap(ctx, now)
	case stateSwipe:
		r.onSwipe(ctx, now)
	case stateMove:
		r.onMove(ctx, now)
	case stateLongTap:
		r.onLongTap(ctx, now)
	case stateDoubleTap:
		r.onDoubleTap(ctx, now)
	case stateDrag:
		r.onDrag(ctx, now)
	case stateDragMove:
		r.onDragMove(ctx, now)
	default:
		ctx.track.ForceRelease()
	}
}

func (r *BaseRecognizer) requeue(ctx recognitionContext) {
	r.pending = append(r.pending, ctx)
}

func (r *BaseRecognizer) transition(ctx *recognitionContext, to contactState) {
	if ce := r.log.Check(zap.DebugLevel, "transition"); ce != nil {
		ce.Write(
			zap.Int("contact", ctx.track.ContactID()),
			zap.Stringer("from", ctx.state),
			zap.Stringer("to", to))
	}
	ctx.state = to
}

// emit overwrites the live event.
func (r *BaseRecognizer) emit(e Event) {
	r.Reset()
	r.event = e
	r.logEmit(e)
}

func (r *BaseRecognizer) emitAt(kind Kind, p Vec2, now int64) {
	r.emit(Event{Kind: kind, X: p.X, Y: p.Y, Timestamp: now, ContactCount: 1})
}

// onTap holds a fresh contact until it moves, is held long enough to become
// a drag, or is released. A released single tap is only reported once the
// double-click window has passed without a second press.
func (r *BaseRecognizer) onTap(ctx recognitionContext, now int64) {
	t := ctx.track
	if !t.Active() {
		if ctx.repeatCount > 1 {
			r.transition(&ctx, stateDoubleTap)
			r.requeue(ctx)
			return
		}
		if ctx.releaseTime+r.th.DoubleClickWindow < now {
			r.emitAt(KindTap, t.StartPos(), now)
			return
		}
		r.requeue(ctx)
		return
	}

	if r.th.moved(t) {
		if maxSpeed, _, ok := t.Speeds(); ok && maxSpeed < r.th.MinSwipeSpeed {
			r.transition(&ctx, stateMove)
		} else {
			r.transition(&ctx, stateSwipe)
		}
		r.requeue(ctx)
		return
	}
	if t.ElapsedSince(now) > r.th.DragHold {
		r.transition(&ctx, stateDrag)
	}
	r.requeue(ctx)
}

// onSwipe waits for release or for the swipe window to run out, then
// classifies the stroke.
func (r *BaseRecognizer) onSwipe(ctx recognitionContext, now int64) {
	t := ctx.track
	if t.Active() && t.ElapsedSince(now) < r.th.MaxSwipeDuration {
		r.requeue(ctx)
		return
	}

	start := t.StartPos()
	isArc, shape, dir := t.ClassifyShape(r.th.MinXDistanceForArc, r.th.ArcMinYChangeRatio)
	e := Event{
		Kind:         KindSwipe,
		X:            start.X,
		Y:            start.Y,
		Timestamp:    now,
		ContactCount: 1,
		Direction:    dir,
	}
	if isArc {
		e.Kind = KindArc
		e.Arc = shape
	}
	r.emit(e)

	if t.Active() {
		t.ForceRelease()
	}
}

func (r *BaseRecognizer) onMove(ctx recognitionContext, now int64) {
	t := ctx.track
	if !t.Active() {
		r.emitAt(KindEndMove, t.EndPos(), now)
		return
	}
	r.emitAt(KindMove, t.EndPos(), now)
	r.requeue(ctx)
}

func (r *BaseRecognizer) onLongTap(ctx recognitionContext, now int64) {
	t := ctx.track
	if t.Active() {
		r.requeue(ctx)
		return
	}
	start := t.StartPos()
	r.emit(Event{
		Kind:         KindLongTap,
		X:            start.X,
		Y:            start.Y,
		Timestamp:    now,
		ContactCount: 1,
		Duration:     t.Duration(),
	})
}

func (r *BaseRecognizer) onDoubleTap(ctx recognitionContext, now int64) {
	t := ctx.track
	if !t.Active() {
		r.emitAt(KindDoubleClick, t.StartPos(), now)
		return
	}
	if r.th.moved(t) {
		r.transition(&ctx, stateSwipe)
	} else if t.ElapsedSince(now) > r.th.DragHold {
		r.transition(&ctx, stateDrag)
	}
	r.requeue(ctx)
}

// onDrag waits on a held contact. Moving starts the drag; releasing without
// moving reports a tap or, past the long-tap window, a long tap.
func (r *BaseRecognizer) onDrag(ctx recognitionContext, now int64) {
	t := ctx.track
	start := t.StartPos()
	if !t.Active() {
		if t.ElapsedSince(now) >= r.th.LongTapHold {
			r.emit(Event{
				Kind:         KindLongTap,
				X:            start.X,
				Y:            start.Y,
				Timestamp:    now,
				ContactCount: 1,
				Duration:     t.Duration(),
			})
			return
		}
		r.emitAt(KindTap, start, now)
		return
	}
	if r.th.moved(t) {
		r.emitAt(KindDrag, start, now)
		r.transition(&ctx, stateDragMove)
	}
	r.requeue(ctx)
}

func (r *BaseRecognizer) onDragMove(ctx recognitionContext, now int64) {
	t := ctx.track
	if !t.Active() {
		r.emitAt(KindDrop, t.EndPos(), now)
		return
	}
	r.emitAt(KindDragMove, t.EndPos(), now)
	r.requeue(ctx)
}
