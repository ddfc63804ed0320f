package gesture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder is a Listener that keeps every event it receives.
type recorder struct {
	events []Event
}

func (r *recorder) GestureEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []Kind {
	out := make([]Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// newTestManager returns a manager on a 1000x800 viewport with a recorder
// attached. Steady gates are 5px/4px and the minimum swipe speed is about
// 2561 px/s.
func newTestManager(t *testing.T, opts ...Option) (*Manager, *recorder) {
	t.Helper()
	m := NewManager(append([]Option{WithViewport(1000, 800)}, opts...)...)
	rec := &recorder{}
	m.AddListener(rec)
	return m, rec
}

func TestRecognizeTap(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 120, 0)
	m.Update(0)
	m.Release(0, 100, 120, 50)
	m.Update(50)
	m.Update(350) // window not yet passed
	if len(rec.events) != 0 {
		t.Fatalf("tap reported inside the double-click window: %v", rec.kinds())
	}
	m.Update(400)

	want := []Event{{Kind: KindTap, X: 100, Y: 120, Timestamp: 400, ContactCount: 1}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeDoubleClick(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 200, 200, 0)
	m.Update(0)
	m.Release(0, 200, 200, 50)
	m.Update(50)
	m.Press(0, 202, 201, 100)
	m.Update(100)
	m.Release(0, 202, 201, 150)
	m.Update(150)
	m.Update(166)
	for now := int64(200); now <= 2000; now += 100 {
		m.Update(now)
	}

	want := []Event{{Kind: KindDoubleClick, X: 202, Y: 201, Timestamp: 166, ContactCount: 1}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeLongTap(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 50, 60, 0)
	m.Update(0)
	m.Update(250)
	m.Update(450)
	m.Release(0, 50, 60, 600)
	m.Update(600)

	want := []Event{{Kind: KindLongTap, X: 50, Y: 60, Timestamp: 600, ContactCount: 1, Duration: 600}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeHeldTap(t *testing.T) {
	m, rec := newTestManager(t)

	// Held past the drag hold but released before the long-tap hold.
	m.Press(0, 50, 60, 0)
	m.Update(0)
	m.Update(250)
	m.Release(0, 50, 60, 350)
	m.Update(350)

	want := []Event{{Kind: KindTap, X: 50, Y: 60, Timestamp: 350, ContactCount: 1}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeSwipe(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 400, 0)
	m.Update(0)
	m.Move(0, 200, 400, 20)
	m.Update(20)
	m.Release(0, 200, 400, 30)
	m.Update(30)

	want := []Event{{
		Kind:         KindSwipe,
		X:            100,
		Y:            400,
		Timestamp:    30,
		ContactCount: 1,
		Direction:    DirectionRight,
	}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeSwipeTimeout(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 400, 0)
	m.Update(0)
	m.Move(0, 100, 200, 20)
	m.Update(20)
	m.Update(400)
	if len(rec.events) != 0 {
		t.Fatalf("swipe reported early: %v", rec.kinds())
	}
	m.Update(700)

	want := []Event{{
		Kind:         KindSwipe,
		X:            100,
		Y:            400,
		Timestamp:    700,
		ContactCount: 1,
		Direction:    DirectionTop,
	}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if m.Track(0).Active() {
		t.Error("track should be force-released after the swipe window")
	}

	// The physical release arrives later and is ignored.
	m.Release(0, 100, 150, 800)
	m.Update(800)
	m.Update(1500)
	if len(rec.events) != 1 {
		t.Errorf("late release produced events: %v", rec.kinds())
	}
}

func TestRecognizeArc(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 400, 0)
	m.Update(0)
	m.Move(0, 400, 200, 10)
	m.Update(10)
	m.Move(0, 700, 200, 20)
	m.Update(20)
	m.Release(0, 800, 400, 30)
	m.Update(30)

	want := []Event{{
		Kind:         KindArc,
		X:            100,
		Y:            400,
		Timestamp:    30,
		ContactCount: 1,
		Direction:    DirectionRight,
		Arc:          ArcDown,
	}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeMove(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 100, 0)
	m.Update(0)
	m.Move(0, 110, 100, 100) // 100 px/s, well under the swipe speed
	m.Update(100)
	m.Update(120)
	m.Move(0, 115, 100, 150)
	m.Update(150)
	m.Release(0, 120, 100, 200)
	m.Update(200)

	want := []Event{
		{Kind: KindMove, X: 110, Y: 100, Timestamp: 120, ContactCount: 1},
		{Kind: KindMove, X: 115, Y: 100, Timestamp: 150, ContactCount: 1},
		{Kind: KindEndMove, X: 120, Y: 100, Timestamp: 200, ContactCount: 1},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeDragAndDrop(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 100, 0)
	m.Update(0)
	m.Update(250)
	m.Move(0, 110, 100, 300)
	m.Update(300)
	m.Move(0, 120, 100, 350)
	m.Update(350)
	m.Release(0, 120, 100, 400)
	m.Update(400)

	want := []Event{
		{Kind: KindDrag, X: 100, Y: 100, Timestamp: 300, ContactCount: 1},
		{Kind: KindDragMove, X: 120, Y: 100, Timestamp: 350, ContactCount: 1},
		{Kind: KindDrop, X: 120, Y: 100, Timestamp: 400, ContactCount: 1},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeDoubleTapThenSwipe(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 400, 0)
	m.Update(0)
	m.Release(0, 100, 400, 40)
	m.Update(40)
	m.Press(0, 100, 400, 80)
	m.Update(80)
	m.Release(0, 100, 400, 120)
	m.Update(120) // tap -> double tap

	// A third contact on the same slot that moves turns into a swipe.
	m.Press(0, 100, 400, 130)
	m.Move(0, 300, 400, 135)
	m.Update(140)
	m.Release(0, 300, 400, 150)
	m.Update(150)

	want := []Event{{
		Kind:         KindSwipe,
		X:            100,
		Y:            400,
		Timestamp:    150,
		ContactCount: 1,
		Direction:    DirectionRight,
	}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBaseRecognizerReset(t *testing.T) {
	r := NewBaseRecognizer(DefaultConfig(), nil)
	r.Initialize(1000, 800)

	r.Reset()
	r.Reset()
	if r.CurrentEvent().IsValid() {
		t.Error("event should be invalid after Reset")
	}

	r.Update(100)
	if r.CurrentEvent().IsValid() {
		t.Error("update with nothing pending should not produce an event")
	}
	if r.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", r.Pending())
	}
}

func TestBaseRecognizerEventPersistsUntilReset(t *testing.T) {
	r := NewBaseRecognizer(DefaultConfig(), nil)
	r.Initialize(1000, 800)

	tr := NewTouchTrack(0)
	tr.Start(10, 10, 0)
	r.TrackChanged(tr, ChangePress, 0)
	tr.Release(10, 10, 20)
	r.TrackChanged(tr, ChangeRelease, 20)
	r.Update(20)
	r.Update(400)

	if got := r.CurrentEvent(); got.Kind != KindTap {
		t.Fatalf("CurrentEvent = %v, want tap", got.Kind)
	}
	r.Update(500)
	if got := r.CurrentEvent(); got.Kind != KindTap {
		t.Errorf("event lost without Reset: %v", got.Kind)
	}
	r.Reset()
	if r.CurrentEvent().IsValid() {
		t.Error("event should be invalid after Reset")
	}
}

func TestTrackChanged(t *testing.T) {
	r := NewBaseRecognizer(DefaultConfig(), nil)
	r.Initialize(1000, 800)
	tr := NewTouchTrack(0)

	// Changes on an untracked contact are ignored unless it is a press.
	if r.TrackChanged(tr, ChangeMove, 0) {
		t.Error("move on untracked contact should be ignored")
	}
	if r.TrackChanged(tr, ChangePress, 0) {
		t.Error("press on an inactive track should be ignored")
	}

	tr.Start(0, 0, 0)
	if !r.TrackChanged(tr, ChangePress, 0) {
		t.Fatal("press should start a context")
	}
	if r.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", r.Pending())
	}
	tr.Release(0, 0, 10)
	if !r.TrackChanged(tr, ChangeRelease, 10) {
		t.Error("release after press should be accepted")
	}
	if r.TrackChanged(tr, ChangeRelease, 20) {
		t.Error("release after release should be dropped")
	}
	if ctx := r.pending[0]; ctx.repeatCount != 1 || ctx.releaseTime != 10 {
		t.Errorf("context = %+v", ctx)
	}
}

func TestTrackChangedDebugPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	r := NewBaseRecognizer(cfg, nil)
	r.Initialize(1000, 800)

	tr := NewTouchTrack(4)
	tr.Start(0, 0, 0)
	r.TrackChanged(tr, ChangePress, 0)
	tr.Release(0, 0, 10)
	r.TrackChanged(tr, ChangeRelease, 10)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for release after release in debug mode")
		}
	}()
	r.TrackChanged(tr, ChangeRelease, 20)
}

func TestContactStateString(t *testing.T) {
	if stateDragMove.String() != "drag_move" {
		t.Errorf("got %q", stateDragMove.String())
	}
	if contactState(99).String() != "invalid" {
		t.Errorf("got %q", contactState(99).String())
	}
	if ChangeRelease.String() != "release" || ChangeNone.String() != "none" {
		t.Error("ChangeKind strings mismatch")
	}
}

func TestRepressDuringMoveEndsMove(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 100, 0)
	m.Update(0)
	m.Move(0, 110, 100, 100)
	m.Update(100)
	m.Update(120)
	// Lift and land elsewhere between two ticks.
	m.Release(0, 120, 100, 160)
	m.Press(0, 500, 500, 165)
	m.Update(200)
	m.Release(0, 500, 500, 210)
	for now := int64(300); now <= 600; now += 100 {
		m.Update(now)
	}

	want := []Event{
		{Kind: KindMove, X: 110, Y: 100, Timestamp: 120, ContactCount: 1},
		{Kind: KindEndMove, X: 120, Y: 100, Timestamp: 200, ContactCount: 1},
		{Kind: KindTap, X: 500, Y: 500, Timestamp: 600, ContactCount: 1},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRepressDuringDragMoveDrops(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 100, 0)
	m.Update(0)
	m.Update(250)
	m.Move(0, 110, 100, 300)
	m.Update(300)
	m.Move(0, 120, 100, 350)
	m.Update(350)
	m.Release(0, 130, 100, 400)
	m.Press(0, 300, 300, 405)
	m.Update(420)

	want := []Event{
		{Kind: KindDrag, X: 100, Y: 100, Timestamp: 300, ContactCount: 1},
		{Kind: KindDragMove, X: 120, Y: 100, Timestamp: 350, ContactCount: 1},
		{Kind: KindDrop, X: 130, Y: 100, Timestamp: 420, ContactCount: 1},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	r := m.Recognizer().(*BaseRecognizer)
	if r.Pending() != 1 || r.pending[0].state != stateTap {
		t.Errorf("new press should start a fresh tap context: %+v", r.pending)
	}
}
