package gesture

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugCheckReleaseMessage(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "gesture debug:") {
			t.Errorf("panic message should carry the debug prefix, got: %s", msg)
		}
		if !strings.Contains(msg, "contact 3") || !strings.Contains(msg, "after release") {
			t.Errorf("panic message should name contact and last change, got: %s", msg)
		}
	}()
	debugCheckRelease(3, ChangeRelease)
}

func TestReleaseDroppedWithoutDebug(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewBaseRecognizer(DefaultConfig(), zap.New(core))
	r.Initialize(1000, 800)

	tr := NewTouchTrack(1)
	tr.Start(0, 0, 0)
	r.TrackChanged(tr, ChangePress, 0)
	tr.Release(0, 0, 10)
	r.TrackChanged(tr, ChangeRelease, 10)

	if r.TrackChanged(tr, ChangeRelease, 20) {
		t.Error("duplicate release should not be recorded")
	}
	if got := logs.FilterMessage("dropping release").Len(); got != 1 {
		t.Errorf("expected 1 dropped-release warning, got %d", got)
	}
	if ctx := r.pending[0]; ctx.repeatCount != 1 || ctx.releaseTime != 10 {
		t.Errorf("context changed by dropped release: %+v", ctx)
	}
}

func TestDebugCheckPendingWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewBaseRecognizer(DefaultConfig(), zap.New(core))

	for i := 0; i < debugMaxPending; i++ {
		r.pending = append(r.pending, recognitionContext{track: NewTouchTrack(i)})
	}
	r.debugCheckPending()
	if logs.Len() != 0 {
		t.Fatalf("no warning expected at the threshold, got %d", logs.Len())
	}

	r.pending = append(r.pending, recognitionContext{track: NewTouchTrack(debugMaxPending)})
	r.debugCheckPending()
	entries := logs.FilterMessage("pending contexts exceed threshold").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["pending"]; got != int64(debugMaxPending+1) {
		t.Errorf("pending field = %v", got)
	}
}

func TestLogEmitOnlyAtDebug(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewBaseRecognizer(DefaultConfig(), zap.New(core))
	r.emit(Event{Kind: KindTap, X: 1, Y: 2, Timestamp: 3, ContactCount: 1})
	if logs.Len() != 0 {
		t.Errorf("emit logged %d entries above debug level", logs.Len())
	}
	if r.CurrentEvent().Kind != KindTap {
		t.Error("event not stored")
	}
}

func TestStrayMoveDoesNotReviveRelease(t *testing.T) {
	m, rec := newTestManager(t)

	m.Press(0, 100, 100, 0)
	m.Update(0)
	m.Release(0, 100, 100, 50)
	m.Move(0, 100, 100, 60)
	m.Release(0, 100, 100, 70)
	for now := int64(100); now <= 1000; now += 100 {
		m.Update(now)
	}

	if diff := cmp.Diff([]Kind{KindTap}, rec.kinds()); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	r := m.Recognizer().(*BaseRecognizer)
	tr := m.Track(0)
	if r.TrackChanged(tr, ChangeMove, 1100) {
		t.Error("move of a released contact should not be recorded")
	}
}
