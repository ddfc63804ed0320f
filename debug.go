package gesture

import (
	"fmt"

	"go.uber.org/zap"
)

// debugCheckRelease panics with a descriptive message when a release is
// reported for a contact whose previous change was not a press or a move.
// Only called in debug mode; release builds log and drop the event instead.
func debugCheckRelease(contact int, last ChangeKind) {
	panic(fmt.Sprintf("gesture debug: release on contact %d after %s", contact, last))
}

// debugMaxPending is the pending-context count above which a warning is
// logged. Anything near it means contexts are never concluding.
const debugMaxPending = 16

func (r *BaseRecognizer) debugCheckPending() {
	if len(r.pending) > debugMaxPending {
		r.log.Warn("pending contexts exceed threshold",
			zap.Int("pending", len(r.pending)),
			zap.Int("threshold", debugMaxPending))
	}
}

// logEmit records the event that now occupies the slot.
func (r *BaseRecognizer) logEmit(e Event) {
	if ce := r.log.Check(zap.DebugLevel, "gesture"); ce != nil {
		ce.Write(
			zap.Stringer("kind", e.Kind),
			zap.Float64("x", e.X),
			zap.Float64("y", e.Y),
			zap.Int64("t", e.Timestamp),
			zap.Int("contacts", e.ContactCount),
		)
	}
}
