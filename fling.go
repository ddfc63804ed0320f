package gesture

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fling eases a release velocity down to rest. Start one from a swipe's
// velocity and call Update(dt) each frame, applying the returned delta to
// whatever the swipe was moving.
//
// There is no global fling manager; callers call Update themselves.
type Fling struct {
	tweens [2]*gween.Tween
	last   [2]float64
	Done   bool
}

// NewFling creates a fling starting at velocity (vx, vy) pixels per second
// that comes to rest after duration seconds. The total travel equals that
// of a linear slowdown: velocity * duration / 2. A nil fn uses ease.OutCubic.
func NewFling(vx, vy float64, duration float32, fn ease.TweenFunc) *Fling {
	if fn == nil {
		fn = ease.OutCubic
	}
	f := &Fling{}
	if duration <= 0 {
		f.Done = true
		return f
	}
	d := float64(duration) / 2
	f.tweens[0] = gween.New(0, float32(vx*d), duration, fn)
	f.tweens[1] = gween.New(0, float32(vy*d), duration, fn)
	return f
}

// FlingFromTrack creates a fling from the release velocity of t.
func FlingFromTrack(t *TouchTrack, duration float32, fn ease.TweenFunc) *Fling {
	v := t.Velocity()
	return NewFling(v.X, v.Y, duration, fn)
}

// Update advances the fling by dt seconds and returns the offset travelled
// since the previous call.
func (f *Fling) Update(dt float32) (dx, dy float64, done bool) {
	if f.Done {
		return 0, 0, true
	}
	allDone := true
	var delta [2]float64
	for i, tw := range f.tweens {
		val, finished := tw.Update(dt)
		delta[i] = float64(val) - f.last[i]
		f.last[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	f.Done = allDone
	return delta[0], delta[1], f.Done
}

// Offset returns the total offset travelled so far.
func (f *Fling) Offset() (x, y float64) {
	return f.last[0], f.last[1]
}
