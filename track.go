package gesture

import "math"

// forcedReleaseDelay is added to the only point of a single-point track when
// it is force-released, so the synthesized release has a non-zero duration.
const forcedReleaseDelay = 200

const defaultTrackCap = 32

// TouchPoint is one recorded sample of a contact.
type TouchPoint struct {
	Pos  Vec2
	Time int64 // milliseconds
}

// TouchTrack is the ordered point history of one contact slot, from press to
// release. A track is active between Start and Release; Start clears it.
type TouchTrack struct {
	points  []TouchPoint
	active  bool
	contact int
}

// NewTouchTrack returns an empty, inactive track for the given contact slot.
func NewTouchTrack(contactID int) *TouchTrack {
	return &TouchTrack{
		points:  make([]TouchPoint, 0, defaultTrackCap),
		contact: contactID,
	}
}

// ContactID returns the slot index this track belongs to.
func (t *TouchTrack) ContactID() int { return t.contact }

// Active reports whether the contact is currently pressed.
func (t *TouchTrack) Active() bool { return t.active }

// Len returns the number of recorded points.
func (t *TouchTrack) Len() int { return len(t.points) }

// Point returns the i-th recorded point.
func (t *TouchTrack) Point(i int) TouchPoint { return t.points[i] }

// Start discards any prior history, marks the track active and records the
// first point.
func (t *TouchTrack) Start(x, y float64, now int64) {
	t.points = t.points[:0]
	t.active = true
	t.points = append(t.points, TouchPoint{Vec2{x, y}, now})
}

// Move appends a point while the track is active.
func (t *TouchTrack) Move(x, y float64, now int64) {
	if !t.active {
		return
	}
	t.points = append(t.points, TouchPoint{Vec2{x, y}, now})
}

// Release appends the final point and marks the track inactive.
func (t *TouchTrack) Release(x, y float64, now int64) {
	if !t.active {
		return
	}
	t.points = append(t.points, TouchPoint{Vec2{x, y}, now})
	t.active = false
}

// ForceRelease ends the track regardless of the contact's physical state.
// A single-point track gets a synthetic release at the same position
// forcedReleaseDelay ms after the press.
func (t *TouchTrack) ForceRelease() {
	if !t.active {
		return
	}
	if len(t.points) == 1 {
		p := t.points[0]
		t.Release(p.Pos.X, p.Pos.Y, p.Time+forcedReleaseDelay)
	}
	t.active = false
}

// Clear empties the track and marks it inactive.
func (t *TouchTrack) Clear() {
	t.points = t.points[:0]
	t.active = false
}

// StartPos returns the first recorded position, or the zero vector when empty.
func (t *TouchTrack) StartPos() Vec2 {
	if len(t.points) == 0 {
		return Vec2{}
	}
	return t.points[0].Pos
}

// EndPos returns the last recorded position, or the zero vector when empty.
func (t *TouchTrack) EndPos() Vec2 {
	if len(t.points) == 0 {
		return Vec2{}
	}
	return t.points[len(t.points)-1].Pos
}

// Chord returns the vector from the first to the last recorded point.
func (t *TouchTrack) Chord() Vec2 {
	return t.EndPos().Sub(t.StartPos())
}

// Duration returns the time between the first and last points, or 0 for
// fewer than two points.
func (t *TouchTrack) Duration() int64 {
	if len(t.points) < 2 {
		return 0
	}
	return t.points[len(t.points)-1].Time - t.points[0].Time
}

// ElapsedSince returns now minus the time of the first point, or 0 when empty.
func (t *TouchTrack) ElapsedSince(now int64) int64 {
	if len(t.points) == 0 {
		return 0
	}
	return now - t.points[0].Time
}

// Speeds returns the peak step speed and the chord speed over the whole
// track, both in pixels per second. ok is false for fewer than two points or
// when every step has zero elapsed time.
func (t *TouchTrack) Speeds() (maxSpeed, avgSpeed float64, ok bool) {
	if len(t.points) < 2 {
		return 0, 0, false
	}
	for i := 1; i < len(t.points); i++ {
		p0, p1 := t.points[i-1], t.points[i]
		dt := p1.Time - p0.Time
		if dt == 0 {
			continue
		}
		speed := p1.Pos.Sub(p0.Pos).Len() * 1000 / float64(dt)
		if speed > maxSpeed {
			maxSpeed = speed
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	if dt := t.Duration(); dt != 0 {
		avgSpeed = t.Chord().Len() * 1000 / float64(dt)
	}
	return maxSpeed, avgSpeed, true
}

// Velocity returns the chord divided by the track duration, in pixels per
// second. A zero-duration track has zero velocity.
func (t *TouchTrack) Velocity() Vec2 {
	dt := t.Duration()
	if dt == 0 {
		return Vec2{}
	}
	return t.Chord().Scale(1000 / float64(dt))
}

// MaxDeviation returns the largest absolute per-axis step between
// consecutive points. It is not the total displacement.
func (t *TouchTrack) MaxDeviation() (dx, dy float64) {
	for i := 1; i < len(t.points); i++ {
		step := t.points[i].Pos.Sub(t.points[i-1].Pos)
		dx = math.Max(dx, math.Abs(step.X))
		dy = math.Max(dy, math.Abs(step.Y))
	}
	return dx, dy
}

// ClassifyShape decides whether the track is an arc or a straight stroke.
//
// Points are projected into a frame whose x-axis runs along the chord. With at
// least four points and a chord whose horizontal span exceeds minXDistance,
// the intermediate point furthest from the chord decides: if its offset
// relative to the chord length reaches minYChangeRatio the track is an arc
// (a stroke lying exactly on its chord never is),
// shaped by the sign of that offset and directed left or right by the chord.
// Otherwise dir is the compass direction closest to the chord. A zero-length
// chord has no direction.
func (t *TouchTrack) ClassifyShape(minXDistance, minYChangeRatio float64) (isArc bool, shape ArcShape, dir Direction) {
	n := len(t.points)
	if n == 0 {
		return false, ArcNone, DirectionNone
	}
	p0 := t.points[0].Pos
	chord := t.Chord()
	length := chord.Len()
	if length == 0 {
		return false, ArcNone, DirectionNone
	}
	u := chord.Scale(1 / length)

	if n >= 4 && math.Abs(chord.X) > minXDistance {
		var maxDev, topY float64
		for i := 1; i < n-1; i++ {
			d := t.points[i].Pos.Sub(p0)
			// y coordinate after rotating d by -angle(chord)
			ry := u.X*d.Y - u.Y*d.X
			if math.Abs(ry) > maxDev {
				maxDev = math.Abs(ry)
				topY = ry
			}
		}
		if maxDev > 0 && maxDev/length >= minYChangeRatio {
			shape = ArcDown
			if topY > 0 {
				shape = ArcUp
			}
			dir = DirectionLeft
			if chord.X > 0 {
				dir = DirectionRight
			}
			return true, shape, dir
		}
	}

	best := math.Inf(-1)
	for _, c := range compass {
		if d := u.Dot(c.vec); d > best {
			best = d
			dir = c.dir
		}
	}
	return false, ArcNone, dir
}
