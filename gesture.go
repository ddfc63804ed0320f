package gesture

import "math"

// Vec2 is a 2D vector used for touch positions and chord vectors.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Kind identifies a recognized gesture.
type Kind uint8

const (
	KindUnknown     Kind = iota // default, never dispatched
	KindMove                    // streaming move (one finger, or two-finger pan)
	KindEndMove                 // move stream finished
	KindTap                     // single tap after the double-click window elapsed
	KindLongTap                 // press held past the long-tap window
	KindDoubleClick             // two taps inside the double-click window
	KindSwipe                   // fast straight stroke
	KindArc                     // fast curved stroke
	KindDrag                    // hold then move: drag started
	KindDragMove                // streaming drag position
	KindDrop                    // drag released
	KindPinch                   // two contacts moving apart or together
	KindRotate                  // one of two contacts moving around a resting one
)

var kindNames = [...]string{
	KindUnknown:     "unknown",
	KindMove:        "move",
	KindEndMove:     "end_move",
	KindTap:         "tap",
	KindLongTap:     "long_tap",
	KindDoubleClick: "double_click",
	KindSwipe:       "swipe",
	KindArc:         "arc",
	KindDrag:        "drag",
	KindDragMove:    "drag_move",
	KindDrop:        "drop",
	KindPinch:       "pinch",
	KindRotate:      "rotate",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Direction is one of the eight compass directions of a stroke, in screen
// space (Y grows downward). Values are distinct bits.
type Direction uint32

const (
	DirectionNone        Direction = 0
	DirectionTop         Direction = 1 << (iota - 1)
	DirectionTopRight
	DirectionRight
	DirectionBottomRight
	DirectionBottom
	DirectionBottomLeft
	DirectionLeft
	DirectionTopLeft
)

const diag = math.Sqrt2 / 2

// compass is evaluated in order; the first direction wins a tie.
var compass = [8]struct {
	dir Direction
	vec Vec2
}{
	{DirectionTop, Vec2{0, -1}},
	{DirectionTopRight, Vec2{diag, -diag}},
	{DirectionRight, Vec2{1, 0}},
	{DirectionBottomRight, Vec2{diag, diag}},
	{DirectionBottom, Vec2{0, 1}},
	{DirectionBottomLeft, Vec2{-diag, diag}},
	{DirectionLeft, Vec2{-1, 0}},
	{DirectionTopLeft, Vec2{-diag, -diag}},
}

// Vector returns the unit vector of d, or the zero vector for DirectionNone.
func (d Direction) Vector() Vec2 {
	for _, c := range compass {
		if c.dir == d {
			return c.vec
		}
	}
	return Vec2{}
}

func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "top"
	case DirectionTopRight:
		return "top_right"
	case DirectionRight:
		return "right"
	case DirectionBottomRight:
		return "bottom_right"
	case DirectionBottom:
		return "bottom"
	case DirectionBottomLeft:
		return "bottom_left"
	case DirectionLeft:
		return "left"
	case DirectionTopLeft:
		return "top_left"
	default:
		return "none"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// ArcShape tells which side of its chord a curved stroke bulges toward.
type ArcShape uint8

const (
	ArcNone ArcShape = iota
	ArcUp            // positive offset from the chord in the chord's frame
	ArcDown          // negative offset from the chord in the chord's frame
)

func (a ArcShape) String() string {
	switch a {
	case ArcUp:
		return "up"
	case ArcDown:
		return "down"
	default:
		return "none"
	}
}

// MarshalText encodes the arc shape by name.
func (a ArcShape) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Event is a recognized gesture. The zero value is the invalid sentinel.
// Payload fields are only meaningful for the kinds noted next to them.
type Event struct {
	Kind         Kind    `json:"kind"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Timestamp    int64   `json:"timestamp"`
	ContactCount int     `json:"contactCount"`

	Duration  int64     `json:"duration,omitempty"`  // KindLongTap, milliseconds
	Direction Direction `json:"direction,omitempty"` // KindSwipe, KindArc
	Arc       ArcShape  `json:"arc,omitempty"`       // KindArc
	Scale     float64   `json:"scale,omitempty"`     // KindPinch
	Angle     float64   `json:"angle,omitempty"`     // KindRotate
}

// IsValid reports whether e holds a recognized gesture.
func (e Event) IsValid() bool {
	return e.Kind != KindUnknown
}
