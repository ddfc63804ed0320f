package gesture

import "math"

// RotatePlaceholderAngle is the angle reported by KindRotate events. The
// coordinator does not compute a real rotation angle yet.
const RotatePlaceholderAngle = 1.0

// Config holds the tunables the recognizer derives its thresholds from.
// Times are in milliseconds; ratios are fractions of the viewport.
type Config struct {
	DoubleClickWindow int64 `mapstructure:"double_click_window_ms"`
	DragHold          int64 `mapstructure:"drag_hold_ms"`
	LongTapHold       int64 `mapstructure:"long_tap_hold_ms"`
	MaxSwipeDuration  int64 `mapstructure:"max_swipe_duration_ms"`

	ArcMinXRatio       float64 `mapstructure:"arc_min_x_ratio"`        // of viewport width
	ArcMinYChangeRatio float64 `mapstructure:"arc_min_y_change_ratio"` // of chord length
	SteadyRatio        float64 `mapstructure:"steady_ratio"`           // of viewport width/height
	RotateCosThreshold float64 `mapstructure:"rotate_cos_threshold"`   // unused by the pair classifier

	// FullScreenSwipeSeconds is how long a swipe across the whole screen
	// diagonal may take and still count as a swipe.
	FullScreenSwipeSeconds float64 `mapstructure:"full_screen_swipe_seconds"`

	// Debug turns invariant violations into panics.
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns the stock recognition constants.
func DefaultConfig() Config {
	return Config{
		DoubleClickWindow:      300,
		DragHold:               200,
		LongTapHold:            500,
		MaxSwipeDuration:       700,
		ArcMinXRatio:           0.5,
		ArcMinYChangeRatio:     0.25,
		SteadyRatio:            0.005,
		RotateCosThreshold:     0.98,
		FullScreenSwipeSeconds: 0.5,
	}
}

// Thresholds is the resolution-relative threshold set for one viewport.
type Thresholds struct {
	Width, Height int

	MinXDistanceForArc float64
	ArcMinYChangeRatio float64
	SteadyDistanceX    float64
	SteadyDistanceY    float64
	MinSwipeSpeed      float64 // pixels per second

	DoubleClickWindow  int64
	DragHold           int64
	LongTapHold        int64
	MaxSwipeDuration   int64
	RotateCosThreshold float64
}

// Thresholds derives the threshold set for a width x height viewport.
func (c Config) Thresholds(width, height int) Thresholds {
	w, h := float64(width), float64(height)
	th := Thresholds{
		Width:              width,
		Height:             height,
		MinXDistanceForArc: c.ArcMinXRatio * w,
		ArcMinYChangeRatio: c.ArcMinYChangeRatio,
		SteadyDistanceX:    c.SteadyRatio * w,
		SteadyDistanceY:    c.SteadyRatio * h,
		DoubleClickWindow:  c.DoubleClickWindow,
		DragHold:           c.DragHold,
		LongTapHold:        c.LongTapHold,
		MaxSwipeDuration:   c.MaxSwipeDuration,
		RotateCosThreshold: c.RotateCosThreshold,
	}
	if c.FullScreenSwipeSeconds > 0 {
		th.MinSwipeSpeed = math.Hypot(w, h) / c.FullScreenSwipeSeconds
	}
	return th
}

// SteadyDistance is the chord length under which a contact of a two-contact
// gesture counts as resting.
func (th Thresholds) SteadyDistance() float64 {
	return math.Max(th.SteadyDistanceX, th.SteadyDistanceY)
}

// moved reports whether any single step of t exceeds the steady gate on
// either axis.
func (th Thresholds) moved(t *TouchTrack) bool {
	dx, dy := t.MaxDeviation()
	return dx > th.SteadyDistanceX || dy > th.SteadyDistanceY
}
