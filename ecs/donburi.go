package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for recognized gestures.
// Subscribe to this in your ECS systems to receive taps, swipes, drags and
// two-contact gestures.
var GestureEventType = events.NewEventType[gesture.Event]()

// DonburiListener publishes every gesture it receives to a Donburi world.
type DonburiListener struct {
	world donburi.World
}

// NewDonburiListener creates a gesture.Listener backed by a Donburi world.
// Gestures are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiListener(world donburi.World) *DonburiListener {
	return &DonburiListener{world: world}
}

// GestureEvent publishes e.
func (l *DonburiListener) GestureEvent(e gesture.Event) {
	GestureEventType.Publish(l.world, e)
}
