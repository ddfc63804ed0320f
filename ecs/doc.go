// Package ecs provides ECS adapters for gesture recognition.
//
// The primary adapter is [NewDonburiListener], which bridges recognized
// gestures into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	listener := ecs.NewDonburiListener(world)
//	manager.AddListener(listener)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
