// Package gesture recognizes touch and mouse gestures for [Ebitengine] games
// and any other tick-driven program.
//
// Raw contact changes (press, move, release) are recorded into a
// [TouchTrack] per contact slot. Once per tick a [Recognizer] inspects the
// tracks and may produce one [Event]: tap, double click, long tap, swipe,
// arc, move, drag, drop, pinch, rotate or two-finger pan.
//
// # Quick start
//
// Create a [Manager], register a handler and feed it input each tick. With
// Ebitengine, [EbitenSource] does the polling:
//
//	m := gesture.NewManager(gesture.WithViewport(640, 480))
//	src := gesture.NewEbitenSource(m.MaxContacts())
//	m.OnGesture(func(e gesture.Event) {
//		if e.Kind == gesture.KindSwipe {
//			// ...
//		}
//	})
//
//	func (g *Game) Update() error { src.Update(m); return nil }
//
// Outside Ebitengine, call [Manager.Press], [Manager.Move] and
// [Manager.Release] from your own event source and [Manager.Update] once per
// tick with a millisecond timestamp.
//
// # Thresholds
//
// Distances and speeds scale with the viewport. Call [Manager.SetViewport]
// from Layout so a swipe on a phone and a swipe on a desktop window are
// judged alike. Timing windows come from [Config].
//
// # Recognizers
//
// The stock recognizer is registered as [BaseRecognizerID]. Additional
// recognizers are registered with [RegisterRecognizer] and selected with
// [Manager.SetRecognizer].
//
// # Testing
//
// [Manager.InjectTap], [Manager.InjectSwipe] and friends queue synthetic
// input consumed one frame per Update. [LoadScript] builds a
// [ScriptRunner] from a JSON script for replaying whole sessions; the
// gesturereplay command does the same from the terminal.
//
// Released swipes can be continued with a [Fling] (via [gween]). Recognized
// events can be published into a [Donburi] world with the adapter in
// gesture/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gesture
