// Package mapnav turns raw pointer and key input into navigation commands
// for a map view rendered with [Ebitengine].
//
// The package does not draw maps itself. It drives an [Engine], an external
// facade that owns the map state and knows how to pan, zoom and render.
// [MapEngine] is a small grid engine used by the demo and the tests.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and feeds
// its input to a [View]:
//
//	conf, err := mapnav.LoadConfig(mapnav.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine := mapnav.NewMapEngine(0, 0)
//	view := mapnav.NewView(engine, conf)
//	mapnav.Run(view, mapnav.RunConfig{Title: "Map", Width: 800, Height: 600})
//
// For full control, build a [GestureCoordinator] and call
// [GestureCoordinator.HandlePointer], [GestureCoordinator.HandleKey] and
// [GestureCoordinator.Advance] from your own loop.
//
// # Recognizers
//
// Every pointer [Event] is offered to three recognizers, always in the same
// order and without short-circuiting:
//
//   - [TwoFingerTapDetector] reports two fingers pressed and lifted together
//     within [TwoFingerDurationTolerance] milliseconds without moving more
//     than [TwoFingerMovementTolerance] pixels. The coordinator zooms out one
//     step.
//   - [PrimaryGestureRouter] handles single taps (pan to the tap), double
//     taps (zoom in one step around the first tap) and scrolls. A touch held
//     past [LongPressTimeout] is not a tap.
//   - [ScalePipeline] quantizes a pinch into whole zoom steps with a
//     [ScaleStepQuantizer]. A pinch only starts once the finger span has
//     moved more than [ScaleSpanSlop] pixels.
//
// Commands produced while handling one event are applied to the engine in
// emission order and trigger at most one redraw.
//
// Scroll and pinch are "extra" gestures: they only produce commands while
// [Settings.ExtraGesturesEnabled] reports true.
//
// # Configuration
//
// [Config] is stored as TOML and implements [Settings]. [LoadConfig] writes
// the defaults when the file does not exist yet.
//
// # Testing
//
// A [View] can replay synthetic input without a touch screen. Use
// [View.InjectTap], [View.InjectDoubleTap], [View.InjectTwoFingerTap],
// [View.InjectDrag], [View.InjectPinch] and [View.InjectKey], or load a JSON
// script with [LoadTestScript] and attach it with [View.SetTestRunner].
// Scripts may capture screenshots through [View.Screenshot].
//
// [Ebitengine]: https://ebitengine.org
package mapnav
