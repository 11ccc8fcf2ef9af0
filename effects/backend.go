// Package effects holds the Effects Layer: the engine-visible state that
// syscalls mutate (flags, palette, prim properties, parts, text buffers,
// timers, dissolve state) plus two small swappable backend interfaces,
// VideoBackend and AudioBackend. The backends are optional and
// intentionally thin — spec.md keeps GPU rendering and audio mixing
// internals out of scope; only their abstract contracts are referenced
// here, exercised by a headless no-op implementation (the default, and
// what every vm/syscalls test runs against) and a minimal ebiten/oto-backed
// implementation used only by cmd/hcbvmrun.
package effects

// Rect is a flat axis-aligned rectangle in virtual screen space, the only
// shape the optional real video backend draws per prim.
type Rect struct {
	X, Y, W, H int32
	R, G, B, A uint8
}

// VideoBackend is the abstract contract for presenting prim state. A host
// calls Present once per redraw; DrawRect is invoked once per visible prim
// during Present.
type VideoBackend interface {
	Resize(width, height int)
	DrawRect(r Rect)
	Present()
	Close() error
}

// AudioBackend is the abstract contract for BGM/SE channel playback.
type AudioBackend interface {
	// PlayTone starts (or restarts) a simple tone on channel id at the given
	// normalized volume (0.0..1.0); freqHz 0 stops the channel.
	PlayTone(channel int, freqHz float64, volume float64)
	StopChannel(channel int)
	Close() error
}
