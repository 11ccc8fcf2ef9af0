package effects

// Dissolve starts a global fade keyed by either a solid color (kind==
// DissolveColor) or a mask graph (kind==DissolveMask); completion after
// durationMs unblocks any context parked in DISSOLVE_WAIT (spec.md §6
// Other anm group, §4.G step 2). No compositing is performed -- out of
// scope per spec.md §1 -- this only tracks the fade's lifecycle.
func (s *State) Dissolve(kind DissolveType, durationMs uint64) {
	s.DissolveType = kind
	s.dissolveDurationMs = durationMs
	s.dissolveElapsedMs = 0
}

// AdvanceDissolve steps an in-flight fade by frameMs, flipping DissolveType
// back to DissolveNone once the fade's duration elapses. Must run before a
// Runner.Tick snapshots dissolve_type for its DISSOLVE_WAIT unblock check.
func (s *State) AdvanceDissolve(frameMs uint64) {
	if s.DissolveType == DissolveNone || s.dissolveDurationMs == 0 {
		return
	}
	s.dissolveElapsedMs += frameMs
	if s.dissolveElapsedMs >= s.dissolveDurationMs {
		s.DissolveType = DissolveNone
		s.dissolveElapsedMs = 0
		s.dissolveDurationMs = 0
	}
}

// SnowSet toggles the global snow-overlay effect.
func (s *State) SnowSet(on bool) { s.Snowing = on }

// LipAnim and LipSync are acknowledged but unimplemented: mouth-shape
// animation keyed to voice playback needs the audio backend's amplitude
// envelope, which the headless/oto backends don't expose (spec.md §1 scopes
// out audio mixing DSP internals).
