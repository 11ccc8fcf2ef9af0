package effects

// MotionCurve selects the easing function a Motion interpolates with.
type MotionCurve int32

const (
	CurveLinear MotionCurve = iota
	CurveAccelerate
	CurveDecelerate
	CurveRebound
	CurveBounce
	CurveImmediate
)

// MotionProperty names which Prim field a Motion drives. Each property is
// tracked independently per prim, so e.g. a position move and an
// alpha-fade on the same prim run concurrently and stop/query separately
// (original_source's motion.rs registers MotionAlphaStop/Test,
// MotionMoveStop/Test, etc. as distinct syscalls for exactly this reason).
type MotionProperty int32

const (
	MotionAlpha MotionProperty = iota
	MotionMove
	MotionMoveR  // rotation
	MotionMoveS2 // scale
	MotionMoveZ
	MotionAnim // cel/frame index animation
)

// Motion is one in-flight property animation on a prim (spec.md §6 Motion
// group). DurationMs must be in 1..300000 per spec; Reverse flips the time
// axis (runs start->end backwards in wall-clock terms).
type Motion struct {
	Property   MotionProperty
	Curve      MotionCurve
	DurationMs int32
	ElapsedMs  int32
	Reverse    bool
	Paused     bool
	Done       bool

	FromX, FromY, FromZ, FromOther float64
	ToX, ToY, ToZ, ToOther         float64
}

func curveEase(c MotionCurve, t float64) float64 {
	switch c {
	case CurveImmediate:
		return 1
	case CurveAccelerate:
		return t * t
	case CurveDecelerate:
		return 1 - (1-t)*(1-t)
	case CurveRebound:
		if t < 0.5 {
			return t * 2
		}
		return (1 - t) * 2
	case CurveBounce:
		// single-bounce approximation: overshoot then settle
		if t < 0.7 {
			return t / 0.7 * 1.15
		}
		return 1 + (1-t)/0.3*0.15
	default: // CurveLinear
		return t
	}
}

func lerp(from, to, t float64) float64 { return from + (to-from)*t }

// progress returns the motion's eased [0,1] completion fraction.
func (m *Motion) progress() float64 {
	if m.DurationMs <= 0 {
		return 1
	}
	t := float64(m.ElapsedMs) / float64(m.DurationMs)
	if t > 1 {
		t = 1
	}
	if m.Reverse {
		t = 1 - t
	}
	return curveEase(m.Curve, t)
}

// StartMotion begins (or replaces) the motion driving m.Property on prim
// id, leaving any other property's in-flight motion on the same prim
// untouched.
func (s *State) StartMotion(id PrimID, m *Motion) {
	if s.Motions == nil {
		s.Motions = make(map[PrimID]map[MotionProperty]*Motion)
	}
	byProp, ok := s.Motions[id]
	if !ok {
		byProp = make(map[MotionProperty]*Motion)
		s.Motions[id] = byProp
	}
	byProp[m.Property] = m
}

// MotionStop removes the in-flight motion driving prop on id, if any.
func (s *State) MotionStop(id PrimID, prop MotionProperty) {
	if byProp, ok := s.Motions[id]; ok {
		delete(byProp, prop)
	}
}

// MotionPause toggles whether every motion currently in flight on id
// accumulates elapsed time, mirroring the original's prim-level pause
// flag (one pause bit shared by all of a prim's concurrent motions).
func (s *State) MotionPause(id PrimID, paused bool) {
	for _, m := range s.Motions[id] {
		m.Paused = paused
	}
}

// MotionTest reports whether id has a motion driving prop in flight (true)
// or has finished/has none (Nil handled by the caller).
func (s *State) MotionTest(id PrimID, prop MotionProperty) bool {
	byProp, ok := s.Motions[id]
	if !ok {
		return false
	}
	m, ok := byProp[prop]
	return ok && !m.Done
}

// AdvanceMotions steps every in-flight motion (per prim, per property) by
// frameMs and applies the eased result onto its prim, called once per
// Runner tick.
func (s *State) AdvanceMotions(frameMs uint64) {
	for id, byProp := range s.Motions {
		p := s.Prim(id)
		for _, m := range byProp {
			if m.Done || m.Paused {
				continue
			}
			m.ElapsedMs += int32(frameMs)
			if m.ElapsedMs >= m.DurationMs {
				m.ElapsedMs = m.DurationMs
				m.Done = true
			}
			t := m.progress()
			switch m.Property {
			case MotionAlpha:
				p.Alpha = uint8(clampF(lerp(m.FromOther, m.ToOther, t), 0, 255))
			case MotionMove:
				p.X = int32(lerp(m.FromX, m.ToX, t))
				p.Y = int32(lerp(m.FromY, m.ToY, t))
			case MotionMoveR:
				p.RotationTenths = int32(lerp(m.FromOther, m.ToOther, t))
			case MotionMoveS2:
				p.ScalePerMille = int32(lerp(m.FromOther, m.ToOther, t))
			case MotionMoveZ:
				p.Z = int32(lerp(m.FromOther, m.ToOther, t))
			case MotionAnim:
				p.AnimFrame = int32(lerp(m.FromOther, m.ToOther, t))
			}
		}
	}
	s.advanceV3DMotion(frameMs)
}

// V3DMotionStart begins (or replaces) the single global camera-style
// motion driven by V3DMotion. Unlike the per-prim motions above, the
// original tracks exactly one of these at a time, with no prim id of its
// own (original_source's v3d_motion takes dest x/y/z, not an id).
func (s *State) V3DMotionStart(m *Motion) {
	s.v3dMotion = m
}

// V3DMotionStop cancels the in-flight camera motion, if any.
func (s *State) V3DMotionStop() {
	s.v3dMotion = nil
}

// V3DMotionTest reports whether a camera motion is in flight.
func (s *State) V3DMotionTest() bool {
	return s.v3dMotion != nil && !s.v3dMotion.Done
}

// V3DMotionPause toggles whether the in-flight camera motion accumulates
// elapsed time.
func (s *State) V3DMotionPause(paused bool) {
	if s.v3dMotion != nil {
		s.v3dMotion.Paused = paused
	}
}

func (s *State) advanceV3DMotion(frameMs uint64) {
	m := s.v3dMotion
	if m == nil || m.Done || m.Paused {
		return
	}
	m.ElapsedMs += int32(frameMs)
	if m.ElapsedMs >= m.DurationMs {
		m.ElapsedMs = m.DurationMs
		m.Done = true
	}
	t := m.progress()
	s.CameraX = int32(lerp(m.FromX, m.ToX, t))
	s.CameraY = int32(lerp(m.FromY, m.ToY, t))
	s.CameraZ = int32(lerp(m.FromZ, m.ToZ, t))
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
