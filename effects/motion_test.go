package effects

import "testing"

func TestMotionAlphaLinearInterpolation(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(1, &Motion{
		Property:   MotionAlpha,
		Curve:      CurveLinear,
		DurationMs: 100,
		FromOther:  0,
		ToOther:    200,
	})

	if !s.MotionTest(1, MotionAlpha) {
		t.Fatal("expected motion in flight immediately after start")
	}

	s.AdvanceMotions(50)
	if got := s.Prim(1).Alpha; got != 100 {
		t.Errorf("alpha at t=50%% = %d, want 100", got)
	}
	if !s.MotionTest(1, MotionAlpha) {
		t.Fatal("motion should still be in flight at 50%")
	}

	s.AdvanceMotions(50)
	if got := s.Prim(1).Alpha; got != 200 {
		t.Errorf("alpha at t=100%% = %d, want 200", got)
	}
	if s.MotionTest(1, MotionAlpha) {
		t.Fatal("motion should be done once elapsed reaches duration")
	}
}

func TestMotionMoveDrivesXY(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(2, &Motion{
		Property:   MotionMove,
		Curve:      CurveLinear,
		DurationMs: 100,
		FromX:      0, ToX: 100,
		FromY: 0, ToY: 50,
	})
	s.AdvanceMotions(100)
	p := s.Prim(2)
	if p.X != 100 || p.Y != 50 {
		t.Errorf("prim position = (%d,%d), want (100,50)", p.X, p.Y)
	}
}

func TestMotionImmediateCurveJumpsToEnd(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(3, &Motion{
		Property:   MotionAlpha,
		Curve:      CurveImmediate,
		DurationMs: 1000,
		FromOther:  0,
		ToOther:    255,
	})
	s.AdvanceMotions(1)
	if got := s.Prim(3).Alpha; got != 255 {
		t.Errorf("alpha after 1ms of an Immediate curve = %d, want 255", got)
	}
}

func TestMotionReverseFlipsTimeAxis(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(4, &Motion{
		Property:   MotionAlpha,
		Curve:      CurveLinear,
		DurationMs: 100,
		Reverse:    true,
		FromOther:  0,
		ToOther:    200,
	})
	s.AdvanceMotions(25)
	if got := s.Prim(4).Alpha; got != 150 {
		t.Errorf("alpha at t=25%% reversed = %d, want 150", got)
	}
}

func TestMotionPauseHoldsElapsedTime(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(5, &Motion{
		Property:   MotionAlpha,
		Curve:      CurveLinear,
		DurationMs: 100,
		FromOther:  0,
		ToOther:    100,
	})
	s.AdvanceMotions(50)
	s.MotionPause(5, true)
	s.AdvanceMotions(1000)
	if got := s.Prim(5).Alpha; got != 50 {
		t.Errorf("alpha should freeze at 50 while paused, got %d", got)
	}
	s.MotionPause(5, false)
	s.AdvanceMotions(50)
	if got := s.Prim(5).Alpha; got != 100 {
		t.Errorf("alpha after unpausing and completing = %d, want 100", got)
	}
}

func TestMotionStopRemovesInFlightMotion(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(6, &Motion{Property: MotionAlpha, Curve: CurveLinear, DurationMs: 100, ToOther: 255})
	s.MotionStop(6, MotionAlpha)
	if s.MotionTest(6, MotionAlpha) {
		t.Fatal("MotionStop should remove the in-flight motion")
	}
}

func TestMotionTestFalseForUnknownPrim(t *testing.T) {
	s := NewState(nil, nil)
	if s.MotionTest(99, MotionAlpha) {
		t.Fatal("MotionTest on a prim with no motion should be false")
	}
}

func TestConcurrentMotionsOnSamePrimAreIndependent(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(7, &Motion{Property: MotionAlpha, Curve: CurveLinear, DurationMs: 100, ToOther: 200})
	s.StartMotion(7, &Motion{Property: MotionMove, Curve: CurveLinear, DurationMs: 100, ToX: 100, ToY: 100})

	s.MotionStop(7, MotionAlpha)
	if s.MotionTest(7, MotionAlpha) {
		t.Fatal("stopping the alpha motion should not affect the move motion")
	}
	if !s.MotionTest(7, MotionMove) {
		t.Fatal("the move motion should still be in flight after stopping only the alpha motion")
	}

	s.AdvanceMotions(100)
	p := s.Prim(7)
	if p.X != 100 || p.Y != 100 {
		t.Errorf("move motion should still complete independently: got (%d,%d)", p.X, p.Y)
	}
	if p.Alpha != 255 {
		t.Errorf("stopped alpha motion should leave Alpha at NewPrim's default 255, got %d", p.Alpha)
	}
}

func TestMotionAnimDrivesFrameIndex(t *testing.T) {
	s := NewState(nil, nil)
	s.StartMotion(8, &Motion{Property: MotionAnim, Curve: CurveLinear, DurationMs: 100, FromOther: 0, ToOther: 10})
	s.AdvanceMotions(100)
	if got := s.Prim(8).AnimFrame; got != 10 {
		t.Errorf("AnimFrame = %d, want 10", got)
	}
}

func TestV3DMotionDrivesCameraAndStopTest(t *testing.T) {
	s := NewState(nil, nil)
	if s.V3DMotionTest() {
		t.Fatal("V3DMotionTest should be false with no motion started")
	}
	s.V3DMotionStart(&Motion{Curve: CurveLinear, DurationMs: 100, ToX: 10, ToY: 20, ToZ: 30})
	if !s.V3DMotionTest() {
		t.Fatal("V3DMotionTest should be true immediately after V3DMotionStart")
	}
	s.AdvanceMotions(100)
	if s.CameraX != 10 || s.CameraY != 20 || s.CameraZ != 30 {
		t.Errorf("camera = (%d,%d,%d), want (10,20,30)", s.CameraX, s.CameraY, s.CameraZ)
	}
	if s.V3DMotionTest() {
		t.Fatal("V3DMotionTest should be false once the motion completes")
	}

	s.V3DMotionStart(&Motion{Curve: CurveLinear, DurationMs: 100, ToX: 1})
	s.V3DMotionPause(true)
	s.AdvanceMotions(100)
	if !s.V3DMotionTest() {
		t.Fatal("a paused V3D motion should not complete")
	}
	s.V3DMotionStop()
	if s.V3DMotionTest() {
		t.Fatal("V3DMotionStop should cancel the in-flight motion")
	}
}
