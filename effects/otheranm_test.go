package effects

import "testing"

func TestDissolveCompletesAfterDuration(t *testing.T) {
	s := NewState(nil, nil)
	s.Dissolve(DissolveMask, 100)

	if s.DissolveType != DissolveMask {
		t.Fatalf("DissolveType = %v, want DissolveMask", s.DissolveType)
	}

	s.AdvanceDissolve(50)
	if s.DissolveType != DissolveMask {
		t.Fatal("dissolve should still be in flight at 50ms of a 100ms fade")
	}

	s.AdvanceDissolve(50)
	if s.DissolveType != DissolveNone {
		t.Fatalf("DissolveType after full duration = %v, want DissolveNone", s.DissolveType)
	}
}

func TestDissolveNoneIsANoOpToAdvance(t *testing.T) {
	s := NewState(nil, nil)
	s.AdvanceDissolve(1000)
	if s.DissolveType != DissolveNone {
		t.Fatalf("DissolveType = %v, want DissolveNone", s.DissolveType)
	}
}

func TestDissolveRestartOverwritesInFlightFade(t *testing.T) {
	s := NewState(nil, nil)
	s.Dissolve(DissolveColor, 100)
	s.AdvanceDissolve(90)

	s.Dissolve(DissolveMask, 200)
	s.AdvanceDissolve(90)
	if s.DissolveType != DissolveMask {
		t.Fatal("restarting the dissolve should reset the elapsed clock")
	}
	s.AdvanceDissolve(110)
	if s.DissolveType != DissolveNone {
		t.Fatal("the new fade should complete at its own duration, not the old one's")
	}
}

func TestSnowSetTogglesFlag(t *testing.T) {
	s := NewState(nil, nil)
	if s.Snowing {
		t.Fatal("snow should default to off")
	}
	s.SnowSet(true)
	if !s.Snowing {
		t.Fatal("SnowSet(true) should turn snow on")
	}
	s.SnowSet(false)
	if s.Snowing {
		t.Fatal("SnowSet(false) should turn snow off")
	}
}
