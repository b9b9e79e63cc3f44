package entity

import (
	"testing"
)

func TestGearCycle(t *testing.T) {
	tests := []struct {
		name string
		in   GearState
		want GearState
	}{
		{"up opens from zero", GearUp{}, GearOpening{Step: 0}},
		{"down closes from last step", GearDown{}, GearClosing{Step: GearSteps - 1}},
		{"opening reverses in place", GearOpening{Step: 37}, GearClosing{Step: 37}},
		{"closing reverses in place", GearClosing{Step: 120}, GearOpening{Step: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Cycle(); got != tt.want {
				t.Errorf("%v.Cycle() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGearAdvance(t *testing.T) {
	tests := []struct {
		name string
		in   GearState
		want GearState
	}{
		{"up holds", GearUp{}, GearUp{}},
		{"down holds", GearDown{}, GearDown{}},
		{"opening steps up", GearOpening{Step: 5}, GearOpening{Step: 6}},
		{"opening finishes", GearOpening{Step: GearSteps - 1}, GearDown{}},
		{"closing steps down", GearClosing{Step: 5}, GearClosing{Step: 4}},
		{"closing finishes", GearClosing{Step: 1}, GearUp{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Advance(); got != tt.want {
				t.Errorf("%v.Advance() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func advanceN(s GearState, n int) GearState {
	for i := 0; i < n; i++ {
		s = s.Advance()
	}
	return s
}

func TestGearRoundTrip(t *testing.T) {
	s := GearState(GearDown{})

	s = advanceN(s.Cycle(), GearSteps)
	if !Retracted(s) {
		t.Fatalf("after cycle from down and %d ticks: %v, want up", GearSteps, s)
	}

	s = advanceN(s.Cycle(), GearSteps)
	if !Deployed(s) {
		t.Fatalf("after cycle from up and %d ticks: %v, want down", GearSteps, s)
	}
}

func TestGearInterruptedReversalHasNoDrift(t *testing.T) {
	for _, interrupt := range []int{1, 50, 137, GearSteps - 2} {
		s := advanceN(GearState(GearUp{}).Cycle(), interrupt)
		before := AnglesFor(s)

		// Reverse, run back k ticks, reverse again, run forward k ticks.
		k := interrupt / 2
		s = advanceN(s.Cycle(), k)
		s = advanceN(s.Cycle(), k)

		if got := AnglesFor(s); got != before {
			t.Errorf("interrupt %d: angles %+v, want %+v", interrupt, got, before)
		}
		if want := (GearOpening{Step: interrupt}); s != want {
			t.Errorf("interrupt %d: state %v, want %v", interrupt, s, want)
		}
	}
}

func TestGearAngles(t *testing.T) {
	up := AnglesFor(GearUp{})
	if up.LeftLeg != LegClosedAngle || up.LeftFoot != FootClosedAngle {
		t.Errorf("up angles = %+v, want closed constants", up)
	}
	if up.RightLeg != -up.LeftLeg || up.RightFoot != -up.LeftFoot {
		t.Errorf("right side does not mirror left: %+v", up)
	}

	if down := AnglesFor(GearDown{}); down != (GearAngles{}) {
		t.Errorf("down angles = %+v, want zero", down)
	}

	half := AnglesFor(GearOpening{Step: GearSteps / 2})
	if half.LeftLeg != LegClosedAngle/2 {
		t.Errorf("half-open left leg = %v, want %v", half.LeftLeg, LegClosedAngle/2)
	}
	if AnglesFor(GearOpening{Step: 80}) != AnglesFor(GearClosing{Step: 80}) {
		t.Error("opening and closing at the same step differ")
	}
}

func TestGearString(t *testing.T) {
	for state, want := range map[GearState]string{
		GearUp{}:              "up",
		GearDown{}:            "down",
		GearOpening{Step: 3}:  "opening(3)",
		GearClosing{Step: 12}: "closing(12)",
	} {
		if got := state.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
