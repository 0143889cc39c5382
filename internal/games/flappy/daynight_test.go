package flappy

import (
	"testing"
	"time"

	"github.com/vovakirdan/flappy3d/internal/config"
)

func TestDayNightStartsAtDay(t *testing.T) {
	d := NewDayNight(config.Default().DayNight)

	if d.Value() != 0 {
		t.Errorf("Expected value 0, got %v", d.Value())
	}
	if d.Target() != ModeDay {
		t.Errorf("Expected day target, got %v", d.Target())
	}

	d.Step()
	if d.Value() != 0 {
		t.Errorf("Stepping toward day at 0 must stay 0, got %v", d.Value())
	}
}

func TestDayNightTransitionClamps(t *testing.T) {
	d := NewDayNight(config.Default().DayNight)

	if !d.Toggle(0) {
		t.Fatal("First toggle should be accepted")
	}
	d.Step()
	if d.Value() != 0.05 {
		t.Errorf("Expected 0.05 after one step, got %v", d.Value())
	}

	for i := 0; i < 40; i++ {
		d.Step()
		if d.Value() < 0 || d.Value() > 1 {
			t.Fatalf("value %v out of [0, 1]", d.Value())
		}
	}
	if d.Value() != 1 {
		t.Errorf("Expected full night, got %v", d.Value())
	}

	if !d.Toggle(time.Second) {
		t.Fatal("Toggle after cooldown should be accepted")
	}
	for i := 0; i < 40; i++ {
		d.Step()
	}
	if d.Value() != 0 {
		t.Errorf("Expected full day, got %v", d.Value())
	}
}

func TestDayNightToggleCooldown(t *testing.T) {
	d := NewDayNight(config.Default().DayNight)

	tests := []struct {
		at       time.Duration
		accepted bool
		target   Mode
	}{
		{1 * time.Second, true, ModeNight},
		{1100 * time.Millisecond, false, ModeNight},
		{1500 * time.Millisecond, false, ModeNight},
		{1501 * time.Millisecond, true, ModeDay},
		{1600 * time.Millisecond, false, ModeDay},
		{3 * time.Second, true, ModeNight},
	}

	for _, tc := range tests {
		if got := d.Toggle(tc.at); got != tc.accepted {
			t.Errorf("Toggle(%v) = %v, expected %v", tc.at, got, tc.accepted)
		}
		if d.Target() != tc.target {
			t.Errorf("after Toggle(%v): target %v, expected %v", tc.at, d.Target(), tc.target)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeDay.String() != "day" || ModeNight.String() != "night" {
		t.Errorf("unexpected mode names %q, %q", ModeDay, ModeNight)
	}
}
