package flappy

import (
	"time"

	"github.com/vovakirdan/flappy3d/internal/config"
	"github.com/vovakirdan/flappy3d/internal/core"
)

// Mode is the day/night target.
type Mode int

const (
	ModeDay Mode = iota
	ModeNight
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeNight {
		return "night"
	}
	return "day"
}

// DayNight tracks the blend factor between the day and night palettes.
// The factor walks toward the target mode by a fixed step per tick.
type DayNight struct {
	value      float64
	target     Mode
	step       float64
	cooldown   time.Duration
	lastToggle time.Duration
	toggled    bool
}

// NewDayNight starts in full daylight.
func NewDayNight(cfg config.DayNight) *DayNight {
	return &DayNight{
		step:     cfg.TransitionStep,
		cooldown: cfg.ToggleCooldown,
	}
}

// Toggle flips the target mode unless the previous toggle happened within
// the cooldown. It reports whether the toggle was accepted.
func (d *DayNight) Toggle(now time.Duration) bool {
	if d.toggled && now-d.lastToggle <= d.cooldown {
		return false
	}
	if d.target == ModeDay {
		d.target = ModeNight
	} else {
		d.target = ModeDay
	}
	d.lastToggle = now
	d.toggled = true
	return true
}

// Step moves the blend factor one step toward the target.
func (d *DayNight) Step() {
	if d.target == ModeNight {
		d.value = core.ClampF(d.value+d.step, 0, 1)
	} else {
		d.value = core.ClampF(d.value-d.step, 0, 1)
	}
}

// Value returns the blend factor, 0 = day, 1 = night.
func (d *DayNight) Value() float64 {
	return d.value
}

// Target returns the mode the factor is heading to.
func (d *DayNight) Target() Mode {
	return d.target
}
