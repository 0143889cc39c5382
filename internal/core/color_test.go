package core

import "testing"

func TestRGBLerp(t *testing.T) {
	day := RGB{135, 206, 235}
	night := RGB{25, 25, 50}

	if got := day.Lerp(night, 0); got != day {
		t.Errorf("Lerp(0) = %v, expected %v", got, day)
	}
	if got := day.Lerp(night, 1); got != night {
		t.Errorf("Lerp(1) = %v, expected %v", got, night)
	}
	if got := day.Lerp(night, -3); got != day {
		t.Errorf("Lerp below range = %v, expected %v", got, day)
	}
	if got := day.Lerp(night, 7); got != night {
		t.Errorf("Lerp above range = %v, expected %v", got, night)
	}

	mid := RGB{0, 0, 0}.Lerp(RGB{200, 100, 50}, 0.5)
	if mid != (RGB{100, 50, 25}) {
		t.Errorf("Lerp(0.5) = %v, expected {100 50 25}", mid)
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		c        RGB
		expected string
	}{
		{White, "#ffffff"},
		{Black, "#000000"},
		{RGB{135, 206, 235}, "#87ceeb"},
	}

	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.expected {
			t.Errorf("Hex(%v) = %q, expected %q", tc.c, got, tc.expected)
		}
	}
}

func TestRGBOffset(t *testing.T) {
	c := RGB{10, 250, 100}.Offset(-20, 20, 5)
	if c != (RGB{0, 255, 105}) {
		t.Errorf("Offset() = %v, expected saturated {0 255 105}", c)
	}
}

func TestOver(t *testing.T) {
	dst := RGB{10, 20, 30}
	if got := Over(dst, RGBA{255, 0, 0, 0}); got != dst {
		t.Errorf("Over with alpha 0 = %v, expected %v", got, dst)
	}
	if got := Over(dst, RGBA{255, 0, 0, 255}); got != (RGB{255, 0, 0}) {
		t.Errorf("Over with alpha 255 = %v, expected red", got)
	}
}
