package flappy

import "github.com/vovakirdan/flappy3d/internal/core"

// Shade is a color with a day and a night variant.
type Shade struct {
	Day   core.RGB
	Night core.RGB
}

// At blends the shade for the given night factor.
func (s Shade) At(night float64) core.RGB {
	return s.Day.Lerp(s.Night, night)
}

// Palette entries shared by the scene, floor and HUD.
var (
	shadeSky            = Shade{Day: core.RGB{135, 206, 235}, Night: core.RGB{25, 25, 50}}
	shadeGrass          = Shade{Day: core.RGB{34, 139, 34}, Night: core.RGB{20, 70, 20}}
	shadeTuft           = Shade{Day: core.RGB{0, 200, 0}, Night: core.RGB{0, 80, 40}}
	shadeTuftShadow     = Shade{Day: core.RGB{0, 100, 0}, Night: core.RGB{0, 40, 20}}
	shadeMountainShadow = Shade{Day: core.RGB{100, 70, 30}, Night: core.RGB{40, 30, 20}}
	shadeSnow           = Shade{Day: core.RGB{250, 250, 255}, Night: core.RGB{200, 210, 255}}
	shadeTrunk          = Shade{Day: core.RGB{100, 50, 20}, Night: core.RGB{40, 35, 30}}
	shadeLeaf           = Shade{Day: core.RGB{30, 120, 30}, Night: core.RGB{10, 40, 30}}
)

// Fixed colors.
var (
	colorSun       = core.RGB{255, 255, 200}
	colorSunGlow   = core.RGB{255, 255, 150}
	colorMoon      = core.RGB{220, 220, 230}
	colorMoonGlow  = core.RGB{220, 220, 240}
	colorCrater    = core.RGB{200, 200, 210}
	colorCloud     = core.RGB{255, 255, 255}
	colorCloudDark = core.RGB{200, 200, 200}
	colorShadow    = core.RGB{0, 0, 0}
	colorBlock     = core.RGB{0, 0, 0}
	colorBirdBody  = core.RGB{250, 200, 40}
	colorBirdWing  = core.RGB{235, 160, 30}
	colorBirdBeak  = core.RGB{240, 100, 30}
	colorBirdEye   = core.RGB{255, 255, 255}
	colorPupil     = core.RGB{20, 20, 20}
)

// skyAt returns the sky gradient color for a scanline.
func skyAt(line int, night float64) core.RGB {
	day := core.RGB{135, 206, uint8(core.Clamp(235-int(float64(line)*0.2), 0, 255))}
	dark := core.RGB{25, 25, uint8(core.Clamp(50-int(float64(line)*0.15), 0, 255))}
	return day.Lerp(dark, night)
}

// mountainBand returns the shading of a mountain at a normalized height.
// Upper slopes are rocky brown, lower slopes green.
func mountainBand(ratio, night float64) core.RGB {
	var day, dark core.RGB
	if ratio > 0.7 {
		day = core.RGB{uint8(139 - int(ratio*30)), uint8(69 - int(ratio*20)), 19}
		dark = core.RGB{uint8(50 - int(ratio*15)), uint8(50 - int(ratio*25)), uint8(70 - int(ratio*30))}
	} else {
		day = core.RGB{uint8(30 + int(ratio*70)), uint8(120 + int((1-ratio)*80)), 30}
		dark = core.RGB{uint8(30 + int(ratio*20)), uint8(40 + int(ratio*10)), 60}
	}
	return day.Lerp(dark, night)
}

// soilAt returns the floor gradient for a row below the floor line.
func soilAt(row int, night float64) core.RGB {
	d := core.Clamp(139-int(float64(row)*0.3), 0, 255)
	n := core.Clamp(50-int(float64(row)*0.2), 0, 255)
	day := core.RGB{uint8(d), uint8(d / 2), uint8(d / 3)}
	dark := core.RGB{uint8(n), uint8(n / 3), uint8(n / 6)}
	return day.Lerp(dark, night)
}

func gray(v int) core.RGB {
	b := uint8(core.Clamp(v, 0, 255))
	return core.RGB{b, b, b}
}
