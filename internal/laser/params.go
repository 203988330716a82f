package laser

import (
	"fmt"

	"github.com/chewxy/math32"
)

// RenderParams controls how frames are expanded into samples. Speeds are in
// normalized units per sample; dwell and wait counts are sample repeats.
type RenderParams struct {
	Rate        int     `toml:"rate"`
	OnSpeed     float32 `toml:"on_speed"`
	OffSpeed    float32 `toml:"off_speed"`
	StartWait   int     `toml:"start_wait"`
	StartDwell  int     `toml:"start_dwell"`
	CurveDwell  int     `toml:"curve_dwell"`
	CornerDwell int     `toml:"corner_dwell"`
	CurveAngle  float32 `toml:"curve_angle"` // degrees; turns sharper than this get CornerDwell
	EndDwell    int     `toml:"end_dwell"`
	EndWait     int     `toml:"end_wait"`
	Snap        float32 `toml:"snap"`
	Grayscale   bool    `toml:"grayscale"`
	FrameRate   int     `toml:"frame_rate"` // frames shorter than Rate/FrameRate samples are padded
	MaxPoints   int     `toml:"max_points"`
	MirrorX     bool    `toml:"mirror_x"`
}

func DefaultParams() RenderParams {
	return RenderParams{
		Rate:        48000,
		OnSpeed:     2.0 / 100.0,
		OffSpeed:    2.0 / 20.0,
		StartWait:   8,
		StartDwell:  3,
		CurveDwell:  0,
		CornerDwell: 8,
		CurveAngle:  30,
		EndDwell:    3,
		EndWait:     7,
		Snap:        1 / 100000.0,
		Grayscale:   true,
		FrameRate:   60,
		MaxPoints:   30000,
		MirrorX:     true,
	}
}

// Validate rejects parameter sets the renderer cannot work with.
func (p RenderParams) Validate() error {
	switch {
	case p.Rate <= 0:
		return fmt.Errorf("laser: rate must be positive, got %d", p.Rate)
	case p.FrameRate <= 0:
		return fmt.Errorf("laser: frame_rate must be positive, got %d", p.FrameRate)
	case p.MaxPoints <= 0:
		return fmt.Errorf("laser: max_points must be positive, got %d", p.MaxPoints)
	case p.OnSpeed < 0 || p.OffSpeed < 0:
		return fmt.Errorf("laser: speeds must not be negative")
	case p.StartWait < 0 || p.StartDwell < 0 || p.CurveDwell < 0 ||
		p.CornerDwell < 0 || p.EndDwell < 0 || p.EndWait < 0:
		return fmt.Errorf("laser: dwell and wait counts must not be negative")
	case p.CurveAngle < 0 || p.CurveAngle > 180:
		return fmt.Errorf("laser: curve_angle must be within [0,180] degrees, got %g", p.CurveAngle)
	}
	return nil
}

func (p RenderParams) curveCos() float32 {
	return math32.Cos(p.CurveAngle * math32.Pi / 180)
}

// minSamples is the shortest frame the scanner will loop.
func (p RenderParams) minSamples() int {
	if p.FrameRate <= 0 || p.Rate <= 0 {
		return 0
	}
	return p.Rate / p.FrameRate
}
