package render

import (
	"math"
	"testing"
)

func TestColumnAngleRoundTrip(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), ConfigFor(640, 400, 90), ConfigFor(101, 50, 60)} {
		p := NewProjection(cfg)
		for x := range cfg.Width {
			if got := p.AngleToColumn(p.ColumnToAngle(x)); got != x {
				t.Fatalf("%vx%v: expected column %d, got %d", cfg.Width, cfg.Height, x, got)
			}
		}
	}
}

func TestProjectionMonotonicAndClamped(t *testing.T) {
	p := NewProjection(DefaultConfig())
	prev := p.ColumnToAngle(0)
	for x := 1; x < p.Width; x++ {
		a := p.ColumnToAngle(x)
		if a >= prev {
			t.Fatalf("expected angle to decrease at column %d: %v then %v", x, prev, a)
		}
		prev = a
	}

	prevCol := 0
	for a := math.Pi / 2; a >= -math.Pi/2; a -= 0.01 {
		col := p.AngleToColumn(a)
		if col < prevCol {
			t.Fatalf("expected column to increase as angle decreases, got %d after %d", col, prevCol)
		}
		prevCol = col
	}

	if got := p.AngleToColumn(math.Pi / 3); got != 0 {
		t.Errorf("expected left clamp to column 0, got %d", got)
	}
	if got := p.AngleToColumn(-math.Pi / 3); got != p.Width-1 {
		t.Errorf("expected right clamp to column %d, got %d", p.Width-1, got)
	}
	if got := p.AngleToColumn(0); got != p.Width/2 {
		t.Errorf("expected straight ahead at column %d, got %d", p.Width/2, got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4*math.Pi + 1, 1},
	}
	for _, test := range tests {
		if got := normalize(test.in); math.Abs(got-test.want) > 1e-9 {
			t.Errorf("normalize(%v): expected %v, got %v", test.in, test.want, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}
	if cfg := DefaultConfig(); cfg.VFOV != 56.25 {
		t.Errorf("expected VFOV 56.25, got %v", cfg.VFOV)
	}
	for _, cfg := range []Config{
		{Width: 0, Height: 200, HFOV: 90, VFOV: 60},
		{Width: 320, Height: -1, HFOV: 90, VFOV: 60},
		{Width: 320, Height: 200, HFOV: 180, VFOV: 60},
		{Width: 320, Height: 200, HFOV: 90, VFOV: 0},
	} {
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected %+v to be rejected", cfg)
		}
	}
}
