package render

import "fmt"

// Config sizes the pixel surface and the field of view, in degrees.
type Config struct {
	Width, Height int
	HFOV, VFOV    float64
}

// DefaultConfig is a 320x200 surface with a 90 degree horizontal field of view. The
// vertical field of view keeps the surface's aspect ratio.
func DefaultConfig() Config {
	return ConfigFor(320, 200, 90)
}

// ConfigFor derives VFOV from hfov and the surface size.
func ConfigFor(width, height int, hfov float64) Config {
	cfg := Config{Width: width, Height: height, HFOV: hfov}
	if width > 0 {
		cfg.VFOV = hfov * float64(height) / float64(width)
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("render: invalid surface size %vx%v", c.Width, c.Height)
	}
	if c.HFOV <= 0 || c.HFOV >= 180 {
		return fmt.Errorf("render: horizontal field of view %v out of range (0,180)", c.HFOV)
	}
	if c.VFOV <= 0 || c.VFOV >= 180 {
		return fmt.Errorf("render: vertical field of view %v out of range (0,180)", c.VFOV)
	}
	return nil
}
