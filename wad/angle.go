package wad

import (
	"math"

	"golang.org/x/exp/constraints"
)

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians[T constraints.Integer | constraints.Float](n T) float64 {
	return float64(n) * (math.Pi / 180)
}

const bamScale = 1 << 16

// bamToRadians converts a 16-bit binary angle, where a full circle is 65536, to [0, 2π).
func bamToRadians[T constraints.Integer](n T) float64 {
	return float64(uint16(n)) * (2 * math.Pi) / bamScale
}
