package render

import (
	"math"

	"github.com/stuarthighley/doomview/wad"
)

const (
	EyeHeight = 41       // Eye height above the floor
	MoveSpeed = 583      // Units per second
	TurnSpeed = math.Pi  // Radians per second
	maxStep   = 1.0 / 10 // Longest simulated step, seconds
)

// Camera is a view pose. Z is the absolute eye height and Yaw is in radians,
// counter-clockwise from the +x axis.
type Camera struct {
	X, Y, Z float64
	Yaw     float64
}

// Command is a set of movement flags sampled from input for one step.
type Command uint8

const (
	Forward Command = 1 << iota
	Backward
	StrafeLeft
	StrafeRight
	TurnLeft
	TurnRight
)

// CameraAt places the eye EyeHeight above the floor under (x, y).
func CameraAt(l *wad.Level, x, y, yaw float64) Camera {
	return Camera{X: x, Y: y, Z: l.FloorHeight(x, y) + EyeHeight, Yaw: yaw}
}

// StartCamera returns a camera at player 1's start, or at the first vertex if the level
// has none.
func StartCamera(l *wad.Level) Camera {
	if t, ok := l.PlayerStart(1); ok {
		return CameraAt(l, t.X, t.Y, t.Angle)
	}
	logger.Printf("Warn: %v has no player 1 start", l.Name)
	var v wad.Vertex
	if len(l.Vertexes) > 0 {
		v = l.Vertexes[0]
	}
	return CameraAt(l, v.X, v.Y, 0)
}

// Step applies cmd for dt seconds and returns the new pose, with the eye kept EyeHeight
// above the floor it ends over. There is no collision: the camera may leave the map.
func (c Camera) Step(l *wad.Level, cmd Command, dt float64) Camera {
	dt = clamp(dt, 0, maxStep)
	if cmd&TurnLeft != 0 {
		c.Yaw += TurnSpeed * dt
	}
	if cmd&TurnRight != 0 {
		c.Yaw -= TurnSpeed * dt
	}
	c.Yaw = unwrap(c.Yaw)

	var forward, left float64
	move := MoveSpeed * dt
	if cmd&Forward != 0 {
		forward += move
	}
	if cmd&Backward != 0 {
		forward -= move
	}
	if cmd&StrafeLeft != 0 {
		left += move
	}
	if cmd&StrafeRight != 0 {
		left -= move
	}
	sin, cos := math.Sincos(c.Yaw)
	c.X += forward*cos - left*sin
	c.Y += forward*sin + left*cos
	c.Z = l.FloorHeight(c.X, c.Y) + EyeHeight
	return c
}
