package render

import (
	"math"
	"testing"

	"github.com/stuarthighley/doomview/internal/wadtest"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStartCamera(t *testing.T) {
	l := decodeLevel(t, wadtest.StepRooms(24, "FLOOR1"))
	cam := StartCamera(l)
	if cam.X != 32 || cam.Y != 64 || cam.Z != EyeHeight || cam.Yaw != 0 {
		t.Fatalf("expected (32, 64, %v, 0), got %+v", EyeHeight, cam)
	}
}

func TestCameraStep(t *testing.T) {
	l := decodeLevel(t, wadtest.StepRooms(24, "FLOOR1"))
	start := CameraAt(l, 32, 64, 0)

	cam := start.Step(l, Forward, 0.1)
	if !near(cam.X, 32+58.3) || !near(cam.Y, 64) {
		t.Errorf("forward: expected (90.3, 64), got (%v, %v)", cam.X, cam.Y)
	}

	// Long frames are capped
	if capped := start.Step(l, Forward, 5); !near(capped.X, cam.X) {
		t.Errorf("expected step to be capped at %v, got %v", cam.X, capped.X)
	}

	cam = start.Step(l, StrafeLeft, 0.1)
	if !near(cam.X, 32) || !near(cam.Y, 64+58.3) {
		t.Errorf("strafe left: expected (32, 122.3), got (%v, %v)", cam.X, cam.Y)
	}

	cam = start.Step(l, TurnLeft, 0.1)
	if !near(cam.Yaw, math.Pi/10) {
		t.Errorf("turn left: expected yaw %v, got %v", math.Pi/10, cam.Yaw)
	}
	cam = start.Step(l, TurnRight, 0.1)
	if !near(cam.Yaw, 2*math.Pi-math.Pi/10) {
		t.Errorf("turn right: expected yaw %v, got %v", 2*math.Pi-math.Pi/10, cam.Yaw)
	}

	// Crossing the step raises the eye
	cam = CameraAt(l, 100, 64, 0).Step(l, Forward, 0.1)
	if cam.Z != 24+EyeHeight {
		t.Errorf("expected eye at %v over the raised floor, got %v", 24+EyeHeight, cam.Z)
	}

	if cam := start.Step(l, Forward|Backward, 0.1); !near(cam.X, start.X) {
		t.Errorf("expected opposing moves to cancel, got x %v", cam.X)
	}
}
