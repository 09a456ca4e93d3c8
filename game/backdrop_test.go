package game

import (
	"math/rand"
	"testing"
)

func TestBackdropOffsetScalesWithParallaxFactor(t *testing.T) {
	backdrop := NewBackdrop(800, 600, 0.4, rand.New(rand.NewSource(1)))
	cam := NewCamera(800, 600)
	cam.X = 1000
	cam.Y = 500

	backdrop.Update(cam)
	ox, oy := backdrop.Offset()
	if ox != 400 || oy != 200 {
		t.Errorf("expected offset (400, 200), got (%.0f, %.0f)", ox, oy)
	}
}

func TestBackdropLagsTheCamera(t *testing.T) {
	backdrop := NewBackdrop(800, 600, 0.4, rand.New(rand.NewSource(1)))
	cam := NewCamera(800, 600)
	cam.X = 100

	backdrop.Update(cam)
	ox, _ := backdrop.Offset()
	if ox >= cam.X {
		t.Errorf("backdrop must scroll slower than the camera, offset %.0f for camera %.0f", ox, cam.X)
	}
}

func TestWrapStaysInSpan(t *testing.T) {
	cases := []float64{-1500, -1, 0, 1, 999, 1000, 2750}
	for _, v := range cases {
		got := wrap(v, 1000)
		if got < 0 || got >= 1000 {
			t.Errorf("wrap(%.0f, 1000) = %.0f, out of range", v, got)
		}
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.X = 4096
	cam.Y = 4096

	sx, sy := cam.WorldToScreen(4096, 4096)
	if sx != 400 || sy != 300 {
		t.Errorf("camera center should map to screen center, got (%.0f, %.0f)", sx, sy)
	}
	wx, wy := cam.ScreenToWorld(sx, sy)
	if wx != 4096 || wy != 4096 {
		t.Errorf("round trip drifted to (%.0f, %.0f)", wx, wy)
	}
}

func TestCameraFollowEases(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Follow(100, 0)
	if cam.X <= 0 || cam.X >= 100 {
		t.Errorf("follow should ease toward the target, got %.1f", cam.X)
	}
}
