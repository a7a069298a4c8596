package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-3 }

func TestInitialEye(t *testing.T) {
	c := NewCamera()
	eye := c.Eye()
	if !near(eye.X, 0) || !near(eye.Y, 0) || !near(eye.Z, 3) {
		t.Fatalf("eye %+v, want (0,0,3)", eye)
	}
}

func TestDampedRotation(t *testing.T) {
	c := NewCamera()
	c.Rotate(1, 0)
	c.Update()
	if !near(c.azimuth, DefaultDamping) {
		t.Fatalf("first step moved %v, want %v", c.azimuth, DefaultDamping)
	}
	for i := 0; i < 1000 && c.Update(); i++ {
	}
	if c.Update() {
		t.Fatalf("camera never settled")
	}
	if !near(c.azimuth, 1) {
		t.Fatalf("azimuth settled at %v, want ~1", c.azimuth)
	}
}

func TestPolarIsClamped(t *testing.T) {
	c := NewCamera()
	c.Damping = 1
	c.Rotate(0, 10)
	c.Update()
	if c.polar >= math32.Pi {
		t.Fatalf("polar %v not clamped", c.polar)
	}
}

func TestProjectCentre(t *testing.T) {
	c := NewCamera()
	v := c.View(21, 21)
	x, y, d, ok := v.Project(Vec3{})
	if !ok || x != 10 || y != 10 || !near(d, 3) {
		t.Fatalf("origin projected to (%d,%d) depth %v ok=%v", x, y, d, ok)
	}
	if _, _, _, ok := v.Project(Vec3{Z: 5}); ok {
		t.Fatalf("point behind the eye projected")
	}
	x, _, _, _ = v.Project(Vec3{X: 0.5})
	if x <= 10 {
		t.Fatalf("+X should land right of centre, got %d", x)
	}
}

func TestFrameFitsBounds(t *testing.T) {
	c := NewCamera()
	c.Frame(Vec3{X: 9, Y: 9, Z: 9}, Vec3{X: 11, Y: 11, Z: 11})
	if got := c.Target(); got != (Vec3{X: 10, Y: 10, Z: 10}) {
		t.Fatalf("target %+v", got)
	}
	if c.Distance() <= 1.7 {
		t.Fatalf("distance %v too close to fit the box", c.Distance())
	}
}

func TestCanvasDepthTest(t *testing.T) {
	cv := NewCanvas(2, 1)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}
	if !cv.Plot(0, 0, 5, red) {
		t.Fatalf("first plot rejected")
	}
	if cv.Plot(0, 0, 6, blue) {
		t.Fatalf("farther plot accepted")
	}
	if !cv.Plot(0, 0, 1, blue) {
		t.Fatalf("nearer plot rejected")
	}
	if cv.Plot(5, 5, 1, blue) {
		t.Fatalf("out of bounds plot accepted")
	}
	if got, _ := cv.pixel(0, 0); got != blue {
		t.Fatalf("pixel holds %v", got)
	}
	if cv.Lit() != 1 {
		t.Fatalf("lit %d", cv.Lit())
	}
	cv.Clear()
	if cv.Lit() != 0 {
		t.Fatalf("clear left %d pixels", cv.Lit())
	}
}
