package scene

import "github.com/chewxy/math32"

// Camera defaults. The initial eye sits at (0, 0, 3) looking at the origin.
const (
	DefaultFOV      = 60
	DefaultNear     = 0.01
	DefaultFar      = 1000
	DefaultDistance = 3
	DefaultDamping  = 0.05

	minDistance  = 0.05
	maxDistance  = 500
	polarEpsilon = 1e-3
)

// Camera is a perspective camera driven like an orbit control: user input
// accumulates deltas which Update applies with exponential damping.
type Camera struct {
	FOV     float32
	Near    float32
	Far     float32
	Damping float32

	target  Vec3
	radius  float32
	azimuth float32
	polar   float32
	aspect  float32

	dAzimuth float32
	dPolar   float32
	dScale   float32
}

// NewCamera returns a camera in its initial pose.
func NewCamera() *Camera {
	c := &Camera{
		FOV:     DefaultFOV,
		Near:    DefaultNear,
		Far:     DefaultFar,
		Damping: DefaultDamping,
		aspect:  1,
	}
	c.Reset()
	return c
}

// Reset returns to the initial pose and drops pending motion.
func (c *Camera) Reset() {
	c.target = Vec3{}
	c.radius = DefaultDistance
	c.azimuth = 0
	c.polar = math32.Pi / 2
	c.dAzimuth, c.dPolar, c.dScale = 0, 0, 0
}

// SetAspect sets width/height of the projection. Non-positive values are
// ignored.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// Aspect returns the projection aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// Rotate queues an orbit by the given angles in radians.
func (c *Camera) Rotate(azimuth, polar float32) {
	c.dAzimuth += azimuth
	c.dPolar += polar
}

// Dolly queues a zoom; positive amounts move the eye closer.
func (c *Camera) Dolly(amount float32) {
	c.dScale += amount
}

// Update applies one step of damped motion and reports whether the camera
// is still moving.
func (c *Camera) Update() bool {
	d := c.Damping
	if d <= 0 || d > 1 {
		d = 1
	}
	c.azimuth += c.dAzimuth * d
	c.polar += c.dPolar * d
	c.polar = clamp(c.polar, polarEpsilon, math32.Pi-polarEpsilon)
	c.radius *= 1 - c.dScale*d
	c.radius = clamp(c.radius, minDistance, maxDistance)

	c.dAzimuth *= 1 - d
	c.dPolar *= 1 - d
	c.dScale *= 1 - d

	const rest = 1e-4
	moving := math32.Abs(c.dAzimuth) > rest || math32.Abs(c.dPolar) > rest || math32.Abs(c.dScale) > rest
	if !moving {
		c.dAzimuth, c.dPolar, c.dScale = 0, 0, 0
	}
	return moving
}

// Frame centres the target on the box and backs off until it fits the
// field of view.
func (c *Camera) Frame(min, max Vec3) {
	c.target = min.Add(max).Scale(0.5)
	half := max.Sub(min).Len() / 2
	if half <= 0 {
		return
	}
	c.radius = clamp(half/math32.Tan(radians(c.FOV)/2)*1.1, minDistance, maxDistance)
}

// Target returns the orbit centre.
func (c *Camera) Target() Vec3 { return c.target }

// Distance returns the eye to target distance.
func (c *Camera) Distance() float32 { return c.radius }

// Eye returns the camera position.
func (c *Camera) Eye() Vec3 {
	sinP, cosP := math32.Sincos(c.polar)
	sinA, cosA := math32.Sincos(c.azimuth)
	return c.target.Add(Vec3{
		X: c.radius * sinP * sinA,
		Y: c.radius * cosP,
		Z: c.radius * sinP * cosA,
	})
}

// View is a frozen projection for one frame.
type View struct {
	eye            Vec3
	right, up, fwd Vec3
	focal          float32
	aspect         float32
	near, far      float32
	width, height  int
}

// View prepares a projection onto a width x height pixel grid.
func (c *Camera) View(width, height int) View {
	eye := c.Eye()
	fwd := c.target.Sub(eye).Normalize()
	right := fwd.Cross(Vec3{Y: 1}).Normalize()
	up := right.Cross(fwd)
	return View{
		eye:    eye,
		right:  right,
		up:     up,
		fwd:    fwd,
		focal:  1 / math32.Tan(radians(c.FOV)/2),
		aspect: c.aspect,
		near:   c.Near,
		far:    c.Far,
		width:  width,
		height: height,
	}
}

// Project maps p to pixel coordinates and view depth. ok is false when the
// point is outside the near/far range or off screen.
func (v View) Project(p Vec3) (x, y int, depth float32, ok bool) {
	rel := p.Sub(v.eye)
	depth = rel.Dot(v.fwd)
	if depth < v.near || depth > v.far {
		return 0, 0, depth, false
	}
	nx := rel.Dot(v.right) * v.focal / (v.aspect * depth)
	ny := rel.Dot(v.up) * v.focal / depth
	fx := (nx + 1) / 2 * float32(v.width)
	fy := (1 - ny) / 2 * float32(v.height)
	if fx < 0 || fy < 0 {
		return 0, 0, depth, false
	}
	x, y = int(fx), int(fy)
	if x >= v.width || y >= v.height {
		return 0, 0, depth, false
	}
	return x, y, depth, true
}

func radians(deg float32) float32 { return deg * math32.Pi / 180 }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
