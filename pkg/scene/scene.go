// Package scene hosts the 3D viewport: an orbit camera, a character canvas
// and the adapter that keeps exactly one model renderable alive.
package scene

import "github.com/chewxy/math32"

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the euclidean length.
func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length; the zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Renderable is a model that can draw itself.
type Renderable interface {
	Render(c *Canvas, cam *Camera)
}

// Disposer is implemented by renderables that hold resources.
type Disposer interface {
	Dispose()
}

// Bounder is implemented by renderables that know their extent once loaded.
type Bounder interface {
	Bounds() (min, max Vec3, ok bool)
}

// Factory builds the renderable for an asset URL. Construction must not
// block; asset loading happens inside the renderable.
type Factory interface {
	New(url string) Renderable
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(url string) Renderable

// New implements Factory.
func (f FactoryFunc) New(url string) Renderable { return f(url) }

// ErrorSink receives asynchronous asset failures raised inside the engine.
type ErrorSink func(url string, err error)
