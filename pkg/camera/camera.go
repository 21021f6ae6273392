package camera

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	ErrNotOrthogonal = errors.New("camera to and up vectors must be orthogonal")
	ErrNoDirection   = errors.New("camera to and up vectors must be set")
)

// Config contains the immutable camera configuration validated by New
type Config struct {
	Location core.Point  // Eye position
	To       core.Vector // View direction
	Up       core.Vector // Up direction, orthogonal to To
	Width    float64     // View plane width
	Height   float64     // View plane height
	Distance float64     // Distance from the eye to the view plane
}

// LookAt builds a configuration aimed from location at target. The up vector
// is made orthogonal to the view direction; the view plane fields are left unset.
func LookAt(location, target core.Point, up core.Vector) (Config, error) {
	to, err := target.Subtract(location)
	if err != nil {
		return Config{}, fmt.Errorf("camera target: %w", err)
	}
	to = core.Must(to.Normalize())

	trueUp := up
	if offAxis, err := to.Scale(up.Dot(to)); err == nil {
		if trueUp, err = up.Subtract(offAxis); err != nil {
			return Config{}, fmt.Errorf("camera up is parallel to the view direction: %w", err)
		}
	}
	trueUp, err = trueUp.Normalize()
	if err != nil {
		return Config{}, fmt.Errorf("camera up: %w", err)
	}

	return Config{Location: location, To: to, Up: trueUp}, nil
}

// Validate checks the configuration
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Width, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.Height, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.Distance, validation.Required, validation.Min(0.0).Exclusive()),
	)
	if err != nil {
		return err
	}
	if core.IsZero(c.To.Length()) || core.IsZero(c.Up.Length()) {
		return ErrNoDirection
	}
	if !core.IsZero(c.To.Dot(c.Up)) {
		return fmt.Errorf("%w: to %v, up %v", ErrNotOrthogonal, c.To, c.Up)
	}
	return nil
}

// Camera generates rays from an eye point through a view plane divided into pixels
type Camera struct {
	location core.Point
	vTo      core.Vector
	vUp      core.Vector
	vRight   core.Vector
	width    float64
	height   float64
	distance float64
}

// New validates the configuration and creates a camera
func New(cfg Config) (*Camera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	vTo := core.Must(cfg.To.Normalize())
	vUp := core.Must(cfg.Up.Normalize())
	return &Camera{
		location: cfg.Location,
		vTo:      vTo,
		vUp:      vUp,
		vRight:   core.Must(core.Must(vTo.Cross(vUp)).Normalize()),
		width:    cfg.Width,
		height:   cfg.Height,
		distance: cfg.Distance,
	}, nil
}

// Config returns the camera's current configuration
func (c *Camera) Config() Config {
	return Config{
		Location: c.location,
		To:       c.vTo,
		Up:       c.vUp,
		Width:    c.width,
		Height:   c.height,
		Distance: c.distance,
	}
}

func (c *Camera) Location() core.Point { return c.location }
func (c *Camera) To() core.Vector      { return c.vTo }
func (c *Camera) Up() core.Vector      { return c.vUp }
func (c *Camera) Right() core.Vector   { return c.vRight }

// PixelSize returns the width and height of one pixel on the view plane
func (c *Camera) PixelSize(nX, nY int) (float64, float64) {
	return c.width / float64(nX), c.height / float64(nY)
}

// PixelCenter returns the center of pixel (j, i) of an nX by nY view plane.
// Column j grows to the right and row i grows downward.
func (c *Camera) PixelCenter(nX, nY, j, i int) core.Point {
	rX, rY := c.PixelSize(nX, nY)
	xJ := (float64(j) - float64(nX-1)/2) * rX
	yI := -(float64(i) - float64(nY-1)/2) * rY
	return c.viewPlanePoint(xJ, yI)
}

// viewPlanePoint offsets the view plane center by x along right and y along up
func (c *Camera) viewPlanePoint(x, y float64) core.Point {
	p := c.location.Add(core.Must(c.vTo.Scale(c.distance)))
	if !core.IsZero(x) {
		p = p.Add(core.Must(c.vRight.Scale(x)))
	}
	if !core.IsZero(y) {
		p = p.Add(core.Must(c.vUp.Scale(y)))
	}
	return p
}

// RayThrough returns the ray from the eye through a point on the view plane
func (c *Camera) RayThrough(p core.Point) core.Ray {
	dir, err := p.Subtract(c.location)
	if err != nil {
		return core.NewRay(c.location, c.vTo)
	}
	return core.NewRay(c.location, dir)
}

// ConstructRay returns the ray through the center of pixel (j, i)
func (c *Camera) ConstructRay(nX, nY, j, i int) core.Ray {
	return c.RayThrough(c.PixelCenter(nX, nY, j, i))
}

// ConstructRays returns an n by n grid of rays through sub-pixel centers of pixel (j, i).
// n <= 1 gives the single center ray.
func (c *Camera) ConstructRays(nX, nY, j, i, n int) []core.Ray {
	if n <= 1 {
		return []core.Ray{c.ConstructRay(nX, nY, j, i)}
	}

	rX, rY := c.PixelSize(nX, nY)
	xJ := (float64(j) - float64(nX-1)/2) * rX
	yI := -(float64(i) - float64(nY-1)/2) * rY

	rays := make([]core.Ray, 0, n*n)
	for row := 0; row < n; row++ {
		dy := (0.5 - (float64(row)+0.5)/float64(n)) * rY
		for col := 0; col < n; col++ {
			dx := ((float64(col)+0.5)/float64(n) - 0.5) * rX
			rays = append(rays, c.RayThrough(c.viewPlanePoint(xJ+dx, yI+dy)))
		}
	}
	return rays
}

// Translate returns a copy of the camera moved by offset
func (c *Camera) Translate(offset core.Vector) *Camera {
	moved := *c
	moved.location = c.location.Add(offset)
	return &moved
}

// Rotate returns a copy of the camera with its orientation rotated around the
// X, then Y, then Z axes by the given angles in degrees
func (c *Camera) Rotate(x, y, z float64) *Camera {
	rotated := *c
	rotated.vTo = c.vTo.RotateX(x).RotateY(y).RotateZ(z)
	rotated.vUp = c.vUp.RotateX(x).RotateY(y).RotateZ(z)
	rotated.vRight = core.Must(core.Must(rotated.vTo.Cross(rotated.vUp)).Normalize())
	return &rotated
}
