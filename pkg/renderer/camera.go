package renderer

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for camera parameters that cannot form a view
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float32   // Vertical field of view in degrees
	AspectRatio   float32   // Width / height
	Aperture      float32   // Lens diameter (0 = pinhole, no blur)
	FocusDistance float32   // Distance to the focal plane (0 = distance to LookAt)
}

// Camera generates rays for rendering. It is immutable once built.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera coordinate basis
	lensRadius      float32
}

// NewCamera derives the orthonormal basis and focal-plane rectangle from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("%w: vertical fov %g must be in (0, 180)", ErrInvalidCamera, config.VFov)
	}
	if config.AspectRatio <= 0 {
		return nil, fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidCamera, config.AspectRatio)
	}
	if config.Aperture < 0 || config.FocusDistance < 0 {
		return nil, fmt.Errorf("%w: aperture and focus distance must not be negative", ErrInvalidCamera)
	}

	w, err := config.LookFrom.Subtract(config.LookAt).TryNormalize()
	if err != nil {
		return nil, fmt.Errorf("%w: look-from equals look-at: %w", ErrInvalidCamera, err)
	}
	u, err := config.Up.Cross(w).TryNormalize()
	if err != nil {
		return nil, fmt.Errorf("%w: up vector is parallel to the view direction: %w", ErrInvalidCamera, err)
	}
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := mgl32.DegToRad(config.VFov)
	halfHeight := math32.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	origin := config.LookFrom
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1,
// (0,0) being the lower-left corner. The lens offset is always drawn from the sampler.
func (c *Camera) GetRay(s, t float32, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
