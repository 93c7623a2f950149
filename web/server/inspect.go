package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Inside       bool                   `json:"inside"` // Ray started inside the sphere it hit
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// lensCenter makes the camera sample the center of its lens
type lensCenter struct{}

func (lensCenter) Get1D() float32 { return 0.5 }

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecJSON(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecJSON(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord *material.HitRecord
	Sphere    *geometry.Sphere // nil when the hit object is not a sphere
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), counted from
// the top-left corner, and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, width, height, pixelX, pixelY int) InspectResult {
	s := (float32(pixelX) + 0.5) / float32(width)
	t := (float32(height-1-pixelY) + 0.5) / float32(height)
	ray := camera.GetRay(s, t, lensCenter{})

	const minT = 0.001
	hit, isHit := sceneObj.World.Hit(ray, minT, math32.Inf(1))
	if !isHit {
		return InspectResult{Ray: ray}
	}

	// The list does not say which object it hit; find the one at the same distance
	for _, object := range sceneObj.World.Objects {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if sphereHit, sphereIsHit := sphere.Hit(ray, minT, math32.Inf(1)); sphereIsHit && sphereHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Sphere: sphere}
		}
	}
	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := s.parseRenderRequest(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := scene.Create(req.Scene, int64(req.Seed))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	camera, err := sceneObj.Camera(float32(req.Width) / float32(req.Height))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, camera, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := "unknown", map[string]interface{}{}
	if result.Sphere != nil {
		geometryType = "sphere"
		geometryProps["center"] = vecJSON(result.Sphere.Center)
		geometryProps["radius"] = result.Sphere.Radius
	}

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecJSON(hit.Point),
		Normal:       vecJSON(hit.Normal),
		Distance:     hit.T,
		Inside:       result.Ray.Direction.Dot(hit.Normal) > 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
