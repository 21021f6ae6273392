package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Traced color along the center ray
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult is the closest hit along the center ray of a pixel
type InspectResult struct {
	Hit   bool
	Point geometry.GeoPoint
	Ray   core.Ray
}

// inspectPixel casts the center ray of a pixel into the scene and reports the closest hit
func inspectPixel(sceneObj *scene.Scene, cam *camera.Camera, width, height, pixelX, pixelY int) InspectResult {
	ray := cam.ConstructRay(width, height, pixelX, pixelY)
	gp, ok := geometry.ClosestGeoPoint(ray, geometry.IntersectAll(sceneObj.Geometries, ray))
	return InspectResult{Hit: ok, Point: gp, Ray: ray}
}

// extractMaterialInfo lists the shading coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"kd":        factorArray(mat.KD),
		"ks":        factorArray(mat.KS),
		"kr":        factorArray(mat.KR),
		"kt":        factorArray(mat.KT),
		"shininess": mat.Shininess,
	}
	if mat.Glossy() {
		properties["glossiness"] = mat.KG
	}
	if mat.Blurry() {
		properties["blur"] = mat.KB
	}
	return properties
}

// extractGeometryInfo describes the geometry that was hit
func extractGeometryInfo(geom geometry.Geometry) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := geom.(type) {
	case *geometry.Sphere:
		properties["center"] = pointArray(g.Center())
		properties["radius"] = g.Radius()
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = pointArray(g.Point())
		properties["normal"] = vectorArray(g.Normal(g.Point()))
		return "plane", properties

	case *geometry.Polygon:
		vertices := g.Vertices()
		points := make([][3]float64, len(vertices))
		for i, v := range vertices {
			points[i] = pointArray(v)
		}
		properties["vertices"] = points
		if len(vertices) == 3 {
			return "triangle", properties
		}
		return "polygon", properties

	case *geometry.Tube:
		properties["axisOrigin"] = pointArray(g.Axis().Origin())
		properties["axisDirection"] = vectorArray(g.Axis().Direction())
		properties["radius"] = g.Radius()
		return "tube", properties

	case *geometry.Cylinder:
		properties["axisOrigin"] = pointArray(g.Axis().Origin())
		properties["axisDirection"] = vectorArray(g.Axis().Direction())
		properties["radius"] = g.Radius()
		properties["height"] = g.Height()
		return "cylinder", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseSceneRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	cam, err := camera.New(sceneObj.CameraConfig)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("scene %s: %v", sceneObj.Name, err)})
		return
	}

	result := inspectPixel(sceneObj, cam, req.Width, req.Height, pixelX, pixelY)
	tracer := renderer.NewRaytracer(sceneObj, renderer.TracerConfig{
		MaxDepth:       req.MaxDepth,
		GlossyRays:     req.GlossyRays,
		SoftShadowRays: req.SoftShadowRays,
	})
	color := tracer.TraceRay(result.Ray)

	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: colorArray(color)})
		return
	}

	gp := result.Point
	geometryType, geometryProps := extractGeometryInfo(gp.Geometry)
	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        pointArray(gp.Point),
		Normal:       vectorArray(gp.Geometry.Normal(gp.Point)),
		Distance:     result.Ray.Origin().Distance(gp.Point),
		Color:        colorArray(color),
		Properties: map[string]interface{}{
			"geometry": geometryProps,
			"material": extractMaterialInfo(gp.Geometry.Material()),
			"emission": colorArray(gp.Geometry.Emission()),
		},
	}
	writeJSON(w, http.StatusOK, response)
}

func pointArray(p core.Point) [3]float64 { return [3]float64{p.X(), p.Y(), p.Z()} }

func vectorArray(v core.Vector) [3]float64 { return [3]float64{v.X(), v.Y(), v.Z()} }

func colorArray(c core.Color) [3]float64 { return [3]float64{c.R, c.G, c.B} }

func factorArray(f core.Factor) [3]float64 { return [3]float64{f.R, f.G, f.B} }
