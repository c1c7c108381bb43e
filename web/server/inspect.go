package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
	"github.com/Turtyo/rayTracing3D/pkg/renderer"
	"github.com/Turtyo/rayTracing3D/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	Object     string                 `json:"object"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"` // Unit outward normal
	Distance   float64                `json:"distance"`
	Properties map[string]interface{} `json:"properties"`
	Lights     []LightVisibility      `json:"lights"`
}

// LightVisibility tells whether an emitter's center can be seen from the
// inspected point
type LightVisibility struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Reason  string `json:"reason,omitempty"`
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	emission := mat.EmissionColor()
	diffusion := mat.Diffusion()
	return map[string]interface{}{
		"emissive":         mat.IsEmissive(),
		"emission":         fmt.Sprintf("#%02x%02x%02x", emission.R, emission.G, emission.B),
		"emissionStrength": mat.EmissionStrength(),
		"diffusion":        [3]float64{diffusion.R(), diffusion.G(), diffusion.B()},
		"reflection":       mat.ReflectionCoefficient(),
	}
}

// extractGeometryInfo describes a sphere for the inspector
func extractGeometryInfo(sphere geometry.Sphere) map[string]interface{} {
	return map[string]interface{}{
		"center": [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z},
		"radius": sphere.Radius,
	}
}

// inspectPixel casts the center ray of pixel (x, y) and describes the first
// object hit, with the visibility of every light from the hit point
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, x, y int) (InspectResponse, error) {
	ray, err := camera.GetRay(x, y, 0.5, 0.5)
	if err != nil {
		return InspectResponse{}, err
	}

	hit, ok, err := geometry.FirstPointHitByRay(ray, sceneObj.Objects, nil)
	if err != nil {
		return InspectResponse{}, err
	}
	if !ok {
		return InspectResponse{Hit: false}, nil
	}

	normal, err := hit.Normal.Normalize()
	if err != nil {
		return InspectResponse{}, err
	}

	response := InspectResponse{
		Hit:      true,
		Object:   hit.Object.String(),
		Point:    [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:   [3]float64{normal.X, normal.Y, normal.Z},
		Distance: hit.Distance,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Object.Material),
			"geometry": extractGeometryInfo(hit.Object.Shape),
		},
		Lights: []LightVisibility{},
	}

	for _, light := range sceneObj.Lights() {
		if light == hit.Object {
			continue
		}

		visibility := LightVisibility{Name: light.String()}
		visible, err := geometry.EmitterIsVisibleFrom(sceneObj.Objects, light, hit)
		switch {
		case err == nil:
			visibility.Visible = visible
		case errors.Is(err, core.ErrRayDoesNotReachPoint):
			visibility.Reason = err.Error()
		default:
			return InspectResponse{}, err
		}
		response.Lights = append(response.Lights, visibility)
	}
	return response, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
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
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	pixelSize := sceneObj.Grid.PixelSize * float64(sceneObj.Grid.Width) / float64(inspectReq.Width)
	camera := renderer.NewCamera(inspectReq.Width, inspectReq.Height, pixelSize)

	response, err := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Inspection failed: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}
