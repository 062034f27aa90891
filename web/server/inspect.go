package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/objects"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
	"github.com/df07/go-shadow-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit           bool                   `json:"hit"`
	ObjectType    string                 `json:"objectType,omitempty"`
	ObjectIndex   int                    `json:"objectIndex"`
	Point         [3]float64             `json:"point"`
	Normal        [3]float64             `json:"normal"`
	Distance      float64                `json:"distance"`
	MaterialColor [4]float64             `json:"materialColor"`
	Color         [4]float64             `json:"color"` // Final shaded (or sky) color
	Hex           string                 `json:"hex"`   // Color as stored in the image
	Properties    map[string]interface{} `json:"properties,omitempty"`
	Lights        []InspectLight         `json:"lights,omitempty"`
}

// InspectLight reports whether one light reaches the hit point
type InspectLight struct {
	Type     string     `json:"type"`
	Color    [4]float64 `json:"color"`
	Occluded bool       `json:"occluded"`
	Diffuse  float64    `json:"diffuse"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}

// extractObjectInfo describes the object with type assertions
func extractObjectInfo(object core.Drawable, point core.Vec3) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch obj := object.(type) {
	case *objects.NormalSphere:
		properties["center"] = vecArray(obj.Sphere.Center)
		properties["radius"] = obj.Sphere.Radius
		return "normal_sphere", properties

	case *objects.ColoredPlane:
		segment := obj.Segment
		u, v := segment.UV(point)
		properties["reference"] = vecArray(segment.Plane.Reference)
		properties["u"] = vecArray(segment.U)
		properties["v"] = vecArray(segment.V)
		properties["width"] = segment.UWidth
		properties["height"] = segment.VHeight
		properties["uv"] = [2]float64{u, v}
		return "colored_plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the camera ray through a pixel and describes what it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	camera := renderer.NewCamera(sceneObj.CameraConfig)
	ray := camera.GetRay(pixelX, pixelY)

	final := sceneObj.GetColor(ray)
	rgba := renderer.ColorToRGBA(final)
	response := InspectResponse{
		Color: colorArray(final),
		Hex:   fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B),
	}

	hit, isHit := sceneObj.CastRay(ray)
	if !isHit {
		response.ObjectIndex = -1
		return response
	}

	point := ray.At(hit.T)
	objectType, properties := extractObjectInfo(hit.Object, point)

	response.Hit = true
	response.ObjectType = objectType
	response.ObjectIndex = hit.Index
	response.Point = vecArray(point)
	normal := hit.Object.Normal(point)
	response.Normal = vecArray(normal)
	response.Distance = hit.T
	response.MaterialColor = colorArray(hit.Object.MaterialColor(ray, point))
	response.Properties = properties
	for _, c := range sceneObj.Illumination(point, normal) {
		response.Lights = append(response.Lights, InspectLight{
			Type:     string(c.Light.Type()),
			Color:    colorArray(c.Color),
			Occluded: c.Occluded,
			Diffuse:  c.Diffuse,
		})
	}
	return response
}

// handleInspect handles pixel inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}

	cfg := sceneObj.CameraConfig
	if pixelX < 0 || pixelX >= cfg.Width || pixelY < 0 || pixelY >= cfg.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(inspectPixel(sceneObj, pixelX, pixelY))
}
