package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Request limits, shared by the render and inspect endpoints
const (
	maxImageSize  = 2000
	maxSamples    = 10000
	maxDepthLimit = 1000
)

// Server renders scenes over HTTP, one synchronous render per request
type Server struct {
	port    int
	logger  core.Logger
	renders atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{port: port, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene name (e.g., "cover")
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	Samples  int    `json:"samples"`  // Samples per pixel
	MaxDepth int    `json:"maxDepth"` // Maximum bounces per path
	Seed     int    `json:"seed"`     // Random seed, 0..255
	Format   string `json:"format"`   // "png", "ppm" or "json"
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	RaysTraced      int     `json:"raysTraced"`
	AverageBounces  float64 `json:"averageBounces"`
	Absorbed        int     `json:"absorbed"`
	DepthLimited    int     `json:"depthLimited"`
	MaxDepthReached int     `json:"maxDepthReached"`
	Luminance       float64 `json:"averageLuminance"`
}

// Handler returns the HTTP routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleRender renders a scene and responds with the encoded image, or with a JSON
// document carrying the PNG, statistics and render log when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	raytracer, err := s.createRaytracer(req, logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	startTime := time.Now()
	img, stats, err := raytracer.Render()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Render error: " + err.Error()})
		return
	}

	if req.Format == "json" {
		imageData, err := imageToBase64PNG(img)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode image: " + err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			ImageData: imageData,
			Stats: Stats{
				TotalPixels:     stats.TotalPixels,
				TotalSamples:    stats.TotalSamples,
				RaysTraced:      stats.RaysTraced,
				AverageBounces:  stats.AverageBounces(),
				Absorbed:        stats.Absorbed,
				DepthLimited:    stats.DepthLimited,
				MaxDepthReached: stats.MaxDepthReached,
				Luminance:       renderer.CalculateAverageLuminance(img),
			},
			Console:   drainConsole(consoleChan),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	format := output.Format(req.Format)
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, format); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Id", renderID)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// createRaytracer builds the requested scene and a raytracer for it
func (s *Server) createRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := scene.Create(req.Scene, int64(req.Seed))
	if err != nil {
		return nil, err
	}
	camera, err := sceneObj.Camera(float32(req.Width) / float32(req.Height))
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultSamplingConfig()
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.MaxDepth
	return renderer.NewRaytracer(sceneObj.World, camera, req.Width, req.Height, config, int64(req.Seed), logger)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(query url.Values) (*RenderRequest, error) {
	defaults := renderer.DefaultSamplingConfig()
	req := &RenderRequest{Scene: "cover", Format: "png"}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}
	switch format := query.Get("format"); format {
	case "":
	case "png", "ppm", "json":
		req.Format = format
	default:
		return nil, fmt.Errorf("format must be png, ppm or json, got: %s", format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, 1, maxDepthLimit); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(query, "seed", 101, 0, 255); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		s.logger.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleSceneConfig returns the camera and default sampling for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "cover"
	}

	sceneObj, err := scene.Create(sceneName, 101)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cam := sceneObj.CameraConfig
	defaults := renderer.DefaultSamplingConfig()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":   sceneName,
		"objects": sceneObj.World.Len(),
		"camera": map[string]interface{}{
			"lookFrom":      vecJSON(cam.LookFrom),
			"lookAt":        vecJSON(cam.LookAt),
			"up":            vecJSON(cam.Up),
			"vfov":          cam.VFov,
			"aperture":      cam.Aperture,
			"focusDistance": cam.FocusDistance,
		},
		"defaults": map[string]interface{}{
			"samplesPerPixel": defaults.SamplesPerPixel,
			"maxDepth":        defaults.MaxDepth,
			"minT":            defaults.MinT,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 1, "max": maxImageSize},
			"height":   map[string]int{"min": 1, "max": maxImageSize},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 1, "max": maxDepthLimit},
			"seed":     map[string]int{"min": 0, "max": 255},
		},
	})
}

func vecJSON(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
