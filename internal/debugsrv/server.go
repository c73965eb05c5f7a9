// Package debugsrv serves metrics and the latest presented frame over HTTP.
package debugsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/taigrr/portal/pkg/render"
)

var errNoFrame = errors.New("no frame presented yet")

// CameraState is the JSON view of a camera.
type CameraState struct {
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	FOV      float64    `json:"fov"` // degrees
	Aspect   float64    `json:"aspect"`
}

// NewCameraState describes cam.
func NewCameraState(cam *render.Camera) CameraState {
	return CameraState{
		Position: [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
		Rotation: [3]float64{cam.Rotation.X, cam.Rotation.Y, cam.Rotation.Z},
		FOV:      cam.FOV * 180 / math.Pi,
		Aspect:   cam.AspectRatio,
	}
}

// State is what /state reports about the last presented frame.
type State struct {
	Preset       string      `json:"preset"`
	Frame        uint64      `json:"frame"`
	Time         float64     `json:"time"`
	TookMillis   float64     `json:"took_ms"`
	FPS          float64     `json:"fps"`
	Size         [2]int      `json:"size"`
	Target       [2]int      `json:"target"`
	Camera       CameraState `json:"camera"`
	PortalCamera CameraState `json:"portal_camera"`
}

// Server holds copies of the last published frame. Publish and the HTTP
// handlers may run on different goroutines.
type Server struct {
	router *mux.Router
	log    *zap.Logger

	mu     sync.RWMutex
	frame  *image.RGBA
	portal *image.RGBA
	state  State
}

// New creates a server exposing the collectors of reg.
func New(reg prometheus.Gatherer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{router: mux.NewRouter(), log: log}
	if reg != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	}
	s.router.HandleFunc("/frame.png", s.getFrame).Methods("GET")
	s.router.HandleFunc("/portal.png", s.getPortal).Methods("GET")
	s.router.HandleFunc("/state", s.getState).Methods("GET")
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Publish copies the frame, the portal texture and the state.
func (s *Server) Publish(frame, portal *render.Framebuffer, state State) {
	var f, p *image.RGBA
	if frame != nil {
		f = frame.ToImage()
	}
	if portal != nil {
		p = portal.ToImage()
	}
	s.mu.Lock()
	s.frame, s.portal, s.state = f, p, state
	s.mu.Unlock()
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("Debug server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve debug http: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown debug http: %w", err)
	}
	return nil
}

func (s *Server) getFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	img := s.frame
	s.mu.RUnlock()
	s.writePNG(w, img)
}

func (s *Server) getPortal(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	img := s.portal
	s.mu.RUnlock()
	s.writePNG(w, img)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	respondWithJSON(w, http.StatusOK, state)
}

func (s *Server) writePNG(w http.ResponseWriter, img *image.RGBA) {
	if img == nil {
		respondWithError(w, http.StatusNotFound, errNoFrame)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Warn("Failed to encode frame", zap.Error(err))
	}
}

func respondWithError(w http.ResponseWriter, status int, err error) {
	respondWithJSON(w, status, map[string]string{"error": err.Error()})
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}
