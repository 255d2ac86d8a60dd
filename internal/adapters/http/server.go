package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/leveledit/internal/logging"
	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/level"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 32 << 20

// Content types understood by the scene endpoints.
const (
	ContentTypeScene = "text/x-leveledit-scene"
	ContentTypeYAML  = "application/yaml"
	ContentTypeJSON  = "application/json"
)

// Server exposes stored levels over HTTP.
type Server struct {
	Levels  *level.Manager
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the HTTP handler for the scene API.
func NewHandler(levels *level.Manager, opts ...Option) http.Handler {
	s := &Server{Levels: levels, Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/scenes", func(r chi.Router) {
		r.Get("/", s.ListScenes)
		r.Get("/{name}", s.GetScene)
		r.Put("/{name}", s.PutScene)
		r.Delete("/{name}", s.DeleteScene)
	})
	return r
}

// ListScenes handles GET /scenes.
func (s *Server) ListScenes(w http.ResponseWriter, r *http.Request) {
	names, err := s.Levels.List(r.Context())
	if err != nil {
		s.fail(w, "list failed", http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenes": names})
}

// GetScene handles GET /scenes/{name}.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	scene, err := s.Levels.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrSceneNotFound) {
			http.Error(w, "scene not found", http.StatusNotFound)
			return
		}
		s.fail(w, "load failed", statusFor(err), err)
		return
	}

	contentType := negotiate(r.Header.Get("Accept"))
	if contentType == ContentTypeJSON {
		writeJSON(w, http.StatusOK, scene)
		return
	}

	c := codecFor(contentType)
	w.Header().Set("Content-Type", contentType)
	if err := c.Encode(w, scene); err != nil {
		s.Logger.Error("scene encode failed", "scene", name, "err", err)
	}
}

// PutScene handles PUT /scenes/{name}. The body may be a ".scene" stream, a YAML
// document or JSON, selected by Content-Type.
func (s *Server) PutScene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	scene, err := decodeBody(r.Header.Get("Content-Type"), body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid scene: %v", err), http.StatusBadRequest)
		s.Logger.Warn("rejected scene upload", "scene", name, "err", err)
		return
	}
	scene.Name = name

	if err := s.Levels.Save(r.Context(), name, scene); err != nil {
		if domain.IsKind(err, domain.KindInvalid) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.fail(w, "save failed", statusFor(err), err)
		return
	}

	s.Logger.Info("scene stored", "scene", name, "objects", len(scene.Objects))
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "objects": len(scene.Objects)})
}

// DeleteScene handles DELETE /scenes/{name}.
func (s *Server) DeleteScene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Levels.Delete(r.Context(), name); err != nil {
		s.fail(w, "delete failed", statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, msg string, status int, err error) {
	if status < http.StatusInternalServerError {
		s.Logger.Warn(msg, "err", err)
		http.Error(w, err.Error(), status)
		return
	}
	s.Logger.Error(msg, "err", err)
	http.Error(w, msg, status)
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrInvalidName) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeBody(contentType string, body io.Reader) (*domain.Scene, error) {
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if mediaType == ContentTypeJSON {
		var scene domain.Scene
		if err := json.NewDecoder(body).Decode(&scene); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
		}
		if scene.Version == 0 {
			scene.Version = domain.CurrentVersion
		}
		return &scene, nil
	}
	return codecFor(mediaType).Decode(body)
}

func negotiate(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.Split(part, ";")[0])
		switch mediaType {
		case ContentTypeJSON, ContentTypeYAML, ContentTypeScene:
			return mediaType
		}
	}
	return ContentTypeScene
}

func codecFor(mediaType string) codec.Codec {
	if mediaType == ContentTypeYAML {
		return codec.YAML{}
	}
	return codec.Lines{}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
