// Package server exposes the view-composer boundary over HTTP: category and
// indicator listings, resolved view payloads, county geometry as GeoJSON,
// and the reload trigger.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"healthinsights/internal/catalog"
	"healthinsights/internal/resolver"
	"healthinsights/internal/store"
	"healthinsights/internal/types"
)

// ReloadFunc re-runs the ingestion pipeline and returns a fresh store.
type ReloadFunc func() (*store.Store, error)

// Server wires the core components to the HTTP surface.
type Server struct {
	log      zerolog.Logger
	catalog  *catalog.Catalog
	stores   *store.Handle
	resolver *resolver.Resolver
	reload   ReloadFunc

	reloadMu sync.Mutex // one reload at a time; never concurrent with a swap
}

func New(log zerolog.Logger, cat *catalog.Catalog, h *store.Handle, res *resolver.Resolver, reload ReloadFunc) *Server {
	return &Server{log: log, catalog: cat, stores: h, resolver: res, reload: reload}
}

// Router builds the chi router with CORS and access logging.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	r.Use(s.accessLog)

	r.Get("/api/categories", s.handleCategories)
	r.Get("/api/categories/{category}/indicators", s.handleIndicators)
	r.Get("/api/view", s.handleView)
	r.Get("/api/geographies", s.handleGeographies)
	r.Get("/api/geographies/{id}", s.handleGeography)
	r.Post("/api/reload", s.handleReload)
	return r
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.catalog.Categories()})
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	indicators, err := s.catalog.Indicators(category)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category, "indicators": indicators})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel := types.SelectionState{
		Category:  r.URL.Query().Get("category"),
		Indicator: r.URL.Query().Get("indicator"),
	}
	if sel.Category == "" || sel.Indicator == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category and indicator are required"})
		return
	}
	payload, err := s.resolver.Resolve(sel)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGeographies(w http.ResponseWriter, r *http.Request) {
	st := s.stores.Current()
	fc := geojson.NewFeatureCollection()
	for _, id := range st.Geographies() {
		sh, err := st.Shape(id)
		if err != nil {
			continue
		}
		fc.Append(feature(sh))
	}
	writeJSON(w, http.StatusOK, fc)
}

func (s *Server) handleGeography(w http.ResponseWriter, r *http.Request) {
	sh, err := s.stores.Current().Shape(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feature(sh))
}

// Reload re-runs the pipeline and swaps the store atomically. On failure the
// previous store stays active and queries keep succeeding. Serialized, so a
// reload never races another reload's swap. Shared by the HTTP trigger and
// the SIGHUP handler.
func (s *Server) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	st, err := s.reload()
	if err != nil {
		s.log.Error().Err(err).Msg("reload failed, previous store kept")
		return err
	}
	s.stores.Publish(st)
	s.log.Info().Msg("store reloaded")
	return nil
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reload failed: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func feature(sh types.GeographyShape) *geojson.Feature {
	f := geojson.NewFeature(sh.Geometry)
	f.Properties["id"] = sh.ID
	f.Properties["name"] = sh.Name
	return f
}

// writeError maps caller-facing error kinds to statuses; selection problems
// are a user-visible "selection unavailable" state, never a process failure.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		unknownInd *catalog.UnknownIndicatorError
		unknownGeo *store.UnknownGeographyError
		invalidSel *resolver.InvalidSelectionError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalidSel), errors.As(err, &unknownInd), errors.As(err, &unknownGeo):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
