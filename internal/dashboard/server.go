package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ess-tools/atlas-cli/internal/config"
	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/selection"
)

// Server wires the selection controller to HTTP: read endpoints for both
// views, event endpoints for the three interactions plus reset, and an SSE
// stream that pushes every selection change to connected views.
type Server struct {
	ctrl      *selection.Controller
	broker    *Broker
	limiter   *rate.Limiter
	activeVar string
	label     string
	regions   []regionInfo
}

type regionInfo struct {
	Region string  `json:"region"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Valid  bool    `json:"valid"`
}

// changeEvent is the SSE payload sent after each selection change.
type changeEvent struct {
	Selected  []string                  `json:"selected"`
	Filtered  int                       `json:"filtered"`
	Summaries []selection.RegionSummary `json:"summaries"`
}

// New creates a dashboard server over an immutable observation set with the
// given active variable. Events are processed one at a time by the
// controller; the limiter guards the event endpoints against floods.
func New(obs []model.Observation, activeVar, label string, cfg config.ServerConfig) *Server {
	s := &Server{
		ctrl:      selection.NewController(obs),
		broker:    NewBroker(),
		limiter:   rate.NewLimiter(rate.Limit(cfg.EventRateLimit), cfg.EventBurst),
		activeVar: activeVar,
		label:     label,
	}

	// Region list with full-dataset means, computed once up front.
	for _, rm := range rank.MeansByVariable(obs, []string{activeVar})[activeVar] {
		s.regions = append(s.regions, regionInfo{
			Region: rm.Region,
			Count:  rm.N,
			Mean:   rm.Mean,
			Valid:  true,
		})
	}

	s.ctrl.Subscribe(func(snap selection.Snapshot) {
		payload, err := json.Marshal(changeEvent{
			Selected:  snap.Selected,
			Filtered:  len(snap.Filtered),
			Summaries: s.ctrl.Summaries(s.activeVar),
		})
		if err != nil {
			zap.L().Error("marshal selection event", zap.Error(err))
			return
		}
		s.broker.Broadcast(payload)
	})

	return s
}

// Controller exposes the selection controller for out-of-band renderers.
func (s *Server) Controller() *selection.Controller {
	return s.ctrl
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/regions", s.handleRegions)
		r.Get("/observations", s.handleObservations)
		r.Get("/selection", s.handleSelection)
		r.Get("/summary", s.handleSummary)
		r.Get("/stream", s.handleStream)

		r.Route("/events", func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/map-click", s.handleMapClick)
			r.Post("/brush", s.handleBrush)
			r.Post("/point-click", s.handlePointClick)
			r.Post("/reset", s.handleReset)
		})
	})

	return r
}

// rateLimit rejects event floods so the serialized controller never builds
// an unbounded queue of stale interactions.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, `{"error":"too many events"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"variable": s.activeVar,
		"label":    s.label,
		"regions":  s.regions,
	})
}

func (s *Server) handleObservations(w http.ResponseWriter, _ *http.Request) {
	filtered := s.ctrl.Filtered()
	writeJSON(w, http.StatusOK, map[string]any{
		"count":        len(filtered),
		"observations": filtered,
	})
}

func (s *Server) handleSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"selected": s.ctrl.Selected()})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"variable":  s.activeVar,
		"summaries": s.ctrl.Summaries(s.activeVar),
		"text":      s.ctrl.SummaryText(s.activeVar, s.label),
	})
}

func (s *Server) handleMapClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Region string `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Region == "" {
		http.Error(w, `{"error":"region is required"}`, http.StatusBadRequest)
		return
	}
	snap := s.ctrl.ToggleRegion(req.Region)
	writeSnapshot(w, snap)
}

func (s *Server) handleBrush(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Indices []int `json:"indices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	snap := s.ctrl.BrushPoints(req.Indices)
	writeSnapshot(w, snap)
}

func (s *Server) handlePointClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		http.Error(w, `{"error":"index is required"}`, http.StatusBadRequest)
		return
	}
	// A stale index is ignored by the controller, not an error here.
	snap := s.ctrl.ClickPoint(*req.Index)
	writeSnapshot(w, snap)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctrl.Reset()
	writeSnapshot(w, snap)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientID := uuid.New().String()
	ch := s.broker.Add(clientID)
	defer s.broker.Remove(clientID)

	// Send the current state immediately so a new view starts consistent.
	snap := s.ctrl.Snapshot()
	if payload, err := json.Marshal(changeEvent{
		Selected:  snap.Selected,
		Filtered:  len(snap.Filtered),
		Summaries: s.ctrl.Summaries(s.activeVar),
	}); err == nil {
		fmt.Fprintf(w, "event: selection\ndata: %s\n\n", payload)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: selection\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snap selection.Snapshot) {
	writeJSON(w, http.StatusOK, map[string]any{
		"selected": snap.Selected,
		"filtered": len(snap.Filtered),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write json response", zap.Error(err))
	}
}
