// Package api serves the field transform over HTTP. Every endpoint is a
// read-only GET; scenario state travels in the same query encoding the
// CLI and TUI persist.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/san-kum/fieldboost/internal/export"
	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/sweep"
	"github.com/san-kum/fieldboost/internal/viz"
)

// sweep parameters share the query string with state fields
const (
	paramOver  = "over"
	paramFrom  = "from"
	paramTo    = "to"
	paramSteps = "steps"

	defaultSweepSteps = 50
	maxSweepStep      = 1000
)

// Server answers scenario queries.
type Server struct {
	Base    state.State  // defaults for fields a query leaves out
	Policy  state.Policy // clamp applied to every decoded state
	DB      *persist.DB  // optional; nil disables /scenarios
	Theme   viz.Theme
	Workers int
}

// Response is the body of the scenario endpoints.
type Response struct {
	Report   export.Report `json:"report"`
	Warnings []string      `json:"warnings,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/quantities", s.handleQuantities)
	mux.HandleFunc("GET /api/v1/vectors.svg", s.handleVectorsSVG)
	mux.HandleFunc("GET /api/v1/sweep", s.handleSweep)
	mux.HandleFunc("GET /api/v1/presets", s.handlePresets)
	mux.HandleFunc("GET /api/v1/presets/{name}", s.handlePreset)
	mux.HandleFunc("GET /api/v1/scenarios", s.handleScenarios)
	mux.HandleFunc("GET /api/v1/scenarios/{id}", s.handleScenario)
	return logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		slog.Info("HTTP API starting", "addr", addr, "scenarios", s.DB != nil)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// decode overlays the request query on base and clamps the result.
func (s *Server) decode(r *http.Request, base state.State) (state.State, []string) {
	st, warnings := persist.Decode(r.URL.Query(), base)
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		slog.Warn("skipping query field", "field", w.Field, "value", w.Value, "error", w.Err)
		msgs[i] = w.Error()
	}
	return s.Policy.Apply(st), msgs
}

func (s *Server) respond(w http.ResponseWriter, st state.State, warnings []string) {
	writeJSON(w, http.StatusOK, Response{Report: export.NewReport(st, st.Quantities()), Warnings: warnings})
}

func (s *Server) handleQuantities(w http.ResponseWriter, r *http.Request) {
	st, warnings := s.decode(r, s.Base)
	s.respond(w, st, warnings)
}

func (s *Server) handleVectorsSVG(w http.ResponseWriter, r *http.Request) {
	st, _ := s.decode(r, s.Base)
	size := 480
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 64 || n > 4096 {
			writeError(w, http.StatusBadRequest, "size must be an integer in [64, 4096]")
			return
		}
		size = n
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(export.VectorsSVG(st, st.Quantities(), size, s.Theme)))
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := sweep.Spec{Over: q.Get(paramOver), Workers: s.Workers, Policy: s.Policy}
	if spec.Over == "" {
		spec.Over = "speed"
	}
	var err error
	if spec.From, err = floatParam(q.Get(paramFrom), 0); err != nil {
		writeError(w, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	if spec.To, err = floatParam(q.Get(paramTo), 0.99); err != nil {
		writeError(w, http.StatusBadRequest, "to: "+err.Error())
		return
	}
	spec.Steps = defaultSweepSteps
	if raw := q.Get(paramSteps); raw != "" {
		if spec.Steps, err = strconv.Atoi(raw); err != nil || spec.Steps > maxSweepStep {
			writeError(w, http.StatusBadRequest, "steps must be an integer up to "+strconv.Itoa(maxSweepStep))
			return
		}
	}

	st, _ := s.decode(r, s.Base)
	res, err := sweep.Run(r.Context(), st.Input(), spec)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sweep.ErrInvalidSweep) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, export.NewSweepDocument(st.Input(), res))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, input.PresetNames())
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	base, err := input.ApplyPreset(s.Base, r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	st, warnings := s.decode(r, base)
	s.respond(w, st, warnings)
}

type scenarioSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusNotFound, "scenario database not configured")
		return
	}
	list, err := s.DB.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]scenarioSummary, len(list))
	for i, sc := range list {
		out[i] = scenarioSummary{ID: sc.ID, Name: sc.Name, Query: sc.Query, UpdatedAt: sc.UpdatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusNotFound, "scenario database not configured")
		return
	}
	sc, err := s.DB.Load(r.Context(), r.PathValue("id"))
	if errors.Is(err, persist.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	base, warnings, err := sc.State(s.Base)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	st, more := s.decode(r, base)
	msgs := make([]string, 0, len(warnings)+len(more))
	for _, fw := range warnings {
		msgs = append(msgs, fw.Error())
	}
	s.respond(w, st, append(msgs, more...))
}

func floatParam(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := export.WriteJSON(w, data); err != nil {
		slog.Error("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
