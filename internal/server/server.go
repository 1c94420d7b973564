// Package server exposes name evaluation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/evaluator"
	"github.com/sells-group/namecast/internal/metrics"
	"github.com/sells-group/namecast/internal/model"
	"github.com/sells-group/namecast/internal/store"
)

const maxBodyBytes = 1 << 20

// Evaluator runs evaluations, comparisons and naming workflows.
type Evaluator interface {
	EvaluateRequest(ctx context.Context, req evaluator.Request) (*model.EvaluationResult, error)
	Compare(ctx context.Context, names []string, mission string) (*model.Comparison, error)
	Workflow(ctx context.Context, req evaluator.WorkflowRequest) (*model.WorkflowResult, error)
}

// Server holds the HTTP handlers. A nil store disables persistence and the
// history routes.
type Server struct {
	eval   Evaluator
	finder evaluator.SimilarFinder
	store  store.Store
}

// New creates a Server.
func New(eval Evaluator, finder evaluator.SimilarFinder, st store.Store) *Server {
	return &Server{eval: eval, finder: finder, store: st}
}

// Routes returns the router with every route mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Evaluation-ID"},
		MaxAge:         300,
	}))
	r.Use(countRequests)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/evaluate", s.evaluate)
	r.Post("/compare", s.compare)
	r.Post("/workflow", s.workflow)
	r.Get("/similar/{name}", s.similar)
	r.Get("/evaluations", s.listEvaluations)
	r.Get("/evaluations/{id}", s.getEvaluation)
	return r
}

// countRequests records every response by route pattern and status.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

type evaluateRequest struct {
	Name    string `json:"name"`
	Mission string `json:"mission"`
	Domain  string `json:"domain"`
}

type compareRequest struct {
	Names   []string `json:"names"`
	Mission string   `json:"mission"`
}

type workflowRequest struct {
	ProjectDescription string   `json:"project_description"`
	NameIdeas          []string `json:"name_ideas"`
	GenerateCount      int      `json:"generate_count"`
	MaxToEvaluate      int      `json:"max_to_evaluate"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.eval.EvaluateRequest(r.Context(), evaluator.Request{
		Name:          req.Name,
		Mission:       req.Mission,
		PlannedDomain: req.Domain,
	})
	if err != nil {
		writeEvalError(w, err)
		return
	}

	if id := s.save(r.Context(), res); id != "" {
		w.Header().Set("X-Evaluation-ID", id)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cmp, err := s.eval.Compare(r.Context(), req.Names, req.Mission)
	if err != nil {
		writeEvalError(w, err)
		return
	}
	for i := range cmp.Results {
		s.save(r.Context(), &cmp.Results[i])
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) workflow(w http.ResponseWriter, r *http.Request) {
	var req workflowRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GenerateCount < 0 || req.MaxToEvaluate < 0 {
		writeError(w, http.StatusBadRequest, "generate_count and max_to_evaluate must be non-negative")
		return
	}

	res, err := s.eval.Workflow(r.Context(), evaluator.WorkflowRequest{
		Description:   req.ProjectDescription,
		Ideas:         req.NameIdeas,
		GenerateCount: req.GenerateCount,
		MaxToEvaluate: req.MaxToEvaluate,
	})
	if err != nil {
		writeEvalError(w, err)
		return
	}
	for _, c := range res.Candidates {
		if c.Evaluation != nil {
			s.save(r.Context(), c.Evaluation)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) similar(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := evaluator.ValidateName(name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.finder.Find(r.Context(), name))
}

func (s *Server) listEvaluations(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "evaluation history is disabled")
		return
	}

	filter := store.ListFilter{Name: r.URL.Query().Get("name")}
	for key, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, key+" must be a non-negative integer")
			return
		}
		*dst = n
	}

	recs, err := s.store.ListEvaluations(r.Context(), filter)
	if err != nil {
		zap.L().Error("server: list evaluations failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list evaluations")
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"evaluations": recs})
}

func (s *Server) getEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "evaluation history is disabled")
		return
	}

	rec, err := s.store.GetEvaluation(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "evaluation not found")
		return
	}
	if err != nil {
		zap.L().Error("server: get evaluation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load evaluation")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// save persists res when a store is configured. Failures are logged and
// yield an empty id.
func (s *Server) save(ctx context.Context, res *model.EvaluationResult) string {
	if s.store == nil {
		return ""
	}
	id, err := s.store.SaveEvaluation(ctx, res)
	if err != nil {
		zap.L().Warn("server: save evaluation failed", zap.String("name", res.Name), zap.Error(err))
		return ""
	}
	return id
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeEvalError(w http.ResponseWriter, err error) {
	if evaluator.IsInputError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	zap.L().Error("server: evaluation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "evaluation failed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: write response", zap.Error(err))
	}
}
