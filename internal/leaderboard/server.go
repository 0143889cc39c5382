// Package leaderboard serves the run history over a read-only JSON API.
package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/flappy3d/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// RunSource is the read side of the run history.
type RunSource interface {
	TopRuns(gameID string, limit int) ([]storage.RunRecord, error)
	RunByID(runID string) (*storage.RunRecord, error)
	Stats(gameID string) (*storage.GameStats, error)
}

// Run is the JSON form of a stored run.
type Run struct {
	Rank       int       `json:"rank,omitempty"`
	RunID      string    `json:"run_id"`
	Score      int       `json:"score"`
	Seed       int64     `json:"seed"`
	Difficulty string    `json:"difficulty"`
	Ticks      int       `json:"ticks"`
	Night      bool      `json:"night"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats is the JSON form of aggregated statistics.
type Stats struct {
	Game       string    `json:"game"`
	Runs       int       `json:"runs"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalTicks int64     `json:"total_ticks"`
	LastPlayed time.Time `json:"last_played,omitzero"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Handler exposes the leaderboard routes for one game.
type Handler struct {
	src    RunSource
	gameID string
	logger *log.Logger
}

// NewRouter builds the leaderboard router with middlewares and routes.
func NewRouter(src RunSource, gameID string, logger *log.Logger) chi.Router {
	h := &Handler{src: src, gameID: gameID, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(sub chi.Router) {
		h.Routes(sub)
	})

	return r
}

// Routes registers the versioned routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/scores", h.TopScores)
	r.Get("/scores/best", h.Best)
	r.Get("/runs/{runID}", h.RunByID)
	r.Get("/stats", h.Stats)
}

// TopScores returns the best runs, ranked. ?limit=N caps the list.
func (h *Handler) TopScores(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	runs, err := h.src.TopRuns(h.gameID, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]Run, 0, len(runs))
	for i, rec := range runs {
		run := toRun(rec)
		run.Rank = i + 1
		out = append(out, run)
	}
	h.writeJSON(w, http.StatusOK, out)
}

// Best returns the single best run, or 404 when there are none.
func (h *Handler) Best(w http.ResponseWriter, r *http.Request) {
	runs, err := h.src.TopRuns(h.gameID, 1)
	if err != nil {
		h.fail(w, err)
		return
	}
	if len(runs) == 0 {
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "no runs recorded"})
		return
	}

	best := toRun(runs[0])
	best.Rank = 1
	h.writeJSON(w, http.StatusOK, best)
}

// RunByID returns one run by its UUID.
func (h *Handler) RunByID(w http.ResponseWriter, r *http.Request) {
	rec, err := h.src.RunByID(chi.URLParam(r, "runID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if rec == nil || rec.GameID != h.gameID {
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "run not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, toRun(*rec))
}

// Stats returns aggregated statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.src.Stats(h.gameID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, Stats{
		Game:       st.GameID,
		Runs:       st.RunCount,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		TotalTicks: st.TotalTicks,
		LastPlayed: st.LastPlayed,
	})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("Leaderboard query failed", "error", err)
	h.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "storage unavailable"})
}

func toRun(r storage.RunRecord) Run {
	return Run{
		RunID:      r.RunID,
		Score:      r.Score,
		Seed:       r.Seed,
		Difficulty: r.Difficulty,
		Ticks:      r.Ticks,
		Night:      r.Night,
		CreatedAt:  r.CreatedAt,
	}
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Response encoding failed", "status", status, "error", err)
	}
}

// requestLogger logs every request once it has been served.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("Request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// Server is the leaderboard HTTP server.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, src RunSource, gameID string, logger *log.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(src, gameID, logger),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting leaderboard", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping leaderboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
