package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"brainy-ai/api/internal/solve"
)

type Handle struct {
	solver         *solve.Solver
	defaultTimeout time.Duration
	maxBodyBytes   int64
}

func New(solver *solve.Solver, defaultTimeout time.Duration, maxBodyBytes int64) *Handle {
	return &Handle{
		solver:         solver,
		defaultTimeout: defaultTimeout,
		maxBodyBytes:   maxBodyBytes,
	}
}

// Register mounts every route on mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/solve", h.Solve)
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
