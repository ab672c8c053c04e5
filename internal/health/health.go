// Package health reports bridge liveness and readiness over HTTP and over the
// standard gRPC health protocol.
//
// HTTP endpoints:
//
//   - /healthz: liveness; 200 while the process serves HTTP.
//   - /readyz: readiness; 200 only when every [Checker] passes, which for
//     the bridge means the device worker is ready and the robot connected.
//
// [Handler.Watch] mirrors the same verdict into a grpc health server so that
// gRPC clients and load balancers see the identical state.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 5 * time.Second

// Checker is a named readiness probe. Check returns nil when healthy.
type Checker struct {
	// Name is the key in the JSON response (e.g. "device_worker").
	Name string

	// Check probes the dependency. It must respect context cancellation and
	// must not call into the device library.
	Check func(ctx context.Context) error
}

type result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler evaluates a fixed list of checkers. It is safe for concurrent use.
type Handler struct {
	checkers []Checker
}

// New creates a [Handler] for the given checkers, evaluated in order.
func New(checkers ...Checker) *Handler {
	c := make([]Checker, len(checkers))
	copy(c, checkers)
	return &Handler{checkers: c}
}

// Evaluate runs every checker and reports the per-check outcome and whether
// all passed.
func (h *Handler) Evaluate(ctx context.Context) (map[string]string, bool) {
	checks := make(map[string]string, len(h.checkers))
	allOK := true
	for _, c := range h.checkers {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := c.Check(cctx)
		cancel()

		if err != nil {
			checks[c.Name] = "fail: " + err.Error()
			allOK = false
		} else {
			checks[c.Name] = "ok"
		}
	}
	return checks, allOK
}

// Healthz always answers 200.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, result{Status: "ok"})
}

// Readyz answers 200 when every checker passes and 503 otherwise.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks, ok := h.Evaluate(r.Context())
	res := result{Status: "ok", Checks: checks}
	status := http.StatusOK
	if !ok {
		res.Status = "fail"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, res)
}

// Register adds the /healthz and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Watch evaluates the checkers every interval and publishes the verdict to
// srv for the overall server ("") and for each named service. It returns
// when ctx ends, after marking everything NOT_SERVING.
func (h *Handler) Watch(ctx context.Context, srv *grpchealth.Server, interval time.Duration, services ...string) {
	names := append([]string{""}, services...)
	last := healthpb.HealthCheckResponse_UNKNOWN

	publish := func(st healthpb.HealthCheckResponse_ServingStatus) {
		for _, n := range names {
			srv.SetServingStatus(n, st)
		}
	}
	update := func() {
		checks, ok := h.Evaluate(ctx)
		st := healthpb.HealthCheckResponse_SERVING
		if !ok {
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if st != last {
			slog.Info("readiness changed", "status", st.String(), "checks", checks)
			last = st
		}
		publish(st)
	}

	update()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			publish(healthpb.HealthCheckResponse_NOT_SERVING)
			return
		case <-ticker.C:
			update()
		}
	}
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("health: write response", "err", err)
	}
}
