// Package health provides a lightweight HTTP server for container health checks.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// DatabasePinger is satisfied by the database wrapper
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// DatabaseCheck adapts a pinger into a readiness check
func DatabaseCheck(db DatabasePinger) Check {
	return func(ctx context.Context) error {
		return db.Ping(ctx)
	}
}

// Server answers liveness and readiness probes. Liveness is unconditional;
// readiness runs every registered check plus the manual ready flag.
type Server struct {
	serviceName string
	version     string
	port        int
	logger      *logrus.Logger
	server      *http.Server

	mu     sync.RWMutex
	ready  bool
	checks map[string]Check
}

// NewServer creates a health server. Checks are registered before Start.
func NewServer(serviceName, version string, port int, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		serviceName: serviceName,
		version:     version,
		port:        port,
		logger:      logger,
		checks:      make(map[string]Check),
	}
}

// Register adds a named readiness check
func (s *Server) Register(name string, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

// SetReady flips the manual readiness flag. The worker sets it once its
// scheduler is running and clears it during shutdown.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start serves probes in the background until ctx is cancelled
func (s *Server) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleLiveness)
	mux.HandleFunc("/readyz", s.handleReadiness)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithFields(logrus.Fields{
			"port":    s.port,
			"service": s.serviceName,
		}).Info("Health server starting")

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("Health server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()
}

// Shutdown stops the probe server gracefully
func (s *Server) Shutdown() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.WithError(err).Warn("Health server shutdown error")
	}
}

type probeResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, probeResponse{
		Status:  "ok",
		Service: s.serviceName,
		Version: s.version,
	})
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready := s.ready
	checks := make(map[string]Check, len(s.checks))
	for name, check := range s.checks {
		checks[name] = check
	}
	s.mu.RUnlock()

	results := make(map[string]string, len(checks)+1)
	healthy := ready
	if ready {
		results["service"] = "ok"
	} else {
		results["service"] = "not_ready"
	}

	for name, check := range checks {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		err := check(ctx)
		cancel()
		if err != nil {
			healthy = false
			results[name] = fmt.Sprintf("error: %v", err)
			continue
		}
		results[name] = "ok"
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}
	writeJSON(w, status, probeResponse{
		Status:  state,
		Service: s.serviceName,
		Checks:  results,
	})
}

func writeJSON(w http.ResponseWriter, status int, body probeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
