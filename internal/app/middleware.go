package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/rest"
	log "github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Recover from handler panics with a 500 envelope
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Errorf("panic serving %s %s: %v", req.Method, req.URL.Path, p)
					rest.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
				}
			}()
			next.ServeHTTP(w, req)
		})
	})

	// Allow the configured frontend origin
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if cfg.Host != "" && req.Header.Get("Origin") == cfg.Host {
				w.Header().Set("Access-Control-Allow-Origin", cfg.Host)
				w.Header().Set("Vary", "Origin")
			}
			next.ServeHTTP(w, req)
		})
	})

	// Request logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := deps.Clock.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, req)
			log.WithFields(log.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   recorder.status,
				"duration": deps.Clock.Now().Sub(start).Round(time.Microsecond),
			}).Debug("Handled request")
		})
	})
}
