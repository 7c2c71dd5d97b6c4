// Package api expose le flux de transcription en HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

// Processor : ce dont le serveur a besoin de l'application.
type Processor interface {
	Process(ctx context.Context, req app.Request) (*model.Result, error)
}

// NewRouter monte les routes. defaults fournit langue/options quand la requête ne les précise pas.
// g nil => pas de route /metrics.
func NewRouter(p Processor, defaults app.Request, g prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(requestLogger)

	h := &transcriptHandler{proc: p, defaults: defaults}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if g != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
	r.Get("/transcripts/{videoID}", h.Get)

	return r
}

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		// /healthz n'est loggé qu'en cas d'erreur
		if r.URL.Path == "/healthz" && wrapped.statusCode < 400 {
			return
		}
		log := logging.WithComponent("http")
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}
