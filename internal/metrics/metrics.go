// Package metrics expose les compteurs Prometheus de l'acquisition de transcriptions.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "transcripter"

// Metrics regroupe les métriques du processus.
type Metrics struct {
	// Requêtes
	RequestsTotal   *prometheus.CounterVec // label result: ok | not_found | error
	RequestDuration prometheus.Histogram

	// Sélection
	SelectedTracks *prometheus.CounterVec // label source: manual | automatic

	// Parsing
	CuesParsed         prometheus.Counter
	CuesDropped        prometheus.Counter
	MalformedTimecodes prometheus.Counter

	// Cache
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Direct HTTP fallback
	FallbackDownloads *prometheus.CounterVec // label result: ok | error
}

// New crée et enregistre les métriques dans reg.
// reg nil => registre privé (rien n'est exposé).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Transcript requests by outcome",
		}, []string{"result"}),
		RequestDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "End-to-end duration of a transcript request",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
		SelectedTracks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selected_tracks_total",
			Help:      "Tracks chosen by the selector, by source",
		}, []string{"source"}),
		CuesParsed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cues_parsed_total",
			Help:      "Cues kept after parsing",
		}),
		CuesDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cues_dropped_total",
			Help:      "Cues dropped because their text was empty after markup stripping",
		}),
		MalformedTimecodes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_timecodes_total",
			Help:      "Timing lines whose timecodes were repaired by lenient parsing",
		}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Results served from the local cache",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache lookups that required a fetch",
		}),
		FallbackDownloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_downloads_total",
			Help:      "Subtitle files fetched directly over HTTP after yt-dlp produced none",
		}, []string{"result"}),
	}
}

// Résultats possibles d'une requête.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// WriteTextfile écrit le contenu de g au format texte (collecteur textfile de node_exporter).
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
