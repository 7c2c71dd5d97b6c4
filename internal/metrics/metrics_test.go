package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RequestsTotal.WithLabelValues(ResultOK).Inc()
	m.RequestsTotal.WithLabelValues(ResultOK).Inc()
	m.CuesParsed.Add(3)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(ResultOK)); got != 2 {
		t.Errorf("requests_total{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CuesParsed); got != 3 {
		t.Errorf("cues_parsed_total = %v, want 3", got)
	}

	// deux instances sur deux registres distincts : pas de conflit
	_ = New(prometheus.NewRegistry())
	_ = New(nil)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.CacheHits.Inc()

	path := filepath.Join(t.TempDir(), "transcripter.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "transcripter_cache_hits_total 1") {
		t.Errorf("textfile missing counter:\n%s", b)
	}

	if err := WriteTextfile("", reg); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}
