package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{Level: "debug", Format: "json"}, &buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := WithVideo("app", "abc")
	l.Debug().Msg("hello")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("output is not json: %q (%v)", buf.String(), err)
	}
	if rec["component"] != "app" || rec["video"] != "abc" || rec["message"] != "hello" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestInitWriterLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{Level: "warn", Format: "json"}, &buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := WithComponent("x")
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}

func TestAutoFormatNonTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{Level: "info", Format: "auto"}, &buf)

	l := WithComponent("x")
	l.Info().Msg("m")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("auto format on buffer should be json, got %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	InitWriter(Config{Level: "loud", Format: "json"}, &bytes.Buffer{})
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", zerolog.GlobalLevel())
	}
}
