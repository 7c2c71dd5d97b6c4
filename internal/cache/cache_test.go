package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache", "t.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	key := Key("abc", "en", true, model.OutputStructured, false)
	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	in := &model.Result{
		YoutubeID:    "abc",
		SubtitleType: "manual",
		Language:     "en",
		Transcript:   []model.Cue{{Text: "Hello", Start: 1, Duration: 2.5}},
	}
	if err := s.Put(ctx, key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.YoutubeID != "abc" || len(got.Transcript) != 1 || got.Transcript[0].Duration != 2.5 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// autre option => autre clé
	if _, ok, _ := s.Get(ctx, Key("abc", "en", false, model.OutputStructured, false)); ok {
		t.Error("preferManual must be part of the key")
	}
}

func TestPutGetEmptyTranscript(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	key := Key("abc", "en", true, model.OutputStructured, false)

	if err := s.Put(ctx, key, &model.Result{YoutubeID: "abc", SubtitleType: "manual", Transcript: []model.Cue{}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Transcript == nil {
		t.Error("empty transcript came back as nil")
	}
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	key := Key("abc", "en", true, model.OutputStructured, false)

	_ = s.Put(ctx, key, &model.Result{YoutubeID: "abc", SubtitleType: "auto-generated"})
	_ = s.Put(ctx, key, &model.Result{YoutubeID: "abc", SubtitleType: "manual"})

	got, _, _ := s.Get(ctx, key)
	if got.SubtitleType != "manual" {
		t.Errorf("SubtitleType = %q, want manual", got.SubtitleType)
	}
}

func TestFailedResultsNotStored(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	key := Key("abc", "en", true, model.OutputStructured, false)

	if err := s.Put(ctx, key, &model.Result{Error: "boom"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Error("failed result was cached")
	}
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	_ = s.Put(ctx, "k", &model.Result{YoutubeID: "abc"})

	if n, err := s.Purge(ctx, time.Hour); err != nil || n != 0 {
		t.Errorf("fresh entry purged: n=%d err=%v", n, err)
	}
	if n, err := s.Purge(ctx, -time.Hour); err != nil || n != 1 {
		t.Errorf("Purge(-1h): n=%d err=%v", n, err)
	}
}
