package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/patrickprogramme/transcripter/internal/cache"
	"github.com/patrickprogramme/transcripter/internal/config"
	"github.com/patrickprogramme/transcripter/internal/metrics"
	"github.com/patrickprogramme/transcripter/internal/subtitles"
	"github.com/patrickprogramme/transcripter/internal/yt"
	"github.com/patrickprogramme/transcripter/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const sampleVTT = "WEBVTT\n\n00:00:01.000 --> 00:00:03.500\nHello <c>world</c>\n\n00:00:04.000 --> 00:00:05.000\nFoo\n"

const metaJSON = `{
  "id": "abc123",
  "title": "A video",
  "duration": 42,
  "uploader": "someone",
  "upload_date": "20240101",
  "view_count": 7,
  "subtitles": {"en": [{"ext": "vtt", "url": "https://example.test/en.vtt"}]},
  "automatic_captions": {"fr": [{"ext": "vtt", "url": "https://example.test/fr.vtt"}]}
}`

// fakeYT implémente yt.Interface pour les tests.
type fakeYT struct {
	mu          sync.Mutex
	metaJSON    string
	extractErr  error
	subtitle    string
	downloadErr error
	requests    []yt.SubtitleRequest
	extracted   []string
}

func (f *fakeYT) CheckBinary() error { return nil }
func (f *fakeYT) GetVersion(ctx context.Context) (string, error) { return "2025.01.01", nil }

func (f *fakeYT) ExtractRaw(ctx context.Context, url, cookieFile string) (*yt.ExtractedRaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extracted = append(f.extracted, url)
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return &yt.ExtractedRaw{JSON: []byte(f.metaJSON)}, nil
}

func (f *fakeYT) DownloadSubtitle(ctx context.Context, req yt.SubtitleRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return []byte(f.subtitle), nil
}

func newFake() *fakeYT {
	return &fakeYT{metaJSON: metaJSON, subtitle: sampleVTT}
}

func TestProcessStructured(t *testing.T) {
	fake := newFake()
	a := New(config.Default(), fake)

	res, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "en", PreferManual: true})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.YoutubeID != "abc123" || res.SubtitleType != "manual" || res.Language != "en" {
		t.Errorf("unexpected result header: %+v", res)
	}
	want := []model.Cue{
		{Text: "Hello world", Start: 1, Duration: 2.5},
		{Text: "Foo", Start: 4, Duration: 1},
	}
	if len(res.Transcript) != len(want) {
		t.Fatalf("cues = %+v", res.Transcript)
	}
	for i := range want {
		if res.Transcript[i] != want[i] {
			t.Errorf("cue %d = %+v, want %+v", i, res.Transcript[i], want[i])
		}
	}
	if res.TranscriptText != nil || res.Metadata != nil {
		t.Errorf("structured output should not carry text or metadata")
	}

	if fake.extracted[0] != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("url = %q", fake.extracted[0])
	}
	got := fake.requests[0]
	if got.Lang != "en" || got.Source != model.SubSourceManual || got.RequestedLang != "en" {
		t.Errorf("download request = %+v", got)
	}
}

func TestProcessAutomaticFallbackAndFormats(t *testing.T) {
	a := New(config.Default(), newFake())

	res, err := a.Process(context.Background(), Request{
		VideoID:         "https://youtu.be/abc123",
		Language:        "fr",
		PreferManual:    true,
		OutputFormat:    model.OutputBoth,
		IncludeMetadata: true,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.SubtitleType != "auto-generated" {
		t.Errorf("SubtitleType = %q", res.SubtitleType)
	}
	if res.TranscriptText == nil || *res.TranscriptText != "Hello world Foo" {
		t.Errorf("TranscriptText = %v", res.TranscriptText)
	}
	if len(res.Transcript) != 2 {
		t.Errorf("both format should keep cues")
	}
	if res.Metadata == nil || res.Metadata.Title != "A video" || res.Metadata.UploadDate != "20240101" {
		t.Errorf("Metadata = %+v", res.Metadata)
	}
}

func TestProcessPlainTextOnly(t *testing.T) {
	a := New(config.Default(), newFake())
	res, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "en", OutputFormat: model.OutputPlainText})
	if err != nil {
		t.Fatal(err)
	}
	if res.Transcript != nil {
		t.Errorf("plainText output should omit cues")
	}
	b, _ := json.Marshal(res)
	if strings.Contains(string(b), `"transcript"`) {
		t.Errorf("json = %s", b)
	}
}

func TestProcessStructuredKeepsEmptyTranscript(t *testing.T) {
	fake := newFake()
	fake.subtitle = "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<c></c>\n\n00:00:03.000 --> 00:00:04.000\n<i> </i>\n"
	a := New(config.Default(), fake)

	res, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "en", OutputFormat: model.OutputStructured})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transcript == nil || len(res.Transcript) != 0 {
		t.Fatalf("Transcript = %#v, want empty slice", res.Transcript)
	}
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"transcript":[]`) {
		t.Errorf("json = %s", b)
	}
}

func TestProcessErrors(t *testing.T) {
	a := New(config.Default(), newFake())

	if _, err := a.Process(context.Background(), Request{VideoID: "  "}); !errors.Is(err, ErrEmptyVideoID) {
		t.Errorf("empty id: err = %v", err)
	}

	_, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "de"})
	var nf *subtitles.NotFoundError
	if !errors.As(err, &nf) || nf.Lang != "de" {
		t.Errorf("missing language: err = %v", err)
	}

	fake := newFake()
	fake.extractErr = yt.ErrBinaryNotFound
	a = New(config.Default(), fake)
	if _, err := a.Process(context.Background(), Request{VideoID: "abc123"}); !errors.Is(err, yt.ErrBinaryNotFound) {
		t.Errorf("binary missing: err = %v", err)
	}
}

func TestProcessDirectDownloadFallback(t *testing.T) {
	fake := newFake()
	fake.downloadErr = yt.ErrSubtitleFileMissing

	var fetched []string
	a := New(config.Default(), fake, WithFetcher(func(ctx context.Context, url string) ([]byte, error) {
		fetched = append(fetched, url)
		return []byte(sampleVTT), nil
	}))

	res, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "en", PreferManual: true})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(fetched) != 1 || fetched[0] != "https://example.test/en.vtt" {
		t.Errorf("fetched = %v", fetched)
	}
	if len(res.Transcript) != 2 {
		t.Errorf("cues = %d", len(res.Transcript))
	}

	a = New(config.Default(), fake, WithFetcher(func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("offline")
	}))
	if _, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "en"}); !errors.Is(err, yt.ErrSubtitleFileMissing) {
		t.Errorf("failed fallback should surface the original error, got %v", err)
	}
}

func TestProcessUsesCache(t *testing.T) {
	store, err := cache.Open(context.Background(), filepath.Join(t.TempDir(), "c.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	fake := newFake()
	a := New(config.Default(), fake, WithCache(store), WithMetrics(m))

	req := Request{VideoID: "abc123", Language: "en", PreferManual: true}
	first, err := a.Process(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Process(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.extracted) != 1 {
		t.Errorf("yt-dlp called %d times, want 1", len(fake.extracted))
	}
	if len(second.Transcript) != len(first.Transcript) {
		t.Errorf("cached result differs")
	}
	if got := testutil.ToFloat64(m.CacheHits); got != 1 {
		t.Errorf("cache hits = %v", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(metrics.ResultOK)); got != 2 {
		t.Errorf("ok requests = %v", got)
	}
}

func TestProcessWithCookieString(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.Method = "cookies"
	cfg.Auth.CookieString = ".youtube.com\tTRUE\t/\tTRUE\t0\tSID\tabc"

	var seen string
	fake := &cookieSpy{fakeYT: newFake(), seen: &seen}
	a := New(cfg, fake)
	if _, err := a.Process(context.Background(), Request{VideoID: "abc123", Language: "en"}); err != nil {
		t.Fatal(err)
	}
	if seen == "" {
		t.Fatal("cookie file not passed to yt-dlp")
	}
	if _, err := os.Stat(seen); !os.IsNotExist(err) {
		t.Errorf("temporary cookie file not cleaned up")
	}
}

type cookieSpy struct {
	*fakeYT
	seen *string
}

func (c *cookieSpy) ExtractRaw(ctx context.Context, url, cookieFile string) (*yt.ExtractedRaw, error) {
	*c.seen = cookieFile
	if _, err := os.Stat(cookieFile); err != nil {
		return nil, err
	}
	return c.fakeYT.ExtractRaw(ctx, url, cookieFile)
}
