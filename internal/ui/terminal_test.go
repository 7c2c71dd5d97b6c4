package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGetVideoFromClipboard(t *testing.T) {
	var errOut bytes.Buffer
	term := newTerminal(strings.NewReader(""), &bytes.Buffer{}, &errOut,
		func() (string, error) { return " https://youtu.be/dQw4w9WgXcQ\n", nil }, true)

	got, err := term.GetVideo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("got %q", got)
	}
}

func TestGetVideoPromptRetries(t *testing.T) {
	var errOut bytes.Buffer
	term := newTerminal(strings.NewReader("not a video\ndQw4w9WgXcQ\n"), &bytes.Buffer{}, &errOut,
		func() (string, error) { return "random text", nil }, true)

	got, err := term.GetVideo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "dQw4w9WgXcQ" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(errOut.String(), "invalide") {
		t.Errorf("invalid input not reported: %q", errOut.String())
	}
}

func TestGetVideoEOF(t *testing.T) {
	term := newTerminal(strings.NewReader("nope"), &bytes.Buffer{}, &bytes.Buffer{}, nil, true)
	if _, err := term.GetVideo(context.Background()); !errors.Is(err, ErrNoInput) {
		t.Errorf("err = %v, want ErrNoInput", err)
	}
}

func TestGetVideoNonInteractive(t *testing.T) {
	term := newTerminal(strings.NewReader("dQw4w9WgXcQ\n"), &bytes.Buffer{}, &bytes.Buffer{},
		func() (string, error) { return "", errors.New("no clipboard") }, false)
	if _, err := term.GetVideo(context.Background()); !errors.Is(err, ErrNoInput) {
		t.Errorf("err = %v, want ErrNoInput", err)
	}
}
