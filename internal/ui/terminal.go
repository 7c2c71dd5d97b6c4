package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patrickprogramme/transcripter/internal/clipboard"
	"github.com/patrickprogramme/transcripter/internal/yt"
)

// ErrNoInput : l'entrée standard s'est fermée avant qu'une vidéo valide soit saisie.
var ErrNoInput = errors.New("no video provided")

type terminalUI struct {
	reader    *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	readClip  func() (string, error)
	useClip   bool
	promptOut bool
}

// NewTerminal : stdin/stdout/stderr et le presse-papier système.
// interactive=false désactive le prompt (stdin n'est pas un terminal).
func NewTerminal(interactive bool) Interface {
	return newTerminal(os.Stdin, os.Stdout, os.Stderr, clipboard.ReadAll, interactive)
}

func newTerminal(in io.Reader, out, errOut io.Writer, readClip func() (string, error), interactive bool) *terminalUI {
	return &terminalUI{
		reader:    bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		readClip:  readClip,
		useClip:   readClip != nil,
		promptOut: interactive,
	}
}

func (t *terminalUI) GetVideo(ctx context.Context) (string, error) {
	// 1) clipboard
	if t.useClip {
		if clip, err := t.readClip(); err == nil && yt.IsVideoInput(clip) {
			clip = strings.TrimSpace(clip)
			t.PrintError(ctx, fmt.Sprintf("Utilisation de la vidéo depuis le presse-papier: %s", clip))
			return clip, nil
		}
	}
	if !t.promptOut {
		return "", ErrNoInput
	}

	// 2) prompt
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(t.errOut, "Entrez l'URL ou l'identifiant d'une vidéo Youtube: ")
		input, err := t.reader.ReadString('\n')
		v := strings.TrimSpace(input)
		if yt.IsVideoInput(v) {
			return v, nil
		}
		if err != nil {
			return "", ErrNoInput
		}
		fmt.Fprintln(t.errOut, "❌ Entrée invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

// PrintError écrit sur stderr : stdout reste réservé au JSON.
func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}
