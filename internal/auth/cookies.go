// Package auth prépare le fichier de cookies passé à yt-dlp (--cookies).
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const netscapeHeader = "# Netscape HTTP Cookie File"

var ErrCookieFileMissing = errors.New("cookie file not found")

type Options struct {
	Method       string // none | cookies
	CookieString string
	CookieFile   string
}

// Cookies : fichier à passer à yt-dlp. Cleanup supprime le fichier temporaire
// éventuellement créé ; un fichier fourni par l'utilisateur n'est jamais supprimé.
type Cookies struct {
	Path      string
	temporary bool
}

func (c *Cookies) File() string {
	if c == nil {
		return ""
	}
	return c.Path
}

func (c *Cookies) Cleanup() {
	if c == nil || !c.temporary || c.Path == "" {
		return
	}
	_ = os.Remove(c.Path)
}

// Prepare retourne nil, nil quand aucune authentification n'est demandée.
// Avec une chaîne de cookies, un fichier temporaire est écrit (en-tête Netscape ajouté si absent).
func Prepare(opts Options) (*Cookies, error) {
	method := strings.ToLower(strings.TrimSpace(opts.Method))
	if method == "" || method == "none" {
		return nil, nil
	}
	if method != "cookies" {
		return nil, fmt.Errorf("auth method %q not supported", opts.Method)
	}

	if s := strings.TrimSpace(opts.CookieString); s != "" {
		return writeTemp(s)
	}

	if p := strings.TrimSpace(opts.CookieFile); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCookieFileMissing, p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrCookieFileMissing, p)
		}
		return &Cookies{Path: p}, nil
	}

	return nil, errors.New("auth method cookies requires a cookie string or a cookie file")
}

func writeTemp(content string) (*Cookies, error) {
	f, err := os.CreateTemp("", "transcripter-cookies-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create cookie file: %w", err)
	}
	path := f.Name()

	if !strings.HasPrefix(content, netscapeHeader) {
		content = netscapeHeader + "\n" + content
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write cookie file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close cookie file: %w", err)
	}
	// contient des secrets de session
	_ = os.Chmod(path, 0o600)

	return &Cookies{Path: path, temporary: true}, nil
}
