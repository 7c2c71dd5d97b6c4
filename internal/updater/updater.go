package updater

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/transcripter/internal/fetch"
)

// LatestReleaseURL : API GitHub de la dernière release yt-dlp.
var LatestReleaseURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

// Release : ce que `version` affiche de la dernière release.
type Release struct {
	Tag      string
	Page     string
	Download string // asset de la plateforme, vide si absent
}

// Check compare la version locale de yt-dlp à la dernière release.
type Check struct {
	Current  string
	Latest   Release
	Outdated bool
}

// Link renvoie l'asset de la plateforme, ou la page de la release à défaut.
func (c Check) Link() string {
	if c.Latest.Download != "" {
		return c.Latest.Download
	}
	return c.Latest.Page
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// assetName : nom du binaire publié par yt-dlp pour goos.
func assetName(goos string) string {
	switch goos {
	case "windows":
		return "yt-dlp.exe"
	case "darwin":
		return "yt-dlp_macos"
	default:
		return "yt-dlp"
	}
}

// LatestRelease interroge GitHub et retient l'asset de goos.
func LatestRelease(ctx context.Context, goos string) (Release, error) {
	raw, err := fetch.FetchJSON[githubRelease](ctx, LatestReleaseURL, 0, 0)
	if err != nil {
		return Release{}, fmt.Errorf("release yt-dlp : %w", err)
	}
	if strings.TrimSpace(raw.TagName) == "" {
		return Release{}, fmt.Errorf("release yt-dlp : tag vide")
	}

	rel := Release{Tag: raw.TagName, Page: raw.HTMLURL}
	want := assetName(goos)
	for _, a := range raw.Assets {
		if a.Name == want {
			rel.Download = a.BrowserDownloadURL
			break
		}
	}
	return rel, nil
}

// CheckYtDlp compare localVer à la dernière release pour goos.
func CheckYtDlp(ctx context.Context, localVer, goos string) (Check, error) {
	rel, err := LatestRelease(ctx, goos)
	if err != nil {
		return Check{}, err
	}
	cur := strings.TrimSpace(localVer)
	return Check{
		Current:  cur,
		Latest:   rel,
		Outdated: CompareVersions(cur, rel.Tag) < 0,
	}, nil
}

// CompareVersions compare deux versions yt-dlp (AAAA.MM.JJ[.build]) segment par segment.
// Un préfixe "v" et les zéros de tête sont ignorés ; un segment absent vaut 0.
// Les segments non numériques sont comparés comme des chaînes.
func CompareVersions(a, b string) int {
	sa, sb := versionSegments(a), versionSegments(b)
	for i := 0; i < max(len(sa), len(sb)); i++ {
		x, y := "0", "0"
		if i < len(sa) {
			x = sa[i]
		}
		if i < len(sb) {
			y = sb[i]
		}
		if c := compareSegment(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func versionSegments(v string) []string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil
	}
	return strings.Split(v, ".")
}

func compareSegment(x, y string) int {
	nx, errx := strconv.Atoi(x)
	ny, erry := strconv.Atoi(y)
	if errx == nil && erry == nil {
		switch {
		case nx < ny:
			return -1
		case nx > ny:
			return 1
		}
		return 0
	}
	return strings.Compare(x, y)
}
