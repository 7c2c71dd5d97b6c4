package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/transcripter/pkg/model"
	"golang.org/x/text/language"
)

// Validate contrôle les valeurs qui ne peuvent pas être corrigées par la normalisation.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	if _, perr := model.ParseOutputFormat(string(c.OutputFormat)); perr != nil {
		return warnings, fmt.Errorf("output_format : %w", perr)
	}

	switch c.Auth.Method {
	case "none":
	case "cookies":
		if strings.TrimSpace(c.Auth.CookieString) == "" && strings.TrimSpace(c.Auth.CookieFile) == "" {
			return warnings, fmt.Errorf("auth.method=cookies sans cookie_string ni cookie_file")
		}
	default:
		return warnings, fmt.Errorf("auth.method inconnue : %q (attendu none|cookies)", c.Auth.Method)
	}

	// un code non BCP 47 reste utilisable : les pistes yt-dlp ne sont pas toujours normalisées
	if w := LanguageWarning(c.Language); w != "" {
		warnings = append(warnings, w)
	}

	ytWarnings, yerr := c.ValidateYtDlpPresence()
	warnings = append(warnings, ytWarnings...)
	return warnings, yerr
}

// LanguageWarning retourne un message si lang n'est pas une étiquette BCP 47 reconnue.
// Les variantes à soulignement (en_US) sont acceptées.
func LanguageWarning(lang string) string {
	tag := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if _, err := language.Parse(tag); err != nil {
		return fmt.Sprintf("langue %q non reconnue (BCP 47) : %v", lang, err)
	}
	return ""
}

// ValidateYtDlpPresence vérifie de manière statique que si un chemin explicite est configuré,
// le fichier existe et que le répertoire parent est accessible.
// Un simple nom (recherche dans PATH) n'est pas contrôlé ici.
func (c *Config) ValidateYtDlpPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	c.ResolveYtDlpPath()

	if c.YtDlp.AutoInstall || strings.TrimSpace(c.YtDlp.Path) == "" {
		return nil, nil
	}

	p := c.YtDlp.ResolvedPath
	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin yt-dlp n'existe pas : %s", parent))
			return warnings, nil
		}
		return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin yt-dlp n'est pas un répertoire : %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("yt-dlp introuvable à l'emplacement configuré : %s", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour yt-dlp est un répertoire : %s", p)
	}
	return warnings, nil
}
