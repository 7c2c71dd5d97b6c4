package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/patrickprogramme/transcripter/internal/bootstrap"
	"github.com/patrickprogramme/transcripter/pkg/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 2

// DefaultPath : fichier lu quand aucun --config n'est fourni.
const DefaultPath = "transcripter.yaml"

type AuthConfig struct {
	Method       string `yaml:"method" toml:"method"` // none | cookies
	CookieString string `yaml:"cookie_string" toml:"cookie_string"`
	CookieFile   string `yaml:"cookie_file" toml:"cookie_file"`
}

type YtDlpConfig struct {
	Name            string `yaml:"name" toml:"name"`
	Path            string `yaml:"path" toml:"path"`
	ShowWarnings    bool   `yaml:"show_warnings" toml:"show_warnings"`
	AutoUpdateCheck bool   `yaml:"auto_update_check" toml:"auto_update_check"`
	AutoInstall     bool   `yaml:"auto_install" toml:"auto_install"`

	// ResolvedPath contient le chemin effectif vers l'exécutable
	ResolvedPath string `yaml:"-" toml:"-"`
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile" toml:"textfile"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// Sélection de piste
	Language         string `yaml:"language" toml:"language"`
	PreferManualSubs bool   `yaml:"prefer_manual_subs" toml:"prefer_manual_subs"`

	// Résultat
	OutputFormat    model.OutputFormat `yaml:"output_format" toml:"output_format"`
	IncludeMetadata bool               `yaml:"include_metadata" toml:"include_metadata"`
	ContinueOnFail  bool               `yaml:"continue_on_fail" toml:"continue_on_fail"`

	// v1 : txt | json, remplacé par output_format
	LegacyTranscriptFormat string `yaml:"transcript_format,omitempty" toml:"transcript_format,omitempty"`

	Auth    AuthConfig    `yaml:"auth" toml:"auth"`
	YtDlp   YtDlpConfig   `yaml:"yt_dlp" toml:"yt_dlp"`
	Cache   CacheConfig   `yaml:"cache" toml:"cache"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
	Server  ServerConfig  `yaml:"server" toml:"server"`

	ConfigVersion int `yaml:"config_version" toml:"config_version"`

	configFilePath string
}

// Default retourne la configuration par défaut (fallback si aucun fichier n'est lu).
func Default() *Config {
	c := &Config{}

	c.OutputDir = "."

	c.Language = "en"
	c.PreferManualSubs = true

	c.OutputFormat = model.OutputStructured
	c.IncludeMetadata = false
	c.ContinueOnFail = false

	c.Auth.Method = "none"

	// yt-dlp
	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.AutoUpdateCheck = false
	c.YtDlp.AutoInstall = false

	c.Cache.Path = "transcripter.db"
	c.Log.Level = "info"
	c.Log.Format = "auto"
	c.Server.Addr = ":8080"

	c.ConfigVersion = CurrentConfigVersion
	c.normalizeConfig()
	return c
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load lit la config; si le fichier YAML n'existe pas, on copie l'exemple embarqué depuis internal/assets.
// Un fichier .toml absent n'est pas créé : on garde les valeurs par défaut.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if isTOML(path) {
			cfg := Default()
			cfg.configFilePath = path
			return cfg, nil
		}
		if _, err := bootstrap.DefaultConfig(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	cfg := Default()
	// les champs absents du fichier doivent pouvoir être détectés par la migration
	cfg.ConfigVersion = 0

	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
		}
	} else {
		// corriger les chemins Windows avec des backslashes
		data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
		}
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		cfg.normalizeConfig()
	}

	return cfg, nil
}

// Marshal encode la config au format du fichier (toml ou yaml).
func (c *Config) Marshal() ([]byte, error) {
	if isTOML(c.configFilePath) {
		return toml.Marshal(c)
	}
	return yaml.Marshal(c)
}

// FilePath : chemin du fichier d'où la config a été lue.
func (c *Config) FilePath() string { return c.configFilePath }

func (c *Config) normalizeConfig() {
	c.OutputDir = filepath.Clean(strings.TrimSpace(c.OutputDir))

	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = "en"
	}

	if f, err := model.ParseOutputFormat(string(c.OutputFormat)); err == nil {
		c.OutputFormat = f
	}

	c.Auth.Method = strings.ToLower(strings.TrimSpace(c.Auth.Method))
	if c.Auth.Method == "" {
		c.Auth.Method = "none"
	}

	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = "transcripter.db"
	}

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
// Path vide : ResolvedPath = Name, le binaire est cherché dans PATH.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		c.YtDlp.ResolvedPath = exeName
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
