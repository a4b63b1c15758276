package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BotConfig holds the bot persona and its fixed phrases and replies.
type BotConfig struct {
	Name              string   `yaml:"name"`
	ExitPhrases       []string `yaml:"exit_phrases"`
	ThanksPhrases     []string `yaml:"thanks_phrases"`
	DeclinePhrases    []string `yaml:"decline_phrases"`
	GreetingInputs    []string `yaml:"greeting_inputs"`
	GreetingResponses []string `yaml:"greeting_responses"`
	Messages          Messages `yaml:"messages"`
}

// Messages are the fixed reply texts. Empty fields fall back to defaults.
type Messages struct {
	Farewell   string `yaml:"farewell"`
	Thanks     string `yaml:"thanks"`
	NoMatch    string `yaml:"no_match"`
	Declined   string `yaml:"declined"`
	Learned    string `yaml:"learned"`
	SaveFailed string `yaml:"save_failed"`
}

// CorpusConfig selects and configures the corpus backend.
type CorpusConfig struct {
	Type   string        `yaml:"type"`
	Path   string        `yaml:"path"`
	Create bool          `yaml:"create"`
	Watch  bool          `yaml:"watch"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// SQLiteConfig contains the database location for the sqlite corpus backend.
type SQLiteConfig struct {
	DSN string `yaml:"dsn"`
	// Seed imports Path into an empty database on startup.
	Seed bool `yaml:"seed"`
}

// NormalizerConfig selects the token normalizer.
type NormalizerConfig struct {
	Type string `yaml:"type"`
}

// IndexConfig configures the similarity index.
type IndexConfig struct {
	Type      string `yaml:"type"`
	Stopwords string `yaml:"stopwords"`
}

// ShellConfig selects the user-facing shell.
type ShellConfig struct {
	Type     string `yaml:"type"`
	Markdown bool   `yaml:"markdown"`
}

// LoggingConfig controls where logs go.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Bot        BotConfig        `yaml:"bot"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Index      IndexConfig      `yaml:"index"`
	Shell      ShellConfig      `yaml:"shell"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/qabot/config.yaml.
// If neither exists, it writes defaults to ~/.config/qabot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every selected implementation is known.
func (c *AppConfig) Validate() error {
	switch c.Corpus.Type {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: unknown corpus type %q", c.Corpus.Type)
	}
	switch c.Normalizer.Type {
	case "lemma", "stem", "plain":
	default:
		return fmt.Errorf("config: unknown normalizer %q", c.Normalizer.Type)
	}
	if c.Index.Type != "tfidf" {
		return fmt.Errorf("config: unknown index %q", c.Index.Type)
	}
	switch c.Index.Stopwords {
	case "english", "none":
	default:
		return fmt.Errorf("config: unknown stopwords list %q", c.Index.Stopwords)
	}
	switch c.Shell.Type {
	case "tui", "plain":
	default:
		return fmt.Errorf("config: unknown shell %q", c.Shell.Type)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "qabot", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qabot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Corpus:     CorpusConfig{Type: "file", Path: "mychat.txt", Create: true},
		Normalizer: NormalizerConfig{Type: "lemma"},
		Index:      IndexConfig{Type: "tfidf", Stopwords: "english"},
		Shell:      ShellConfig{Type: "tui", Markdown: true},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Bot.Name == "" {
		cfg.Bot.Name = "Nexora"
	}
	if len(cfg.Bot.ExitPhrases) == 0 {
		cfg.Bot.ExitPhrases = []string{"bye"}
	}
	if len(cfg.Bot.ThanksPhrases) == 0 {
		cfg.Bot.ThanksPhrases = []string{"thanks", "thank you"}
	}
	if len(cfg.Bot.DeclinePhrases) == 0 {
		cfg.Bot.DeclinePhrases = []string{"no"}
	}
	if len(cfg.Bot.GreetingInputs) == 0 {
		cfg.Bot.GreetingInputs = []string{"hello", "hi", "greetings", "sup", "what's up", "hey"}
	}
	if len(cfg.Bot.GreetingResponses) == 0 {
		cfg.Bot.GreetingResponses = []string{"hi", "hey", "hi there", "hello", "I am glad! You are talking to me"}
	}
	if cfg.Corpus.Type == "" {
		cfg.Corpus.Type = "file"
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "mychat.txt"
	}
	if cfg.Corpus.Type == "sqlite" {
		if cfg.Corpus.SQLite == nil {
			cfg.Corpus.SQLite = &SQLiteConfig{}
		}
		if cfg.Corpus.SQLite.DSN == "" {
			cfg.Corpus.SQLite.DSN = "qabot.db"
		}
	}
	if cfg.Normalizer.Type == "" {
		cfg.Normalizer.Type = "lemma"
	}
	if cfg.Index.Type == "" {
		cfg.Index.Type = "tfidf"
	}
	if cfg.Index.Stopwords == "" {
		cfg.Index.Stopwords = "english"
	}
	if cfg.Shell.Type == "" {
		cfg.Shell.Type = "tui"
	}
}
