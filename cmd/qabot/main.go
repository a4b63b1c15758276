package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"qabot/internal/chat"
	"qabot/internal/config"
	"qabot/internal/corpus/file"
	"qabot/internal/corpus/sqlite"
	"qabot/internal/domain"
	"qabot/internal/embedding/tfidf"
	"qabot/internal/index"
	"qabot/internal/normalizer"
	"qabot/internal/normalizer/lemma"
	"qabot/internal/normalizer/stem"
	"qabot/internal/tui"
	"qabot/internal/watch"
)

func main() {
	_ = godotenv.Load()
	os.Exit(report(os.Stderr, run(os.Args[1:], os.Stdin, os.Stdout)))
}

// report prints a startup or shell failure and returns the process exit code.
func report(w io.Writer, err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(w, "qabot: %v\n", err)
	return 1
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("qabot", flag.ContinueOnError)
	var cfgPath, corpusPath string
	var plain bool
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/qabot/config.yaml if not provided)")
	fs.StringVar(&corpusPath, "corpus", "", "Path to the Q/A corpus file (overrides config and QABOT_CORPUS)")
	fs.BoolVar(&plain, "plain", false, "Use the line-oriented shell instead of the TUI")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if env := os.Getenv("QABOT_CORPUS"); env != "" {
		cfg.Corpus.Path = env
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}
	if plain {
		cfg.Shell.Type = "plain"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Logging is redirected below; startup errors must be returned before that.
	a, err := assemble(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if cfg.Shell.Type == "plain" {
		return repl(stdin, stdout, a.engine, cfg.Bot.Name)
	}
	return a.runTUI(cfg)
}

// app holds the assembled components for one session.
type app struct {
	store   domain.CorpusStore
	file    *file.Store // set for the file backend only
	engine  *chat.Engine
	watcher *watch.FileWatcher
}

func assemble(cfg *config.AppConfig) (*app, error) {
	norm, err := newNormalizer(cfg.Normalizer.Type)
	if err != nil {
		return nil, err
	}

	var stopwords map[string]struct{}
	if cfg.Index.Stopwords != "none" {
		stopwords = tfidf.EnglishStopwords()
	}
	var idx domain.SimilarityIndex
	switch cfg.Index.Type {
	case "tfidf":
		x := index.NewTFIDF(norm, stopwords)
		x.SetDebug(cfg.Logging.Debug)
		idx = x
	default:
		return nil, fmt.Errorf("unknown index: %s", cfg.Index.Type)
	}

	a := &app{}
	if err := a.openStore(cfg); err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}

	if cfg.Corpus.Watch && a.file != nil {
		w, err := watch.NewFileWatcher(a.file.Path())
		if err != nil {
			a.store.Close()
			return nil, fmt.Errorf("watch init: %w", err)
		}
		a.watcher = w
	}

	greeter := chat.NewGreeter(cfg.Bot.GreetingInputs, cfg.Bot.GreetingResponses, nil)
	phrases := chat.Phrases{
		Exit:    cfg.Bot.ExitPhrases,
		Thanks:  cfg.Bot.ThanksPhrases,
		Decline: cfg.Bot.DeclinePhrases,
	}
	a.engine = chat.NewEngine(a.store, idx, greeter, phrases, messages(cfg.Bot.Messages))
	return a, nil
}

func newNormalizer(kind string) (domain.Normalizer, error) {
	switch kind {
	case "lemma":
		n, err := lemma.New()
		if err != nil {
			return nil, fmt.Errorf("lemmatizer init: %w", err)
		}
		return n, nil
	case "stem":
		return stem.New(), nil
	case "plain":
		return normalizer.NewPlain(), nil
	default:
		return nil, fmt.Errorf("unknown normalizer: %s", kind)
	}
}

func (a *app) openStore(cfg *config.AppConfig) error {
	switch cfg.Corpus.Type {
	case "sqlite":
		s, err := sqlite.Open(cfg.Corpus.SQLite.DSN)
		if err != nil {
			return err
		}
		if cfg.Corpus.SQLite.Seed && s.Len() == 0 {
			if f, err := os.Open(cfg.Corpus.Path); err == nil {
				n, err := s.Import(f)
				f.Close()
				if err != nil {
					s.Close()
					return err
				}
				log.Printf("[INFO] seeded %d entries from %s", n, cfg.Corpus.Path)
			}
		}
		a.store = s
	default:
		s, err := file.Open(cfg.Corpus.Path, file.Options{Create: cfg.Corpus.Create})
		if err != nil {
			return err
		}
		a.store, a.file = s, s
	}
	return nil
}

func (a *app) runTUI(cfg *config.AppConfig) error {
	var opts []tui.Option
	if cfg.Shell.Markdown {
		r, err := tui.NewMarkdownRenderer(80)
		if err != nil {
			log.Printf("[ERROR] markdown renderer: %v", err)
		} else {
			opts = append(opts, tui.WithRenderer(r))
		}
	}
	if a.watcher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		events, err := a.watcher.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch %s: %w", a.file.Path(), err)
		}
		opts = append(opts, tui.WithReload(events, a.file))
	}

	m := tui.New(a.engine, cfg.Bot.Name, opts...)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (a *app) close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.store.Close()
}

// setupLogging keeps log output away from the TUI screen.
func setupLogging(cfg *config.AppConfig) (*os.File, error) {
	if cfg.Logging.File != "" {
		if cfg.Shell.Type == "tui" {
			f, err := tea.LogToFile(cfg.Logging.File, "")
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			return f, nil
		}
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	}
	if cfg.Shell.Type == "tui" || !cfg.Logging.Debug {
		log.SetOutput(io.Discard)
	}
	return nil, nil
}

func messages(m config.Messages) chat.Messages {
	out := chat.DefaultMessages()
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&out.Farewell, m.Farewell)
	set(&out.Thanks, m.Thanks)
	set(&out.NoMatch, m.NoMatch)
	set(&out.Declined, m.Declined)
	set(&out.Learned, m.Learned)
	set(&out.SaveFailed, m.SaveFailed)
	return out
}
