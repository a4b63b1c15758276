package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qabot/internal/chat"
	"qabot/internal/config"
	"qabot/internal/corpus/file"
	"qabot/internal/domain"
	"qabot/internal/embedding/tfidf"
	"qabot/internal/index"
	"qabot/internal/normalizer"
)

func TestRepl_TeachAndExit(t *testing.T) {
	store, err := file.Open(filepath.Join(t.TempDir(), "mychat.txt"), file.Options{Create: true})
	require.NoError(t, err)
	idx := index.NewTFIDF(normalizer.NewPlain(), tfidf.EnglishStopwords())
	e := chat.NewEngine(store, idx, chat.NewGreeter([]string{"hi"}, []string{"hello"}, nil), chat.DefaultPhrases(), chat.DefaultMessages())

	in := strings.NewReader("weather today\nit is sunny\n\nweather today\nhi\nbye\nnever read\n")
	var out bytes.Buffer
	require.NoError(t, repl(in, &out, e, "Nexora"))

	got := out.String()
	assert.Contains(t, got, "Nexora: I am sorry! I don't understand you.")
	assert.Contains(t, got, "Answer (or no): ")
	assert.Contains(t, got, "Nexora: Thank you for teaching me!")
	assert.Contains(t, got, "Nexora: it is sunny")
	assert.Contains(t, got, "Nexora: hello")
	assert.True(t, strings.HasSuffix(got, "Nexora: Bye! Take care.\n"))
}

func TestRepl_EOF(t *testing.T) {
	store, err := file.Open(filepath.Join(t.TempDir(), "mychat.txt"), file.Options{Create: true})
	require.NoError(t, err)
	e := chat.NewEngine(store, index.NewTFIDF(normalizer.NewPlain(), nil), nil, chat.DefaultPhrases(), chat.DefaultMessages())
	var out bytes.Buffer
	assert.NoError(t, repl(strings.NewReader(""), &out, e, "Nexora"))
}

func TestMessages_OverridesOnlySetFields(t *testing.T) {
	m := messages(config.Messages{Farewell: "See you!"})
	assert.Equal(t, "See you!", m.Farewell)
	assert.Equal(t, chat.DefaultMessages().Learned, m.Learned)
}

func TestAssemble_SQLiteSeed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mychat.txt")
	seed, err := file.Open(src, file.Options{Create: true})
	require.NoError(t, err)
	require.NoError(t, seed.Append("what is your name", "I am Nexora"))

	cfg := testConfig(t, dir, "sqlite")
	cfg.Corpus.Path = src
	cfg.Corpus.SQLite = &config.SQLiteConfig{DSN: filepath.Join(dir, "qa.db"), Seed: true}
	a, err := assemble(cfg)
	require.NoError(t, err)
	defer a.close()
	assert.Nil(t, a.file)
	assert.Equal(t, []string{"what is your name"}, a.store.Questions())
}

func TestAssemble_MissingCorpus(t *testing.T) {
	cfg := testConfig(t, t.TempDir(), "file")
	cfg.Corpus.Create = false
	_, err := assemble(cfg)
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestAssemble_UnknownNormalizer(t *testing.T) {
	cfg := testConfig(t, t.TempDir(), "file")
	cfg.Normalizer.Type = "soundex"
	_, err := assemble(cfg)
	assert.ErrorContains(t, err, "unknown normalizer")
}

func TestRun_StartupFailureIsReported(t *testing.T) {
	t.Setenv("QABOT_CORPUS", "")
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "corpus:\n  create: false\nnormalizer:\n  type: plain\n")
	missing := filepath.Join(dir, "missing.txt")

	err := run([]string{"--plain", "--config", cfgPath, "--corpus", missing}, strings.NewReader(""), io.Discard)
	require.ErrorIs(t, err, domain.ErrCorpusUnavailable)

	var stderr bytes.Buffer
	assert.Equal(t, 1, report(&stderr, err))
	assert.Contains(t, stderr.String(), "qabot: open corpus: corpus unavailable")
	assert.Contains(t, stderr.String(), missing)
}

func TestRun_PlainSession(t *testing.T) {
	t.Setenv("QABOT_CORPUS", "")
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "corpus:\n  create: true\nnormalizer:\n  type: plain\n")
	corpusPath := filepath.Join(dir, "mychat.txt")

	var out bytes.Buffer
	err := run([]string{"--plain", "--config", cfgPath, "--corpus", corpusPath}, strings.NewReader("bye\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Nexora: Bye! Take care.")
	assert.FileExists(t, corpusPath)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, report(&buf, nil))
	assert.Equal(t, 0, report(&buf, flag.ErrHelp))
	assert.Empty(t, buf.String())
}

func testConfig(t *testing.T, dir, corpusType string) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		Corpus:     config.CorpusConfig{Type: corpusType, Path: filepath.Join(dir, "mychat.txt"), Create: true},
		Normalizer: config.NormalizerConfig{Type: "plain"},
		Index:      config.IndexConfig{Type: "tfidf", Stopwords: "english"},
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}
