package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/soask"
	"github.com/fwojciec/soask/chroma"
	"github.com/fwojciec/soask/fs"
	"github.com/fwojciec/soask/gemini"
	"github.com/fwojciec/soask/goquery"
	"github.com/fwojciec/soask/htmltomarkdown"
	"github.com/fwojciec/soask/openai"
	"github.com/fwojciec/soask/pipeline"
	soslog "github.com/fwojciec/soask/slog"
	"github.com/fwojciec/soask/sqlite"
	"github.com/fwojciec/soask/stackexchange"
	"github.com/fwojciec/soask/term"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config files read for flag defaults, in order. Missing files are skipped.
	ConfigPaths []string

	// StackExchangeURL overrides the API root. Set before calling Run().
	StackExchangeURL string

	// SQLite archive, opened when --archive is given.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: defaultConfigPaths(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		err := m.DB.Close()
		m.DB = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("soask"),
		kong.Description("Answer a programming question from Stack Overflow, simplified by a language model."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(TOML, m.ConfigPaths...),
		vars,
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return soask.Errorf(soask.EINVALID, "no question provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	runID := uuid.New().String()
	logger := newLogger(stderr, cli.Verbose).With("run", runID)

	p, err := m.wire(ctx, cli, stdout, logger)
	if err != nil {
		return err
	}
	p.RunID = runID

	_, err = p.Run(ctx, strings.Join(cli.Question, " "))
	return err
}

// wire builds the pipeline for the parsed flags.
func (m *Main) wire(ctx context.Context, cli *CLI, stdout io.Writer, logger *slog.Logger) (*pipeline.Pipeline, error) {
	if cli.Questions < 1 {
		return nil, soask.Errorf(soask.EINVALID, "--questions must be at least 1")
	}
	if cli.Answers < 1 {
		return nil, soask.Errorf(soask.EINVALID, "--answers must be at least 1")
	}

	seOpts := []stackexchange.Option{
		stackexchange.WithSite(cli.Site),
		stackexchange.WithTimeout(cli.Timeout),
		stackexchange.WithLogger(logger),
	}
	if m.StackExchangeURL != "" {
		seOpts = append(seOpts, stackexchange.WithBaseURL(m.StackExchangeURL))
	}
	client := stackexchange.NewClient(seOpts...)

	var normalizer soask.Normalizer = goquery.NewNormalizer()
	if cli.Format == "markdown" {
		normalizer = htmltomarkdown.NewNormalizer(htmltomarkdown.WithDomain(stackexchange.SiteURL(cli.Site)))
	}

	synthesizer, counter, err := newSynthesizer(ctx, cli, logger)
	if err != nil {
		return nil, err
	}

	transcripts, err := m.transcriptWriter(cli, logger)
	if err != nil {
		return nil, err
	}

	return &pipeline.Pipeline{
		Searcher:           soslog.NewLoggingSearcher(client, logger),
		Answers:            soslog.NewLoggingAnswerFetcher(client, logger),
		Normalizer:         normalizer,
		Synthesizer:        soslog.NewLoggingSynthesizer(synthesizer, logger),
		Presenter:          term.NewPresenter(stdout, term.WithHighlighter(chroma.NewHighlighter())),
		Transcripts:        transcripts,
		TokenCounter:       counter,
		Logger:             logger,
		OutputPath:         cli.Output,
		QuestionCount:      cli.Questions,
		AnswersPerQuestion: cli.Answers,
		MaxAnswers:         cli.Answers,
	}, nil
}

// newSynthesizer returns the configured backend. The gemini backend also
// returns a token counter for the prompt when logging verbosely.
func newSynthesizer(ctx context.Context, cli *CLI, logger *slog.Logger) (soask.Synthesizer, soask.TokenCounter, error) {
	switch cli.Backend {
	case "gemini":
		if cli.APIKey == "" {
			return nil, nil, soask.Errorf(soask.EINVALID, "GEMINI_API_KEY is required for the gemini backend")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini client: %w", err)
		}

		var counter soask.TokenCounter
		if cli.Verbose {
			if tc, err := gemini.NewTokenCounter(cli.Model); err != nil {
				logger.Debug("token counting disabled", "err", err)
			} else {
				counter = tc
			}
		}
		return gemini.NewSynthesizer(client, cli.Model), counter, nil
	default:
		opts := []openai.Option{
			openai.WithEndpoint(cli.Endpoint),
			openai.WithProject(cli.Project),
			openai.WithStream(!cli.NoStream),
			openai.WithLogger(logger),
		}
		if cli.Model != "" {
			opts = append(opts, openai.WithModel(cli.Model))
		}
		return openai.NewSynthesizer(cli.Token, opts...), nil, nil
	}
}

// transcriptWriter returns the file writer, fanned out to the archive when
// one is configured.
func (m *Main) transcriptWriter(cli *CLI, logger *slog.Logger) (soask.TranscriptWriter, error) {
	file := soslog.NewLoggingTranscriptWriter(fs.NewTranscriptWriter(cli.Output), cli.Output, logger)
	if cli.Archive == "" {
		return file, nil
	}

	if dir := filepath.Dir(cli.Archive); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(cli.Archive)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return nil, err
	}
	archive := soslog.NewLoggingTranscriptWriter(sqlite.NewTranscriptService(m.DB), cli.Archive, logger)

	return soask.MultiTranscriptWriter(file, archive), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// defaultConfigPaths returns $SOASK_CONFIG, if set, and the per-user config file.
func defaultConfigPaths() []string {
	var paths []string
	if p := os.Getenv("SOASK_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "soask", "config.toml"))
	}
	return paths
}

// errorMessage returns the message printed for a failed run.
func errorMessage(err error) string {
	var e *soask.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
