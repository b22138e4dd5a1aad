package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tszym/jobharvest"
	"github.com/tszym/jobharvest/fs"
	"github.com/tszym/jobharvest/gemini"
	"github.com/tszym/jobharvest/goquery"
	"github.com/tszym/jobharvest/harvest"
	"github.com/tszym/jobharvest/htmltomarkdown"
	"github.com/tszym/jobharvest/rod"
	jobslog "github.com/tszym/jobharvest/slog"
	"github.com/tszym/jobharvest/sqlite"
	"github.com/tszym/jobharvest/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	JobService jobharvest.JobService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobharvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobharvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "run" && cli.Run.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set JOBHARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.JobService = jobslog.NewLoggingJobService(sqlite.NewJobService(m.DB), deps.Logger)
	deps.DB = m.DB
	deps.Jobs = m.JobService

	// Wire the extraction pipeline only for the run command; it needs a
	// browser and a Gemini API key, which the bookkeeping commands don't.
	if cmd == "run" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		manager, err := rod.NewBrowserManager(rod.WithHeadless(cli.Run.Headless))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}

		loader := rod.NewLoggingLoader(rod.NewLoader(manager,
			rod.WithNavTimeout(cli.Run.NavTimeout),
			rod.WithSettleTimeout(cli.Run.SettleTimeout),
			rod.WithLogger(deps.Logger),
		), deps.Logger)
		defer loader.Close()

		config := jobharvest.DefaultRunConfig()
		config.Headless = cli.Run.Headless
		config.NavTimeout = cli.Run.NavTimeout
		config.SettleTimeout = cli.Run.SettleTimeout
		config.MaxRetries = cli.Run.Retries
		config.RetryDelay = cli.Run.RetryDelay
		config.BatchSize = cli.Run.BatchSize
		config.BatchDelay = cli.Run.BatchDelay
		config.IncludeRetried = cli.Run.IncludeRetried
		config.RPS = cli.Run.RPS
		config.SnapshotDir = cli.Run.Snapshots
		config.Validator.MinChars = cli.Run.MinChars

		var reports jobharvest.ReportWriter
		if cli.Run.Report != "" {
			reports, err = fs.NewReportWriter(cli.Run.Report)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer reports.Close()
		}

		deps.Harvester = &harvest.Harvester{
			Jobs:   m.JobService,
			Loader: loader,
			Extractor: &harvest.Extractor{
				Querier:           jobslog.NewLoggingQuerier(gemini.NewQuerier(client), deps.Logger),
				Content:           trafilatura.NewExtractor(),
				Containers:        goquery.NewContainerSelector(),
				Converter:         htmltomarkdown.NewConverter(),
				MinChars:          cli.Run.MinChars,
				MinComponentChars: minComponentChars,
				Logger: func(format string, args ...any) {
					deps.Logger.Info(fmt.Sprintf(format, args...))
				},
			},
			Validator: jobharvest.NewContentValidator(config.Validator),
			Reports:   reports,
			Limiter:   harvest.NewDomainLimiter(cli.Run.RPS),
			Logger:    deps.Logger,
			Config:    config,
		}
	}

	return kongCtx.Run(deps)
}

// minComponentChars drops near-empty fields returned by the structured
// strategy before they are concatenated.
const minComponentChars = 40

func defaultDBPath() string {
	if path := os.Getenv("JOBHARVEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobharvest.db"
	}
	dir := filepath.Join(home, ".jobharvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "jobharvest.db")
}
