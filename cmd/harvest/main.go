package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/chromedp"
	"github.com/fletchka/harvest/feed"
	"github.com/fletchka/harvest/goquery"
	"github.com/fletchka/harvest/htmltomarkdown"
	harvesthttp "github.com/fletchka/harvest/http"
	"github.com/fletchka/harvest/pdf"
	"github.com/fletchka/harvest/readability"
	"github.com/fletchka/harvest/rod"
	"github.com/fletchka/harvest/scrape"
	"github.com/fletchka/harvest/sqlite"
	"github.com/fletchka/harvest/trafilatura"
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
	ItemService harvest.ItemService
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ItemService = sqlite.NewItemService(m.DB)
	deps.DB = m.DB
	deps.Items = m.ItemService

	if cmd == "run" {
		converter := htmltomarkdown.NewConverter()
		extractor := goquery.NewExtractor(converter,
			goquery.WithLogger(logger),
			goquery.WithStrategies(
				goquery.SemanticStrategy{},
				goquery.ClassStrategy{},
				goquery.DensityStrategy{},
				readability.NewStrategy(),
				trafilatura.NewStrategy(),
				goquery.LongTextStrategy{},
			),
		)

		scraper := &scrape.Scraper{
			Fetcher:          harvesthttp.NewFetcher(),
			FallbackRenderer: chromedp.NewFetcher(),
			Classifier:       goquery.NewClassifier(),
			Links:            goquery.NewDiscoverer(goquery.WithDiscovererLogger(logger)),
			Feeds:            feed.NewDiscoverer(feed.WithLogger(logger)),
			Sitemaps:         harvesthttp.NewSitemapService(nil),
			Extractor:        extractor,
			PDFText:          pdf.NewExtractor(pdf.WithLogger(logger)),
			NewChunker: func(size, overlap int) harvest.Chunker {
				return pdf.NewChunker(size, overlap)
			},
			Items:         m.ItemService,
			RateLimiter:   scrape.NewDomainLimiter(),
			LikelyArticle: goquery.IsLikelyArticleURL,
			Logger:        logger,
		}

		// JavaScript listings degrade to previews when no browser can be
		// launched, so a missing Chrome is a warning, not a fatal error.
		if bm, err := rod.NewBrowserManager(); err != nil {
			fmt.Fprintln(stderr, "Hint: install Chrome or Chromium to scrape JavaScript-rendered sites")
			logger.Warn("browser unavailable, JS-heavy listings will degrade", "error", err)
		} else {
			defer bm.Close()

			renderer, err := rod.NewFetcher(rod.WithManager(bm))
			if err == nil {
				scraper.Renderer = rod.NewLoggingFetcher(renderer, logger)
			}

			clicker, err := rod.NewClickDiscoverer(rod.WithClickManager(bm), rod.WithClickLogger(logger))
			if err == nil {
				scraper.Clicker = clicker
			}
		}

		deps.Scraper = scraper
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("HARVEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "harvest.db"
	}
	dir := filepath.Join(home, ".harvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "harvest.db")
}
