package summarize

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"pagebrief/internal/common"
	"pagebrief/internal/config"
	"pagebrief/internal/summary"
	"pagebrief/models"
	"pagebrief/pkg/cache"
	"pagebrief/pkg/extractor"
	"pagebrief/pkg/fetcher"
	"pagebrief/pkg/provider"
	"pagebrief/pkg/store"
	"pagebrief/pkg/transcript"
)

// Output is what the summarize command prints to stdout.
type Output struct {
	URL     string              `json:"url" yaml:"url"`
	Bullets []string            `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Error   string              `json:"error,omitempty" yaml:"error,omitempty"`
	Stats   models.SummaryStats `json:"stats" yaml:"stats"`
}

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one URL argument, got %d", c.NArg())
	}
	rawURL := common.SanitizeURL(c.Args().First())
	if err := common.ValidateURL(rawURL); err != nil {
		return err
	}

	mode, err := models.ParseExtractMode(c.String("mode"))
	if err != nil {
		return err
	}

	database, err := store.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	cfg, err := config.Load(config.Overrides{
		Provider: c.String("provider"),
		APIKey:   c.String("api-key"),
		BaseURL:  c.String("base-url"),
		Model:    c.String("model"),
	}, database, c.String("config"))
	if err != nil {
		logger.Error("failed to resolve configuration", "error", err)
		os.Exit(2)
	}

	registry := provider.NewRegistry()
	if err := cfg.Validate(registry); err != nil {
		return err
	}

	f := fetcher.NewFetcher()
	video := transcript.NewExtractor(f, nil, logger)
	orch := summary.New(
		cache.New(database, logger),
		extractor.New(f, video),
		registry,
		cfg.Provider,
		logger,
	)

	result, stats := orch.GetSummaryWithStats(c.Context, summary.Request{
		Locator:      rawURL,
		ForceRefresh: c.Bool("force"),
		TextOverride: c.String("text"),
		Mode:         mode,
	})

	out := Output{URL: rawURL, Bullets: result.Bullets, Error: result.Error, Stats: stats}
	if err := writeOutput(out, c.String("format")); err != nil {
		return err
	}
	if result.Failed() {
		os.Exit(1)
	}
	return nil
}

func writeOutput(out Output, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	case "json", "":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
