package chatcmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"pagebrief/internal/chat"
	"pagebrief/internal/common"
	"pagebrief/internal/config"
	"pagebrief/models"
	"pagebrief/pkg/extractor"
	"pagebrief/pkg/fetcher"
	"pagebrief/pkg/provider"
	"pagebrief/pkg/store"
	"pagebrief/pkg/transcript"
)

// Action runs an interactive question loop grounded in the extracted
// content of the given URL. Questions come from stdin, one per line.
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
	backend, err := registry.Create(cfg.Provider)
	if err != nil {
		return err
	}

	f := fetcher.NewFetcher()
	ext := extractor.New(f, transcript.NewExtractor(f, nil, logger))

	content, err := ext.Extract(c.Context, rawURL, mode)
	if err != nil {
		return fmt.Errorf("cannot chat about %s: %w", rawURL, err)
	}

	coordinator := chat.NewCoordinator(backend, logger)
	coordinator.SetActive(rawURL, content)

	fmt.Printf("Chatting about %s (provider: %s). Empty line or Ctrl-D to quit.\n", rawURL, backend.Name())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		reply := coordinator.Ask(c.Context, question)
		if reply.IsError {
			fmt.Printf("! %s\n", reply.Content)
			continue
		}
		fmt.Println(reply.Content)
	}
	return scanner.Err()
}
