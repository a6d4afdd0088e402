package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"pagebrief/internal/cachecmd"
	"pagebrief/internal/chatcmd"
	"pagebrief/internal/providers"
	"pagebrief/internal/settings"
	"pagebrief/internal/summarize"
)

func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "provider", Usage: "AI provider (ollama, openai, anthropic, gemini)"},
		&cli.StringFlag{Name: "api-key", Usage: "API key for hosted providers"},
		&cli.StringFlag{Name: "base-url", Usage: "override the provider endpoint"},
		&cli.StringFlag{Name: "model", Usage: "override the provider's default model"},
		&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
		&cli.StringFlag{Name: "db", Usage: "path to the cache database (default: user config dir)"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
	}
}

func main() {
	app := &cli.App{
		Name:  "pagebrief",
		Usage: "summarize web pages and videos with an AI provider",
		Commands: []*cli.Command{
			{
				Name:      "summarize",
				Usage:     "fetch a URL, extract its content, and print bullet points",
				ArgsUsage: "<url>",
				Flags: append(providerFlags(),
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "bypass the cache and regenerate"},
					&cli.StringFlag{Name: "text", Usage: "summarize this text instead of the fetched page"},
					&cli.StringFlag{Name: "mode", Usage: "extraction mode: heuristic or readability", Value: "heuristic"},
					&cli.StringFlag{Name: "format", Usage: "output format: json or yaml", Value: "json"},
				),
				Action: summarize.Action,
			},
			{
				Name:      "chat",
				Usage:     "ask questions about a page's content interactively",
				ArgsUsage: "<url>",
				Flags: append(providerFlags(),
					&cli.StringFlag{Name: "mode", Usage: "extraction mode: heuristic or readability", Value: "heuristic"},
				),
				Action: chatcmd.Action,
			},
			{
				Name:  "providers",
				Usage: "inspect the available AI providers",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list provider IDs and their key requirements",
						Action: providers.ListAction,
					},
					{
						Name:  "check",
						Usage: "probe the local model daemon",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "base-url", Usage: "daemon address"},
							&cli.StringFlag{Name: "model", Usage: "model to report"},
						},
						Action: providers.CheckAction,
					},
				},
			},
			{
				Name:  "cache",
				Usage: "inspect or clear persisted summaries",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "list cached summary keys",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db"},
							&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
						},
						Action: cachecmd.ShowAction,
					},
					{
						Name:  "clear",
						Usage: "delete all cached summaries",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db"},
							&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
						},
						Action: cachecmd.ClearAction,
					},
				},
			},
			{
				Name:  "settings",
				Usage: "persist the default provider and API key",
				Subcommands: []*cli.Command{
					{
						Name:  "set",
						Usage: "save provider and/or API key",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "provider"},
							&cli.StringFlag{Name: "api-key"},
							&cli.StringFlag{Name: "db"},
							&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
						},
						Action: settings.SetAction,
					},
					{
						Name:  "show",
						Usage: "print saved settings (key masked)",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db"},
							&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
						},
						Action: settings.ShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
