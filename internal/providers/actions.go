package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"pagebrief/models"
	"pagebrief/pkg/provider"
)

// ListAction prints the known provider IDs and whether each needs an API key.
func ListAction(c *cli.Context) error {
	registry := provider.NewRegistry()

	fmt.Printf("%-12s %s\n", "PROVIDER", "API KEY")
	for _, id := range registry.IDs() {
		requires, _ := registry.RequiresKey(id)
		need := "required"
		if !requires {
			need = "not required"
		}
		fmt.Printf("%-12s %s\n", id, need)
	}
	return nil
}

// CheckAction probes the local model daemon and reports whether on-device
// summarization is usable right now.
func CheckAction(c *cli.Context) error {
	p := provider.NewOllamaProvider(models.ProviderConfig{
		ProviderID: provider.IDOllama,
		BaseURL:    c.String("base-url"),
		Model:      c.String("model"),
	})

	ctx, cancel := context.WithTimeout(c.Context, 5*time.Second)
	defer cancel()

	if err := p.Available(ctx); err != nil {
		fmt.Printf("ollama: unavailable\n%s\n", err)
		return cli.Exit("", 1)
	}
	fmt.Println("ollama: available")
	return nil
}
