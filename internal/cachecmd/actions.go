package cachecmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"pagebrief/internal/common"
	"pagebrief/pkg/store"
)

// ShowAction lists the cache keys persisted in the database.
func ShowAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	database, err := store.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	keys, err := database.ListSummaryKeys()
	if err != nil {
		return fmt.Errorf("failed to list cached summaries: %w", err)
	}

	if len(keys) == 0 {
		fmt.Println("No cached summaries")
		return nil
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	fmt.Printf("\nTotal: %d cached summaries (%s)\n", len(keys), database.Path())
	return nil
}

// ClearAction deletes all persisted summaries. In-memory entries belong to
// running processes and are unaffected.
func ClearAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	database, err := store.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	if err := database.ClearSummaries(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Println("Cache cleared")
	return nil
}
