package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"pagebrief/internal/common"
	"pagebrief/internal/config"
	"pagebrief/pkg/provider"
	"pagebrief/pkg/store"
)

// SetAction persists the provider choice and API key so later invocations
// do not need flags or environment variables.
func SetAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	database, err := store.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	registry := provider.NewRegistry()
	wrote := false

	if id := c.String("provider"); id != "" {
		if _, known := registry.RequiresKey(id); !known {
			return fmt.Errorf("unknown provider %q (known: %s)", id, strings.Join(registry.IDs(), ", "))
		}
		if err := database.PutSetting(config.SettingProvider, id); err != nil {
			return err
		}
		wrote = true
	}
	if key := c.String("api-key"); key != "" {
		if err := database.PutSetting(config.SettingAPIKey, key); err != nil {
			return err
		}
		wrote = true
	}

	if !wrote {
		return fmt.Errorf("nothing to save: pass --provider and/or --api-key")
	}
	fmt.Println("Settings saved")
	return nil
}

// ShowAction prints the persisted settings. The API key is masked.
func ShowAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	database, err := store.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	providerID, err := database.GetSetting(config.SettingProvider)
	if err != nil {
		return err
	}
	apiKey, err := database.GetSetting(config.SettingAPIKey)
	if err != nil {
		return err
	}

	if providerID == "" {
		providerID = "(not set)"
	}
	fmt.Printf("provider: %s\n", providerID)
	fmt.Printf("api key:  %s\n", maskKey(apiKey))
	return nil
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
