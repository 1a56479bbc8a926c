package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// sensitiveKeySuffix marks keys whose values are masked when shown.
const sensitiveKeySuffix = "api_key"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and configure AI providers and other options.

Recognised keys:
  completion.provider              openai or anthropic
  completion.api_key               provider API key
  completion.base_url              endpoint override (optional)
  completion.model                 model override (optional)
  imagegen.api_key                 OpenAI API key for image generation
  imagegen.base_url                endpoint override (optional)
  imagegen.model                   image model override (optional)
  imagegen.requests_per_second     rate limit override (optional)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings := loadSettings()

	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[Completion]")
	if settings.Completion.Provider != "" {
		cmd.Printf("  Provider: %s\n", settings.Completion.Provider.Description())
	} else {
		cmd.Println("  Provider: (not set)")
	}
	if settings.Completion.Model != "" {
		cmd.Printf("  Model: %s\n", settings.Completion.Model)
	}
	if settings.Completion.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Completion.APIKey))
	} else {
		cmd.Println("  API Key: (not set)")
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Completion.IsConfigured()))
	cmd.Println()

	cmd.Println("[Image Generation]")
	if settings.ImageGen.Model != "" {
		cmd.Printf("  Model: %s\n", settings.ImageGen.Model)
	}
	if settings.ImageGen.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.ImageGen.APIKey))
	} else {
		cmd.Println("  API Key: (not set)")
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.ImageGen.IsConfigured()))

	return showOverrides(cmd)
}

// showOverrides prints the optional endpoint and rate overrides when set.
func showOverrides(cmd *cobra.Command) error {
	overrideKeys := []string{"completion.base_url", "imagegen.base_url", "imagegen.requests_per_second"}

	var set []string
	for _, key := range overrideKeys {
		if _, ok := configStore.Get(key); ok {
			set = append(set, key)
		}
	}
	if len(set) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("[Overrides]")
	sort.Strings(set)
	for _, key := range set {
		val, _ := configStore.Get(key)
		cmd.Printf("  %s: %v\n", key, val)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	// Store numerics and booleans typed so TOML round-trips them.
	var value any = raw
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		value = b
	} else if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = i
	} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
		value = f
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	if strings.HasSuffix(key, sensitiveKeySuffix) {
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(raw))
	} else {
		cmd.Printf("Set %s = %v\n", key, value)
	}
	return nil
}

// maskAPIKey hides all but the last four characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
