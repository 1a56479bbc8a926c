// Package cli implements the techpack command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitchworks/techpack-cli/internal/adapters/driven/ai"
	blobfile "github.com/stitchworks/techpack-cli/internal/adapters/driven/blob/file"
	configfile "github.com/stitchworks/techpack-cli/internal/adapters/driven/config/file"
	"github.com/stitchworks/techpack-cli/internal/adapters/driven/storage/sqlite"
	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
	"github.com/stitchworks/techpack-cli/internal/core/services"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verboseFlag bool
	dataDirFlag string
)

// Shared services, initialised by initServices before commands run.
// Tests may substitute these with mocks.
var (
	store           *sqlite.Store
	configStore     driven.ConfigStore
	promptStore     driven.PromptStore
	techpackService driving.TechPackService
	revisionService driving.RevisionService
)

var rootCmd = &cobra.Command{
	Use:   "techpack",
	Short: "Tech pack editor with AI-assisted editing and product imagery",
	Long: `techpack maintains manufacturing tech packs: structured product
specification documents with a fixed set of sections.

Sections are edited directly with 'techpack set', or conversationally
with 'techpack chat', where an LLM translates natural-language requests
into structured edits. 'techpack generate' renders consistent front,
back, and side product images, tracked in a revision ledger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.techpack)")
}

// initServices wires the store-backed services. AI-backed services are
// built on demand by the commands that need them.
func initServices() error {
	if techpackService != nil {
		return nil
	}

	var err error
	store, err = sqlite.NewStore(dataDirFlag)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	configStore, err = configfile.NewConfigStore(dataDirFlag)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	promptStore, err = configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}

	techpackService = services.NewTechPackService(store.TechPackStore())
	revisionService = services.NewRevisionService(store.RevisionStore())
	return nil
}

// closeServices releases resources held by initServices.
func closeServices() {
	if store != nil {
		store.Close() //nolint:errcheck
		store = nil
	}
}

// loadSettings reads service settings from the config store.
func loadSettings() domain.Settings {
	return domain.Settings{
		Completion: domain.CompletionSettings{
			Provider: domain.AIProvider(configStore.GetString("completion.provider")),
			APIKey:   configStore.GetString("completion.api_key"),
			BaseURL:  configStore.GetString("completion.base_url"),
			Model:    configStore.GetString("completion.model"),
		},
		ImageGen: domain.ImageGenSettings{
			APIKey:            configStore.GetString("imagegen.api_key"),
			BaseURL:           configStore.GetString("imagegen.base_url"),
			Model:             configStore.GetString("imagegen.model"),
			RequestsPerSecond: configStore.GetFloat("imagegen.requests_per_second"),
		},
		DataDir: dataDirFlag,
	}
}

// buildEditor creates the conversational editor, validating the
// completion provider first.
func buildEditor() (driving.EditorService, driven.CompletionService, error) {
	settings := loadSettings()
	if !settings.Completion.IsConfigured() {
		return nil, nil, fmt.Errorf("%w: set completion.provider and completion.api_key with 'techpack config set'",
			domain.ErrCompletionUnavailable)
	}

	completion, err := ai.CreateAndValidateCompletionService(&settings.Completion)
	if err != nil {
		return nil, nil, err
	}

	editor := services.NewEditorService(services.NewRuleClassifier(), services.NewExtractor(), completion, techpackService)
	editor.SetPromptStore(promptStore)
	return editor, completion, nil
}

// buildGenerator creates the multi-view generation sequencer.
func buildGenerator() (driving.GenerationService, error) {
	settings := loadSettings()
	if !settings.ImageGen.IsConfigured() {
		return nil, fmt.Errorf("%w: set imagegen.api_key with 'techpack config set'",
			domain.ErrImageGenUnavailable)
	}

	imagegen, err := ai.CreateImageGenerator(&settings.ImageGen)
	if err != nil {
		return nil, err
	}

	blob, err := blobfile.NewBlobStore(dataDirFlag)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	gen := services.NewGenerationService(imagegen, blob, revisionService, techpackService)
	gen.SetPromptStore(promptStore)
	return gen, nil
}
