package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
)

var generateEdit string

var generateCmd = &cobra.Command{
	Use:   "generate [product-id]",
	Short: "Generate product view images",
	Long: `Generates front, back, and side product images for a tech pack.

Without --edit, an initial image set is rendered from the tech pack
description. With --edit, all three views are regenerated applying the
edit against the current front image, so the views stay consistent.

Every run commits one revision batch; see 'techpack revisions'.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateEdit, "edit", "", "edit instruction to apply to the current images")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	productID := args[0]

	generator, err := buildGenerator()
	if err != nil {
		return err
	}

	var result *driving.GenerationResult
	if generateEdit != "" {
		cmd.Printf("Applying edit to %q views...\n", productID)
		result, err = generator.ApplyEdit(cmd.Context(), productID, generateEdit)
	} else {
		cmd.Printf("Generating initial views for %q...\n", productID)
		result, err = generator.GenerateInitial(cmd.Context(), productID)
	}
	if err != nil {
		return fmt.Errorf("generate views: %w", err)
	}

	cmd.Printf("Batch %s\n", result.BatchID)
	for _, outcome := range result.Outcomes {
		if outcome.Err != nil {
			cmd.Printf("  %-5s skipped: %v\n", outcome.View, outcome.Err)
			continue
		}
		cmd.Printf("  %-5s rev %d  %s\n", outcome.View, outcome.Revision.RevisionNumber, outcome.Revision.ImageURL)
	}

	if failed := result.Failed(); failed != nil {
		cmd.Printf("%d of %d views skipped\n", len(failed), len(result.Outcomes))
	}
	return nil
}
