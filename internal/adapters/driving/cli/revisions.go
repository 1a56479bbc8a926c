package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "Inspect the image revision ledger",
}

var revisionsListCmd = &cobra.Command{
	Use:   "list [product-id]",
	Short: "List revision batches for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runRevisionsList,
}

var revisionsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Soft-delete a revision or batch",
	Long: `Soft-deletes a single revision by its ID, or a whole batch when the ID
carries the batch- prefix. Deleted revisions disappear from listings but
their revision numbers are never reused.`,
	Args: cobra.ExactArgs(1),
	RunE: runRevisionsDelete,
}

func init() {
	revisionsCmd.AddCommand(revisionsListCmd)
	revisionsCmd.AddCommand(revisionsDeleteCmd)
	rootCmd.AddCommand(revisionsCmd)
}

func runRevisionsList(cmd *cobra.Command, args []string) error {
	batches, err := revisionService.ListGrouped(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("list revisions: %w", err)
	}

	if len(batches) == 0 {
		cmd.Println("No revisions. Generate images with 'techpack generate'.")
		return nil
	}

	for _, batch := range batches {
		marker := " "
		if batch.Active {
			marker = "*"
		}
		cmd.Printf("%s %s  %s\n", marker, batch.BatchID, batch.CreatedAt.Format("2006-01-02 15:04"))
		if batch.EditPrompt != "" {
			cmd.Printf("    %q\n", batch.EditPrompt)
		}
		for _, view := range domain.ViewTypes {
			rev, ok := batch.Views[view]
			if !ok {
				continue
			}
			active := ""
			if rev.IsActive {
				active = " (active)"
			}
			cmd.Printf("    %-5s rev %d  %s  %s%s\n", view, rev.RevisionNumber, rev.ID, rev.ImageURL, active)
		}
		cmd.Println()
	}
	return nil
}

func runRevisionsDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	if err := revisionService.SoftDelete(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("revision %q not found", id)
		}
		return fmt.Errorf("delete revision: %w", err)
	}

	if domain.IsBatchID(id) {
		cmd.Printf("Deleted batch %s\n", id)
	} else {
		cmd.Printf("Deleted revision %s\n", id)
	}
	return nil
}
