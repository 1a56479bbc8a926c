package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [product-id]",
	Short: "Edit a tech pack conversationally",
	Long: `Starts an interactive session against a tech pack. Describe changes in
plain language and the assistant applies them as structured edits:

  > change the product name to Aria Tote
  > add leather to the materials
  > what is the current retail price?

Type 'exit' or press Ctrl-D to leave the session.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	productID := args[0]

	// Fail early when the pack does not exist.
	if _, err := techpackService.Get(cmd.Context(), productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("tech pack %q not found; create it first with 'techpack create %s'", productID, productID)
		}
		return fmt.Errorf("get tech pack: %w", err)
	}

	editor, completion, err := buildEditor()
	if err != nil {
		return err
	}
	defer completion.Close()

	session := domain.NewSession(uuid.NewString(), productID)

	cmd.Printf("Editing tech pack %q with %s. Type 'exit' to leave.\n", productID, completion.ModelName())
	cmd.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		msg, err := editor.HandleMessage(cmd.Context(), session, line)
		if err != nil {
			cmd.PrintErrf("error: %v\n", err)
			continue
		}

		cmd.Println()
		cmd.Println(msg.Content)
		cmd.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	cmd.Println("Session ended.")
	return nil
}
