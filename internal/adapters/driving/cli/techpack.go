package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

var createName string

var createCmd = &cobra.Command{
	Use:   "create [product-id]",
	Short: "Create a new tech pack",
	Long: `Creates a tech pack seeded with default values for every section.
The product ID identifies the pack in all other commands.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var showCmd = &cobra.Command{
	Use:   "show [product-id]",
	Short: "Show a tech pack",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var setCmd = &cobra.Command{
	Use:   "set [product-id] [section] [value]",
	Short: "Set a tech pack section",
	Long: `Sets a section to a new value. The value is coerced to the section's
canonical shape: list sections accept JSON arrays or comma-separated text,
object sections accept JSON objects.

Use section.field to target a nested field of an object section:

  techpack set tote-01 productName "Aria Tote"
  techpack set tote-01 materials '[{"material": "Canvas"}]'
  techpack set tote-01 colors.primaryColors "Navy, Cream"`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tech packs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the recognised section identifiers",
	Args:  cobra.NoArgs,
	Run:   runSections,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "initial product name")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	productID := args[0]

	pack, err := techpackService.Create(cmd.Context(), productID, createName)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("tech pack %q already exists", productID)
		}
		return fmt.Errorf("create tech pack: %w", err)
	}

	cmd.Printf("Created tech pack %q\n", pack.ProductID)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	pack, err := techpackService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("tech pack %q not found", args[0])
		}
		return fmt.Errorf("get tech pack: %w", err)
	}

	cmd.Printf("Tech pack: %s\n", pack.ProductID)
	cmd.Println()
	for _, section := range domain.SectionNames() {
		value, ok := pack.Sections[section]
		if !ok {
			continue
		}
		cmd.Printf("[%s]\n", section)
		printValue(cmd, value, "  ")
		cmd.Println()
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	productID, target, raw := args[0], args[1], args[2]

	section, field := target, ""
	if i := strings.IndexByte(target, '.'); i >= 0 {
		section, field = target[:i], target[i+1:]
	}
	if !domain.KnownSection(section) {
		return fmt.Errorf("unknown section %q; run 'techpack sections' for the list", section)
	}

	// A JSON literal becomes structured input; anything else stays text
	// and the coercer decides what to do with it.
	var candidate any = raw
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		if _, isString := parsed.(string); !isString {
			candidate = parsed
		}
	}

	stored, err := techpackService.SetSection(cmd.Context(), productID, section, field, candidate)
	if err != nil {
		return fmt.Errorf("set %s: %w", target, err)
	}

	cmd.Printf("Updated %s:\n", target)
	printValue(cmd, stored, "  ")
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	ids, err := techpackService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list tech packs: %w", err)
	}

	if len(ids) == 0 {
		cmd.Println("No tech packs. Create one with 'techpack create <product-id>'.")
		return nil
	}

	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}

func runSections(cmd *cobra.Command, _ []string) {
	for _, section := range domain.SectionNames() {
		cmd.Printf("%-24s %s\n", section, domain.ShapeOf(section))
	}
}

// printValue renders a section value for terminal display.
func printValue(cmd *cobra.Command, value domain.Value, indent string) {
	switch v := value.(type) {
	case domain.Scalar:
		cmd.Printf("%s%s\n", indent, string(v))
	case domain.List:
		for i, entry := range v {
			cmd.Printf("%s%d.\n", indent, i+1)
			printValue(cmd, entry, indent+"  ")
		}
	case domain.Record:
		for _, key := range sortedKeys(v) {
			if v[key] == "" {
				continue
			}
			cmd.Printf("%s%s: %s\n", indent, key, v[key])
		}
	case domain.Object:
		for _, key := range sortedObjectKeys(v) {
			cmd.Printf("%s%s:\n", indent, key)
			printValue(cmd, v[key], indent+"  ")
		}
	}
}

func sortedKeys(r domain.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedObjectKeys(o domain.Object) []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
