package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wallcheck/pkg/recipes"
)

// defaultRecipesFile is read when no file argument is given.
const defaultRecipesFile = "recipes.json"

// recipesCommand creates the recipes command.
func (c *CLI) recipesCommand() *cobra.Command {
	var item string

	cmd := &cobra.Command{
		Use:   "recipes [file]",
		Short: "List items and their ingredients from a recipes table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultRecipesFile
			if len(args) == 1 {
				path = args[0]
			}
			table, err := recipes.Load(path)
			if err != nil {
				return err
			}
			c.Logger.Debug("Loaded recipes", "path", path, "items", len(table))

			w := cmd.OutOrStdout()
			if item != "" {
				ingredients := table.Ingredients(item)
				if ingredients == nil {
					return fmt.Errorf("no recipe for %q", item)
				}
				_, err := fmt.Fprintln(w, strings.Join(ingredients, "\n"))
				return err
			}

			items := table.Items()
			if isTerminal(w) {
				writeRecipes(w, items, table.Ingredients)
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(w, "%s: %s\n", it, strings.Join(table.Ingredients(it), ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "print the ingredients of a single item")

	return cmd
}
