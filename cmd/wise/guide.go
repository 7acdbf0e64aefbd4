package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/waste-wise/internal/guide"
	"github.com/Veraticus/waste-wise/internal/tui/themes"
)

func guideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide [category]",
		Short: "Show the waste category guide",
		Long: `Show what each common waste category covers and how to dispose of it.
Pass a category name to show just that one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGuide,
	}
	cmd.Flags().Bool("facts", false, "List every recycling fact instead")
	return cmd
}

func runGuide(cmd *cobra.Command, args []string) error {
	facts, _ := cmd.Flags().GetBool("facts")

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if facts {
		for _, f := range guide.Facts() {
			if err := a.renderer.Info(f); err != nil {
				return err
			}
		}
		return nil
	}

	if len(args) == 1 {
		c, ok := guide.Lookup(args[0])
		if !ok {
			return fmt.Errorf("no guide entry for %q", args[0])
		}
		styles := a.styles()
		content := c.Description + "\n\n" +
			styles.Field("Examples", c.Examples) + "\n" +
			styles.Field("Tip", c.Tip)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), styles.RenderBox(themes.GetCategoryIcon(c.Name)+" "+c.Name, content))
		return err
	}

	return a.renderer.RenderGuide(guide.RandomFact(nil))
}
