package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/waste-wise/internal/model"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE:      runTheme,
	}
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		return a.renderer.Info("Theme: " + string(a.prefs.Theme(ctx)))
	}

	var theme model.Theme
	if args[0] == "toggle" {
		theme, err = a.prefs.ToggleTheme(ctx)
	} else {
		theme, err = model.ParseTheme(args[0])
		if err == nil {
			err = a.prefs.SetTheme(ctx, theme)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	return a.renderer.Success("Theme set to " + string(theme))
}
