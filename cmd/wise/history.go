package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/waste-wise/internal/cli"
	"github.com/Veraticus/waste-wise/internal/engine"
	"github.com/Veraticus/waste-wise/internal/history"
	"github.com/Veraticus/waste-wise/internal/imagefile"
	"github.com/Veraticus/waste-wise/internal/model"
	"github.com/Veraticus/waste-wise/internal/tui"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage past classifications",
		Long: `Show the most recent classifications, newest first. Only the latest
entries are kept (50 by default, see history.limit).`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List past classifications",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	})
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyClearCmd())
	cmd.AddCommand(historyExportCmd())
	cmd.AddCommand(historyBrowseCmd())

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.renderer.RenderHistory(a.history.Load(cmd.Context()))
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a past classification",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	cmd.Flags().String("save-image", "", "Write the stored snapshot to this file")
	return cmd
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	savePath, _ := cmd.Flags().GetString("save-image")

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entry, ok := history.Find(a.history.Load(cmd.Context()), args[0])
	if !ok {
		return fmt.Errorf("no history entry with id %q", args[0])
	}

	if err := a.renderer.RenderEntry(entry); err != nil {
		return err
	}

	if savePath == "" {
		return nil
	}
	written, err := saveSnapshot(entry, savePath)
	if err != nil {
		return err
	}
	return a.renderer.Success("Snapshot saved to " + written)
}

// saveSnapshot decodes the entry's data URI to path, adding an extension
// that matches the stored MIME type when path has none.
func saveSnapshot(entry model.HistoryEntry, path string) (string, error) {
	if entry.ImagePreview == "" {
		return "", fmt.Errorf("entry %s has no stored snapshot", entry.ID)
	}

	data, mimeType, err := imagefile.DecodeDataURL(entry.ImagePreview)
	if err != nil {
		return "", fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if filepath.Ext(path) == "" {
		path += imagefile.ExtensionFor(mimeType)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

func historyClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all past classifications",
		Long: `Delete the whole history. Your total and streak are kept.

Asks for confirmation unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: runHistoryClear,
	}
	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	ctx := cmd.Context()

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entries := a.history.Load(ctx)
	if len(entries) == 0 {
		return a.renderer.Info("History is already empty.")
	}

	if !force {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), a.styles())
		question := fmt.Sprintf("Delete all %d history entries?", len(entries))
		ok, err := prompter.Confirm(ctx, question)
		if err != nil {
			return err
		}
		if !ok {
			return a.renderer.Info("History left unchanged.")
		}
	}

	if err := a.history.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return a.renderer.Success(fmt.Sprintf("Cleared %d history entries", len(entries)))
}

func historyExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE:  runHistoryExport,
	}
	cmd.Flags().String("format", "json", "Output format (json, yaml)")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Bool("include-images", false, "Keep the data URI snapshots in the export")
	return cmd
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	includeImages, _ := cmd.Flags().GetBool("include-images")

	format = strings.ToLower(format)
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported export format %q (use json or yaml)", format)
	}

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entries := a.history.Load(cmd.Context())
	if !includeImages {
		for i := range entries {
			entries[i].ImagePreview = ""
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := exportHistory(w, entries, format); err != nil {
		return err
	}

	if output != "" {
		return a.renderer.Success(fmt.Sprintf("Exported %d entries to %s", len(entries), output))
	}
	return nil
}

func exportHistory(w io.Writer, entries []model.HistoryEntry, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}

func historyBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the history interactively",
		Long: `Open a full-screen history browser. Press Enter to restore an entry,
c to clear everything and t to switch between light and dark.`,
		Args: cobra.NoArgs,
		RunE: runHistoryBrowse,
	}
}

func runHistoryBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, cleanup, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	eng := engine.New(nil, a.history, a.stats, engine.WithLogger(slog.Default()))
	restored, err := tui.Run(ctx, tui.Config{
		Controller: engine.NewSession(ctx, eng),
		Toggler:    a.prefs,
		Theme:      a.prefs.Theme(ctx),
		Location:   loc,
	})
	if err != nil {
		return err
	}
	if restored != nil {
		// The theme may have been toggled inside the browser.
		return cli.NewRenderer(cmd.OutOrStdout(), a.prefs.Theme(ctx), loc).RenderEntry(*restored)
	}
	return nil
}
