package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/waste-wise/internal/cli"
	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/model"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = newRootCmd()

	// displayTheme is the persisted preference once a command has opened
	// storage, used for errors printed after the command returns.
	displayTheme = model.DefaultTheme
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wise",
		Short: "♻️  AI waste classification from a photo",
		Long: `waste-wise: snap a photo of a waste item and get its category, a confidence
and a disposal tip. Every classification is kept in a short history and
counts toward your daily streak.`,
		PersistentPreRunE: initConfig,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/wise/config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	cmd.PersistentFlags().Bool("ephemeral", false, "keep history and stats in memory for this run only")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(classifyCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(themeCmd())
	cmd.AddCommand(guideCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		_ = renderError(os.Stderr, err)
		os.Exit(1)
	}
}

func renderError(w io.Writer, err error) error {
	return cli.NewRenderer(w, displayTheme, nil).RenderError(err)
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/wise", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// WISE_LLM_PROVIDER overrides llm.provider, and so on.
	viper.SetEnvPrefix("WISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wise version %s\n", version)
			return err
		},
	}
}
