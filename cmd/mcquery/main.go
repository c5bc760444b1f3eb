package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docmcquery/mcquery-tui/internal/api"
	"github.com/docmcquery/mcquery-tui/internal/auth"
	"github.com/docmcquery/mcquery-tui/internal/config"
	"github.com/docmcquery/mcquery-tui/internal/logging"
	"github.com/docmcquery/mcquery-tui/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:           "mcquery",
		Short:         "Search related case studies and similar patients from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.Context(), v, configPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.String("base-url", "", "Backend base URL (overrides api.base_url)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Log file path")
	_ = v.BindPFlag("api.base_url", flags.Lookup("base-url"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))

	return cmd
}

func run(ctx context.Context, v *viper.Viper, configPath string) error {
	cfg, err := config.LoadWith(v, configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info().Str("version", version).Str("base_url", cfg.API.BaseURL).Msg("starting")

	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	if err != nil {
		return err
	}

	authn, err := auth.NewAuthenticator(cfg.Auth.Password, cfg.Auth.SessionTTL)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	opener := browser.New(cfg.UI.Browser, io.Discard, io.Discard)
	app := tui.NewApp(ctx, *cfg, client, authn, opener, logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
