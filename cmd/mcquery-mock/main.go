package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docmcquery/mcquery-tui/internal/mockapi"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		fixtures string
		latency  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mcquery-mock",
		Short: "Serve canned patients and search results for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(addr, fixtures, latency)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":5001", "Listen address")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "YAML fixtures file (defaults to the built-in set)")
	cmd.Flags().DurationVar(&latency, "latency", 750*time.Millisecond, "Artificial delay before search responses")
	return cmd
}

func serve(addr, fixturesPath string, latency time.Duration) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	fx := mockapi.DefaultFixtures()
	if fixturesPath != "" {
		data, err := os.ReadFile(fixturesPath)
		if err != nil {
			return fmt.Errorf("read fixtures: %w", err)
		}
		if fx, err = mockapi.LoadFixtures(data); err != nil {
			return err
		}
	}

	e := mockapi.New(fx, logger, mockapi.Options{Latency: latency})

	go func() {
		logger.Info().Str("addr", addr).Int("patients", len(fx.Patients)).Msg("mock backend listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return e.Shutdown(ctx)
}
