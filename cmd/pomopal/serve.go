package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/pomopal/internal/config"
	"github.com/verte-zerg/pomopal/internal/history"
	"github.com/verte-zerg/pomopal/internal/logging"
	"github.com/verte-zerg/pomopal/internal/pomodoro"
	"github.com/verte-zerg/pomopal/internal/server"
	"github.com/verte-zerg/pomopal/internal/store"
)

const defaultAddr = server.DefaultAddr

var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless timer with an HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addTimerFlags(cmd.Flags())
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, timerCfg, err := loadTimerConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)

	comp, err := loadCompanion()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	session, err := pomodoro.NewSession(timerCfg, pomodoro.WithLogger(logger))
	if err != nil {
		return err
	}
	driver := pomodoro.NewDriver(session, 0)
	driver.Subscribe(history.NewRecorder(st, logger).Handle)
	srv := server.New(driver, comp, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go driver.Run(ctx)
	if err := srv.Run(ctx, serveAddr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
