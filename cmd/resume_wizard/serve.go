package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-wizard/internal/config"
	"github.com/jonathan/resume-wizard/internal/rendering"
	"github.com/jonathan/resume-wizard/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveStore string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the wizard steps and the stateless resume endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Wizard store driver: memory, sqlite or postgres (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveStore != "" {
		cfg.Store.Driver = serveStore
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger := newLogger(cfg)

	session, err := config.NewSessionConfig()
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	var latexTemplate string
	if cfg.Template != "" {
		if latexTemplate, err = rendering.ReadTemplate(cfg.Template); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := server.New(server.Options{
		Config:        cfg,
		Session:       session,
		Store:         store,
		Engine:        engine,
		LaTeXTemplate: latexTemplate,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}

// contextOrBackground returns the command context, which is nil when a command is
// executed without ExecuteContext.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
