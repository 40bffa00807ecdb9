package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/clinisys/labreports/internal/activity"
	"github.com/clinisys/labreports/internal/config"
	"github.com/clinisys/labreports/internal/ingest"
	"github.com/clinisys/labreports/internal/parse"
	"github.com/clinisys/labreports/internal/pdftext"
	"github.com/clinisys/labreports/internal/server"
	"github.com/clinisys/labreports/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures the global zerolog logger.
func setupLogging(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// newParser selects remote or in-process parsing.
func newParser(cfg *config.Config) parse.Parser {
	if cfg.ParseURL != "" {
		return parse.NewClient(cfg.ParseURL, cfg.ParseTimeout)
	}
	return parse.NewService(cfg.MaxFileSize)
}

// newStore builds the configured record store backend.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewMemory(), nil
	case config.StoreFirestore:
		return store.NewFirestore(ctx, cfg.FirestoreProject, cfg.CredentialsFile, cfg.CollectionPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

func run() error {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	cfg.Version = version

	log := setupLogging(cfg)
	log.Info().
		Str("version", version).
		Str("build_time", buildTime).
		Str("git_commit", gitCommit).
		Str("store", cfg.StoreBackend).
		Msg("starting lab report server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}

	files, err := server.NewFileStore(cfg.DataDirectory)
	if err != nil {
		return fmt.Errorf("failed to create file store: %w", err)
	}

	parser := newParser(cfg)
	act := activity.NewLogger(st, cfg.Operator, log)
	ingestor := ingest.New(parser, st, act, cfg.ParseTimeout, log)
	ingestor.Validate = pdftext.NewValidator(cfg.MaxFileSize).ValidateBytes

	srv := server.New(cfg, parser, ingestor, st, files, log)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-signalCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	return srv.Start(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
