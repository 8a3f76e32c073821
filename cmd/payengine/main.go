package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/payengine/internal/adapter/csvio"
	adapterhttp "github.com/iho/payengine/internal/adapter/http"
	"github.com/iho/payengine/internal/adapter/http/handler"
	"github.com/iho/payengine/internal/adapter/repository/memory"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/infrastructure/logger"
	"github.com/iho/payengine/internal/infrastructure/metrics"
	"github.com/iho/payengine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	rootCmd := &cobra.Command{
		Use:           "payengine",
		Short:         "Transaction engine for client account ledgers",
		Long:          `payengine folds a stream of deposits, withdrawals, disputes, resolves and chargebacks into per-client account balances.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	processCmd := &cobra.Command{
		Use:   "process <transactions.csv>",
		Short: "Process a transaction file and print account snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cfg, log, args[0])
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transaction engine as an HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg, log)
		},
	}

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// runProcess reads the transaction file, folds it through the engine
// and writes the final account snapshots as CSV to stdout.
func runProcess(cfg *config.Config, log zerolog.Logger, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	processorUC := usecase.NewProcessorUseCase(repo, nil, log)
	ledgerUC := usecase.NewLedgerUseCase(repo)

	reader := csvio.NewTransactionReader(file, log)
	summary, err := processorUC.ProcessStream(ctx, reader)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Int("skipped", reader.Skipped()).
		Msg("stream processed")

	snapshots, err := ledgerUC.Snapshot(ctx)
	if err != nil {
		return err
	}

	writer := csvio.NewSnapshotWriter(os.Stdout, cfg.OutputPrecision)
	if err := writer.Write(snapshots); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}

	return nil
}

// runServe exposes the engine over HTTP until interrupted.
func runServe(cfg *config.Config, log zerolog.Logger) error {
	repo := memory.NewLedgerRepository()
	m := metrics.New()
	processorUC := usecase.NewProcessorUseCase(repo, m, log)
	ledgerUC := usecase.NewLedgerUseCase(repo)

	router := adapterhttp.NewRouter(adapterhttp.RouterConfig{
		LedgerHandler: handler.NewLedgerHandler(processorUC, ledgerUC, m, log),
		HealthHandler: handler.NewHealthHandler(),
		Logger:        log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
