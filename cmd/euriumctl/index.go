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

	"github.com/eurium-labs/eurium-contract/indexer"
	"github.com/eurium-labs/eurium-contract/rpc/eurium"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func (a *app) indexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Follow the chain, mirror Eurium state into PostgreSQL and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.CheckIndexer(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.runIndexer(ctx)
		},
	}
}

func (a *app) runIndexer(ctx context.Context) error {
	b, err := dialNode(ctx, a.cfg, false)
	if err != nil {
		return err
	}
	defer b.close()

	maxSupply, err := eurium.NewReader(b.invoker, a.cfg.Contracts.Ledger).MaxSupply()
	if err != nil {
		return fmt.Errorf("read max supply: %w", err)
	}

	db, err := indexer.OpenDB(a.cfg.Indexer.DatabaseURI)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := indexer.NewRepository(indexer.DBHandler{DB: db, Logger: a.log})

	err = repo.Migrate()
	if err != nil {
		return err
	}

	st, ok, err := repo.Load()
	if err != nil {
		return err
	}
	if !ok {
		st = indexer.NewState(a.cfg.Indexer.StartHeight)
		a.log.Info("starting from scratch", zap.Uint32("height", st.Height))
	} else {
		a.log.Info("state restored", zap.Uint32("height", st.Height))
	}

	mirror := indexer.NewMirror(indexer.Contracts{
		Ledger:         a.cfg.Contracts.Ledger,
		ReserveManager: a.cfg.Contracts.ReserveManager,
		Treasury:       a.cfg.Contracts.Treasury,
	}, maxSupply, st)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	x := indexer.New(indexer.Prm{
		Logger:   a.log,
		Chain:    b.rpc,
		Mirror:   mirror,
		Store:    repo,
		Metrics:  indexer.NewMetrics(reg),
		Interval: a.cfg.Indexer.Interval,
	})

	srv := &http.Server{
		Addr:              a.cfg.Indexer.Listen,
		Handler:           indexer.NewHandler(a.log, mirror, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		a.log.Info("serving API", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- x.Run(runCtx)
	}()

	select {
	case err = <-runErr:
	case err = <-srvErr:
		err = fmt.Errorf("API server: %w", err)
		cancel()
		<-runErr
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()

	if sErr := srv.Shutdown(shutdownCtx); sErr != nil {
		a.log.Warn("API server shutdown", zap.Error(sErr))
	}

	return err
}
