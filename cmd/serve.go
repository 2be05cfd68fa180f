package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ess-tools/atlas-cli/internal/dashboard"
	"github.com/ess-tools/atlas-cli/internal/model"
)

var (
	servePort      int
	serveDatasetID string
	serveVar       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the linked-selection dashboard server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog := model.DefaultCatalog()
		if catalog.ByName(serveVar) == nil {
			return eris.Errorf("unknown variable %q", serveVar)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, obs, err := resolveDataset(ctx, st, serveDatasetID)
		if err != nil {
			return err
		}

		server := dashboard.New(obs, serveVar, catalog.Label(serveVar), cfg.Server)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting dashboard",
			zap.Int("port", port),
			zap.String("dataset", rec.ID),
			zap.String("variable", serveVar),
			zap.Int("observations", len(obs)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveDatasetID, "dataset", "", "dataset ID (default: most recent import)")
	serveCmd.Flags().StringVar(&serveVar, "var", "stflife", "active variable for summaries and region means")
	rootCmd.AddCommand(serveCmd)
}
