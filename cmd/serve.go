package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
	"github.com/reefatlas/reefatlas-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog tree over HTTP",
	Long:  "Read-only JSON API over the tree file: the full tree, region summaries, and the flattened point list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tree, err := catalog.LoadTree(cfg.Catalog.TreeFile)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: catalogMux(tree),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("tree", cfg.Catalog.TreeFile),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func catalogMux(tree *catalog.Tree) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /v1/tree", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tree.Regions)
	})

	mux.HandleFunc("GET /v1/regions", func(w http.ResponseWriter, r *http.Request) {
		type regionSummary struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Zones  int    `json:"zones"`
			Points int    `json:"points"`
		}
		summaries := []regionSummary{}
		for _, region := range tree.Regions {
			sub := &catalog.Tree{Regions: []*catalog.Node{region}}
			counts := sub.CountByKind()
			summaries = append(summaries, regionSummary{
				ID:     region.ID,
				Name:   region.Name,
				Zones:  counts[catalog.KindZone],
				Points: counts[catalog.KindPoint],
			})
		}
		writeJSON(w, http.StatusOK, summaries)
	})

	mux.HandleFunc("GET /v1/points", func(w http.ResponseWriter, r *http.Request) {
		rows := store.Flatten(tree, "")
		region := r.URL.Query().Get("region")
		filtered := []store.PointRow{}
		for _, row := range rows {
			if region != "" && row.Region != region {
				continue
			}
			filtered = append(filtered, row)
		}
		writeJSON(w, http.StatusOK, filtered)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
