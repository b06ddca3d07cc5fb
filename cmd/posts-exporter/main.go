package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/growth4u/contentflow/internal/config"
	"github.com/growth4u/contentflow/internal/logger"
	"github.com/growth4u/contentflow/internal/models"
	"github.com/growth4u/contentflow/internal/services"
)

var (
	exporterInstance *services.PostsExporterFunction
	once             sync.Once
	initErr          error
)

func init() {
	slog.SetDefault(logger.New(os.Stdout, "info"))

	functions.HTTP("HandlePostsExport", handlePostsExport)
}

// main is required by the Go Functions Framework.
func main() {}

func handlePostsExport(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel))
		exporterInstance, initErr = services.NewPostsExporter(context.Background(), cfg)
	})
	if initErr != nil {
		slog.Error("Posts exporter initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.PostsExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}

	res, err := exporterInstance.Process(r.Context(), &req)
	if err != nil {
		http.Error(w, "Internal Server Error: processing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
