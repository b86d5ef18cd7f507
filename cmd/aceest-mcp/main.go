package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/claude/aceest/internal/client"
	"github.com/claude/aceest/internal/mcp"
	"github.com/claude/aceest/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("ACEEST_SERVER_URL"), "tracker base URL; when empty the -data file is used directly")
	dataPath := flag.String("data", "workouts.json", "workouts file for local mode")
	flag.Parse()

	// stdout carries the protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = client.New(*serverURL)
		log.Info("MCP using remote tracker", "server", *serverURL)
	} else {
		store, err := storage.Open(*dataPath, storage.Options{}, log)
		if err != nil {
			log.Error("failed to open workouts file", "path", *dataPath, "error", err)
			os.Exit(1)
		}
		ds = mcp.StoreSource{Store: store}
		log.Info("MCP using local workouts file", "path", store.Path())
	}

	if err := server.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
