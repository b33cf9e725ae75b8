package main

import (
	"fmt"
	"os"

	"github.com/figaroapp/figaro/internal/api"
	"github.com/figaroapp/figaro/internal/config"
	"github.com/figaroapp/figaro/internal/store"
	"github.com/figaroapp/figaro/internal/tui/commands"
	"github.com/figaroapp/figaro/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout())
	if err != nil {
		return fmt.Errorf("creating booking client: %w", err)
	}

	// A broken snapshot store degrades to online-only operation.
	var cache commands.Cache
	snap, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: snapshot store unavailable: %v\n", err)
	} else {
		cache = snap
		defer func() { _ = snap.Close() }()
	}

	app := ui.NewApp(client, cache, cfg)
	return app.Execute()
}
