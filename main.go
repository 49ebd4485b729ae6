package main

import (
	"os"

	"github.com/harrisonrobin/todo/pkg/config"
	"github.com/harrisonrobin/todo/pkg/logger"
	"github.com/harrisonrobin/todo/pkg/menu"
	"github.com/harrisonrobin/todo/pkg/storage"
)

func main() {
	// 1. Load config; a broken file falls back to defaults.
	cfg, cfgErr := config.Load()

	// 2. Logging goes to stderr so the menu owns stdout.
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if cfgErr != nil {
		logger.Warn("using default config", "error", cfgErr)
	}

	// 3. Bind the backing file and hand it to the menu.
	store := storage.New(cfg.DataFile)
	logger.Debug("using task file", "path", store.Path, "format", store.Format())

	session := menu.NewSession(store, os.Stdin, os.Stdout)
	if err := session.Run(); err != nil {
		logger.Error("menu stopped", "error", err)
	}
}
