package main

import (
	"os"

	"listing-pricer/pkg/logger"
)

func main() {
	cfg := LoadConfiguration()

	app, err := NewApp(cfg)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to start: %v", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer()
}
