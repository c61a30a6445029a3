package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/lumina-journal/lumina/internal/client/cli"
	"github.com/lumina-journal/lumina/internal/client/config"
	"github.com/lumina-journal/lumina/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
