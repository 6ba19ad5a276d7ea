package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/sprinklerworks/sprinklerctl/internal/buildinfo"
	"github.com/sprinklerworks/sprinklerctl/internal/console/cli"
	"github.com/sprinklerworks/sprinklerctl/internal/console/config"
	"github.com/sprinklerworks/sprinklerctl/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
