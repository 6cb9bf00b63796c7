package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/sensorhub/internal/client/cli"
	"github.com/dmitrijs2005/sensorhub/internal/client/config"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)

}
