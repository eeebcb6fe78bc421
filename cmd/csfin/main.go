package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/csfin/portfolio/internal/app"
	"github.com/csfin/portfolio/internal/common"
)

func main() {
	configPath := flag.String("config", os.Getenv("CSFIN_CONFIG"), "path to a TOML config file")
	quiet := flag.Bool("quiet", false, "suppress the startup banner")
	flag.Parse()

	common.LoadVersionFromFile()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}

	config, err := common.LoadConfig(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		common.PrintBanner(config)
	}

	a, err := app.NewApp(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("batch run failed")
		os.Exit(1)
	}
}
