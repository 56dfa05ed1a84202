package main

import (
	"context"
	"fmt"

	"github.com/theunsaid/draft-keeper/internal/adapter"
	"github.com/theunsaid/draft-keeper/internal/client"
	"github.com/theunsaid/draft-keeper/internal/config"
	"github.com/theunsaid/draft-keeper/internal/logger"
	"github.com/theunsaid/draft-keeper/internal/service"
	"github.com/theunsaid/draft-keeper/internal/store"
	"github.com/theunsaid/draft-keeper/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClient("keeper-client")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateClient(); err != nil {
		log.Fatal().Err(err).Msg("invalid client config")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Client.ServerURL,
		Timeout: cfg.Client.RequestTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	cacheDB, err := store.NewConnectSQLite(context.Background(), cfg.Client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local cache")
	}
	cache := store.NewDraftCache(cacheDB, log)
	defer cache.Close()

	services := service.NewClientServices(serverAdapter, cache, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
