package main

import (
	"os"

	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/fetch"
	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/tabular"
	"github.com/custodia-labs/cantus-corpus/internal/adapters/driving/cli"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/core/services"
	"github.com/custodia-labs/cantus-corpus/internal/logger"
	"github.com/custodia-labs/cantus-corpus/internal/transforms"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildServices(configDir string) (*cli.Services, error) {
	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("Settings unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	tables := tabular.NewCSV()
	return &cli.Services{
		CorpusOpener: services.NewCorpusOpener(
			tables,
			tables,
			fetch.NewFetcher(settings.Fetch),
			file.YAMLFilterCodec{},
		),
		SettingsService: settingsService,
		Transforms:      transforms.DefaultRegistry(),
		FilterCodecFor:  file.FilterCodecFor,
	}, nil
}
