package main

import (
	"fmt"

	"github.com/ikovac/met-forecast-api/internal/api"
	"github.com/ikovac/met-forecast-api/internal/config"
	"github.com/ikovac/met-forecast-api/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load configuration: %v", err))
	}

	if err := api.RunAPI(cfg); err != nil {
		logger.Fatal(fmt.Errorf("failed to run forecast api: %v", err))
	}
}
