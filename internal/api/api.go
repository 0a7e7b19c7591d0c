package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/ikovac/met-forecast-api/internal/config"
	"github.com/ikovac/met-forecast-api/internal/logger"
	"github.com/ikovac/met-forecast-api/internal/provider"
	"github.com/ikovac/met-forecast-api/internal/repository"
	"github.com/ikovac/met-forecast-api/internal/scheduler"
	"github.com/ikovac/met-forecast-api/internal/service"
	"github.com/ikovac/met-forecast-api/internal/transport/rest/handler"
)

// RunAPI runs the forecast service API.
func RunAPI(cfg *config.Config) error {
	repo, err := repository.New(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error(err)
		}
	}()

	fetcher := provider.NewClient(provider.Config{
		BaseURL:        cfg.ProviderBaseURL,
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.ClientTimeout,
		BreakerTimeout: cfg.BreakerTimeout,
	})

	svc := service.New(repo, fetcher, service.AlwaysOnline{})
	server := handler.NewForecastServer(svc)

	jobs := scheduler.New(svc, cfg.SweepInterval, cfg.RefreshInterval, cfg.Retention)
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer jobs.Stop()

	r := mux.NewRouter()

	r.HandleFunc("/forecast/today", server.GetTodayHandler).Methods("GET")
	r.HandleFunc("/forecast/tomorrow", server.GetTomorrowHandler).Methods("GET")
	r.HandleFunc("/forecast/coming", server.GetComingDaysHandler).Methods("GET")
	r.HandleFunc("/forecast", server.GetRangeHandler).Methods("GET")
	r.HandleFunc("/places", server.GetPlacesHandler).Methods("GET")
	r.HandleFunc("/places", server.CreatePlaceHandler).Methods("POST")
	r.HandleFunc("/places/nearest", server.GetNearestPlaceHandler).Methods("GET")

	logger.Info(fmt.Sprintf("Starting forecast service api at port %s", cfg.Port))

	options := setupCorsOptions(cfg.CORSOrigin)
	return http.ListenAndServe(":"+cfg.Port, handlers.CORS(options...)(r))
}
