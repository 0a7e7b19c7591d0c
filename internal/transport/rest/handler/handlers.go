package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ikovac/met-forecast-api/internal/logger"
	"github.com/ikovac/met-forecast-api/internal/model"
	"github.com/ikovac/met-forecast-api/internal/repository"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go ForecastService

var validate = validator.New()

// ForecastService provides forecast query and place methods.
type ForecastService interface {
	Today(ctx context.Context, coord model.Coordinate) model.ForecastResult
	Tomorrow(ctx context.Context, coord model.Coordinate) model.ForecastResult
	ComingDays(ctx context.Context, coord model.Coordinate) model.ForecastResult
	Range(ctx context.Context, coord model.Coordinate, window model.Window) model.ForecastResult
	Places(ctx context.Context) ([]*model.Place, error)
	SavePlace(ctx context.Context, place *model.Place) error
	NearestPlace(ctx context.Context, coord model.Coordinate) (*model.Place, error)
}

// ForecastServer is a server for forecast request processing.
type ForecastServer struct {
	service ForecastService
}

// NewForecastServer creates new ForecastServer.
func NewForecastServer(service ForecastService) *ForecastServer {
	return &ForecastServer{service}
}

// forecastResponse is the payload for successful forecast queries.
type forecastResponse struct {
	Data    []model.ForecastDatum `json:"data"`
	Meta    *model.ForecastMeta   `json:"meta,omitempty"`
	Warning string                `json:"warning,omitempty"`
}

// GetTodayHandler handles the today-window forecast request.
func (s *ForecastServer) GetTodayHandler(w http.ResponseWriter, r *http.Request) {
	coord, err := validateCoordinateParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, s.service.Today(r.Context(), coord))
}

// GetTomorrowHandler handles the tomorrow-window forecast request.
func (s *ForecastServer) GetTomorrowHandler(w http.ResponseWriter, r *http.Request) {
	coord, err := validateCoordinateParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, s.service.Tomorrow(r.Context(), coord))
}

// GetComingDaysHandler handles the coming-days forecast request.
func (s *ForecastServer) GetComingDaysHandler(w http.ResponseWriter, r *http.Request) {
	coord, err := validateCoordinateParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, s.service.ComingDays(r.Context(), coord))
}

// GetRangeHandler handles forecast requests with a caller-supplied window.
func (s *ForecastServer) GetRangeHandler(w http.ResponseWriter, r *http.Request) {
	coord, err := validateCoordinateParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	window, err := validateWindowParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, s.service.Range(r.Context(), coord, window))
}

// GetPlacesHandler handles the saved places listing request.
func (s *ForecastServer) GetPlacesHandler(w http.ResponseWriter, r *http.Request) {
	places, err := s.service.Places(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoPlaces) {
			respondErr(w, http.StatusNotFound, err)
			return
		}
		logger.Error(fmt.Errorf("failed to get places: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, places)
}

// CreatePlaceHandler handles saved place creation.
func (s *ForecastServer) CreatePlaceHandler(w http.ResponseWriter, r *http.Request) {
	var place model.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, fmt.Errorf("invalid place payload: %w", err))
		return
	}

	if err := validate.Struct(placeBody{
		Name:      place.Name,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	}); err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	if err := s.service.SavePlace(r.Context(), &place); err != nil {
		logger.Error(fmt.Errorf("failed to save place: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusCreated, place)
}

// GetNearestPlaceHandler handles the nearest saved place lookup.
func (s *ForecastServer) GetNearestPlaceHandler(w http.ResponseWriter, r *http.Request) {
	coord, err := validateCoordinateParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	place, err := s.service.NearestPlace(r.Context(), coord)
	if err != nil {
		if errors.Is(err, repository.ErrNoPlaces) {
			respondErr(w, http.StatusNotFound, err)
			return
		}
		logger.Error(fmt.Errorf("failed to find nearest place: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, place)
}

// writeResult maps a ForecastResult variant onto an HTTP response.
func writeResult(w http.ResponseWriter, result model.ForecastResult) {
	switch result.Status {
	case model.StatusSuccess:
		respond(w, http.StatusOK, forecastResponse{Data: result.Data, Meta: result.Meta})
	case model.StatusCachedSuccess:
		respond(w, http.StatusOK, forecastResponse{Data: result.Data, Meta: result.Meta, Warning: string(result.Reason)})
	case model.StatusEmptyWithReason:
		respondErr(w, http.StatusBadGateway, fmt.Errorf("no forecast data available: %s", result.Reason))
	default:
		respondErr(w, http.StatusNotFound, errors.New("no forecast data for the requested window"))
	}
}

// coordinateQuery bounds-checks the lat/lon query parameters.
type coordinateQuery struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// placeBody bounds-checks the place creation payload.
type placeBody struct {
	Name      string  `validate:"required"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

func validateCoordinateParams(params url.Values) (model.Coordinate, error) {
	latStr := params.Get("lat")
	if latStr == "" {
		return model.Coordinate{}, errors.New("lat parameter not provided in query")
	}

	lonStr := params.Get("lon")
	if lonStr == "" {
		return model.Coordinate{}, errors.New("lon parameter not provided in query")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("lat parameter is not a number: %w", err)
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("lon parameter is not a number: %w", err)
	}

	if err := validate.Struct(coordinateQuery{Latitude: lat, Longitude: lon}); err != nil {
		return model.Coordinate{}, fmt.Errorf("coordinate out of range: %w", err)
	}

	return model.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func validateWindowParams(params url.Values) (model.Window, error) {
	fromStr := params.Get("from")
	if fromStr == "" {
		return model.Window{}, errors.New("from parameter not provided in query")
	}

	toStr := params.Get("to")
	if toStr == "" {
		return model.Window{}, errors.New("to parameter not provided in query")
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return model.Window{}, fmt.Errorf("from parameter is not an RFC3339 timestamp: %w", err)
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return model.Window{}, fmt.Errorf("to parameter is not an RFC3339 timestamp: %w", err)
	}

	if to.Before(from) {
		return model.Window{}, errors.New("to parameter must not precede from")
	}

	return model.Window{Start: from, End: to}, nil
}
