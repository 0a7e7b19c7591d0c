package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/umahmood/haversine"

	"github.com/ikovac/met-forecast-api/internal/model"
)

// ErrPlaceNameRequired is returned when a place is saved without a name.
var ErrPlaceNameRequired = errors.New("place name must not be empty")

// SavePlace stores a new place to track forecasts for.
func (s *ForecastService) SavePlace(ctx context.Context, place *model.Place) error {
	if place.Name == "" {
		return ErrPlaceNameRequired
	}

	if err := s.repo.InsertPlace(ctx, place); err != nil {
		return fmt.Errorf("failed to save place: %w", err)
	}

	return nil
}

// Places lists all saved places.
func (s *ForecastService) Places(ctx context.Context) ([]*model.Place, error) {
	places, err := s.repo.GetPlaces(ctx)
	if err != nil {
		return nil, err
	}

	return places, nil
}

// NearestPlace finds the saved place closest to the given coordinate.
func (s *ForecastService) NearestPlace(ctx context.Context, coord model.Coordinate) (*model.Place, error) {
	places, err := s.repo.GetPlaces(ctx)
	if err != nil {
		return nil, err
	}

	return findNearestPlace(coord, places), nil
}

func findNearestPlace(coord model.Coordinate, places []*model.Place) *model.Place {
	target := haversine.Coord{Lat: coord.Latitude, Lon: coord.Longitude}

	var minDistance float64
	minIndex := 0

	for i, place := range places {
		placeCoords := haversine.Coord{Lat: place.Latitude, Lon: place.Longitude}

		_, km := haversine.Distance(target, placeCoords)
		if i == 0 || km < minDistance {
			minDistance = km
			minIndex = i
		}
	}

	return places[minIndex]
}
