// Package service implements the forecast caching and time-windowing engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ikovac/met-forecast-api/internal/logger"
	"github.com/ikovac/met-forecast-api/internal/model"
	"github.com/ikovac/met-forecast-api/internal/provider"
	"github.com/ikovac/met-forecast-api/internal/repository"
)

// Repository provides necessary repo methods.
type Repository interface {
	GetMeta(ctx context.Context, coord model.Coordinate) (*model.ForecastMeta, error)
	UpsertMeta(ctx context.Context, meta *model.ForecastMeta) error
	GetCachedResponse(ctx context.Context, coord model.Coordinate) (*model.CachedResponse, error)
	UpsertCachedResponse(ctx context.Context, response *model.CachedResponse) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
	InsertPlace(ctx context.Context, place *model.Place) error
	GetPlaces(ctx context.Context) ([]*model.Place, error)
}

// Fetcher issues conditional requests against the upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context, coord model.Coordinate, ifModifiedSince *time.Time) provider.FetchOutcome
}

// Connectivity reports whether the upstream provider is reachable at all.
// A refresh is skipped entirely while offline.
type Connectivity interface {
	IsOnline() bool
}

// AlwaysOnline is the production connectivity checker.
type AlwaysOnline struct{}

// IsOnline always reports true.
func (AlwaysOnline) IsOnline() bool { return true }

// ForecastService provides windowed forecast queries backed by the cache.
type ForecastService struct {
	repo         Repository
	fetcher      Fetcher
	connectivity Connectivity

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new ForecastService.
func New(repo Repository, fetcher Fetcher, connectivity Connectivity) *ForecastService {
	return &ForecastService{
		repo:         repo,
		fetcher:      fetcher,
		connectivity: connectivity,
		locks:        make(map[string]*sync.Mutex),
	}
}

// Today returns the forecast for the current day, including the current hour
// and the early-morning carry-over into tomorrow.
func (s *ForecastService) Today(ctx context.Context, coord model.Coordinate) model.ForecastResult {
	return s.Range(ctx, coord, TodayWindow(time.Now()))
}

// Tomorrow returns the forecast for the remainder of the next calendar day,
// starting where the today window leaves off.
func (s *ForecastService) Tomorrow(ctx context.Context, coord model.Coordinate) model.ForecastResult {
	return s.Range(ctx, coord, TomorrowWindow(time.Now()))
}

// ComingDays returns the forecast for the days starting two days out.
func (s *ForecastService) ComingDays(ctx context.Context, coord model.Coordinate) model.ForecastResult {
	return s.Range(ctx, coord, ComingDaysWindow(time.Now()))
}

// Range returns the reconciled forecast data inside the given window,
// refreshing the cache first when policy requires it. Refresh failures are
// downgraded to a reason annotation; they never abort a read that can be
// served from cache.
func (s *ForecastService) Range(ctx context.Context, coord model.Coordinate, window model.Window) model.ForecastResult {
	coord = coord.Rounded()

	meta, reason := s.synchronize(ctx, coord)

	cached, err := s.repo.GetCachedResponse(ctx, coord)
	if err != nil {
		if !errors.Is(err, repository.ErrNoCachedResponse) {
			logger.Error(fmt.Errorf("failed to read cached response for %s: %w", coord.Key(), err))
		}
		return emptyResult(reason)
	}

	decoded, err := provider.Decode(cached.Body)
	if err != nil {
		// A malformed payload falls back exactly like a transport failure.
		logger.Error(fmt.Errorf("failed to decode cached response for %s: %w", coord.Key(), err))
		if reason == "" {
			reason = model.ReasonGeneric
		}
		return model.EmptyWithReason(reason)
	}

	data := filterWindow(Reconcile(decoded.Properties.Timeseries), window)
	if len(data) == 0 {
		return emptyResult(reason)
	}

	if reason != "" {
		return model.CachedSuccess(data, meta, reason)
	}
	return model.Success(data, meta)
}

func emptyResult(reason model.FailureReason) model.ForecastResult {
	if reason != "" {
		return model.EmptyWithReason(reason)
	}
	return model.Empty()
}

// filterWindow keeps the data inside the window, ascending by time.
func filterWindow(data []model.ForecastDatum, window model.Window) []model.ForecastDatum {
	var filtered []model.ForecastDatum
	for _, datum := range data {
		if window.Contains(datum.Time) {
			filtered = append(filtered, datum)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Time.Before(filtered[j].Time)
	})

	return filtered
}

// lockFor returns the refresh mutex for a coordinate key. Refreshes for the
// same coordinate serialize; different coordinates never block one another.
func (s *ForecastService) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
