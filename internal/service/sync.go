package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikovac/met-forecast-api/internal/logger"
	"github.com/ikovac/met-forecast-api/internal/model"
	"github.com/ikovac/met-forecast-api/internal/provider"
	"github.com/ikovac/met-forecast-api/internal/repository"
)

// synchronize brings the stores up to date for a coordinate when the cached
// metadata is missing or expired and the provider is reachable. It returns
// the current metadata and, when a refresh attempt failed, the reason. It
// never returns an error: the read path always proceeds.
func (s *ForecastService) synchronize(ctx context.Context, coord model.Coordinate) (*model.ForecastMeta, model.FailureReason) {
	lock := s.lockFor(coord.Key())
	lock.Lock()
	defer lock.Unlock()

	meta, err := s.repo.GetMeta(ctx, coord)
	if err != nil && !errors.Is(err, repository.ErrNoMeta) {
		logger.Error(fmt.Errorf("failed to read cache metadata for %s: %w", coord.Key(), err))
	}

	if !meta.HasExpired() {
		return meta, ""
	}
	if !s.connectivity.IsOnline() {
		return meta, ""
	}

	var ifModifiedSince *time.Time
	if meta != nil {
		ifModifiedSince = meta.LastModified
	}

	outcome := s.fetcher.Fetch(ctx, coord, ifModifiedSince)
	switch outcome.Status {
	case provider.StatusFresh:
		// Payload first, metadata last: the metadata row is the commit
		// signal, so a half-written refresh is never observed as fresh.
		response := &model.CachedResponse{
			Coordinate: coord,
			Body:       outcome.Body,
			StoredAt:   time.Now(),
		}
		if err := s.repo.UpsertCachedResponse(ctx, response); err != nil {
			logger.Error(fmt.Errorf("failed to store forecast payload for %s: %w", coord.Key(), err))
			return meta, model.ReasonGeneric
		}

		fresh := &model.ForecastMeta{
			Coordinate:   coord,
			Expires:      outcome.Expires,
			LastModified: outcome.LastModified,
		}
		if err := s.repo.UpsertMeta(ctx, fresh); err != nil {
			logger.Error(fmt.Errorf("failed to store cache metadata for %s: %w", coord.Key(), err))
			return meta, model.ReasonGeneric
		}
		return fresh, ""

	case provider.StatusNotModified:
		// The cached body is still current; both stores stay untouched.
		return meta, ""

	default:
		reason := classifyOutcome(outcome)
		logger.Warn(fmt.Sprintf("forecast refresh failed for %s: %s (status %d)", coord.Key(), reason, outcome.Code))
		return meta, reason
	}
}

// classifyOutcome maps a failed fetch outcome to the reason surfaced to
// callers: 429 is throttled, 400-499 a client error, 500-504 a server error,
// everything else generic.
func classifyOutcome(outcome provider.FetchOutcome) model.FailureReason {
	switch outcome.Status {
	case provider.StatusThrottled:
		return model.ReasonThrottled
	case provider.StatusClientError:
		return model.ReasonClient
	case provider.StatusServerError:
		if outcome.Code >= 500 && outcome.Code <= 504 {
			return model.ReasonServer
		}
		return model.ReasonGeneric
	default:
		return model.ReasonGeneric
	}
}

// SweepExpired removes rows whose Expires header passed more than retention
// ago. Sweep failures are logged and otherwise ignored.
func (s *ForecastService) SweepExpired(ctx context.Context, retention time.Duration) {
	swept, err := s.repo.DeleteExpired(ctx, retention)
	if err != nil {
		logger.Error(fmt.Errorf("failed to sweep expired forecast rows: %w", err))
		return
	}
	if swept > 0 {
		logger.Info(fmt.Sprintf("swept %d expired forecast rows", swept))
	}
}

// RefreshSavedPlaces synchronizes the cache for every saved place. Failures
// for individual places are logged and do not stop the run.
func (s *ForecastService) RefreshSavedPlaces(ctx context.Context) {
	places, err := s.repo.GetPlaces(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNoPlaces) {
			logger.Error(fmt.Errorf("failed to list saved places: %w", err))
		}
		return
	}

	for _, place := range places {
		if _, reason := s.synchronize(ctx, place.Coordinate()); reason != "" {
			logger.Warn(fmt.Sprintf("background refresh failed for place %q: %s", place.Name, reason))
		}
	}
}
