package model

import (
	"fmt"
	"math"
	"time"
)

// Coordinate identifies a forecast location. The provider buckets forecasts
// by two decimal places, so coordinates are rounded before they are used as
// store keys or sent upstream.
type Coordinate struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Rounded returns the coordinate rounded to two decimal places.
func (c Coordinate) Rounded() Coordinate {
	return Coordinate{
		Latitude:  math.Round(c.Latitude*100) / 100,
		Longitude: math.Round(c.Longitude*100) / 100,
	}
}

// Key returns the canonical store key for the rounded coordinate.
func (c Coordinate) Key() string {
	r := c.Rounded()
	return fmt.Sprintf("%.2f,%.2f", r.Latitude, r.Longitude)
}

// ForecastMeta holds the cache-validation headers recorded on the last
// successful fetch for a coordinate. One row per coordinate, replaced on
// every successful refresh.
type ForecastMeta struct {
	Coordinate   Coordinate `json:"coordinate" bson:"coordinate"`
	Expires      *time.Time `json:"expires,omitempty" bson:"expires,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty" bson:"lastModified,omitempty"`
}

// HasExpired reports whether a refresh is due. A missing row or a missing
// Expires header counts as expired.
func (m *ForecastMeta) HasExpired() bool {
	if m == nil || m.Expires == nil {
		return true
	}
	return time.Now().After(*m.Expires)
}

// CachedResponse is the raw provider response body stored for a coordinate.
// Replaced wholesale on every successful refresh, never partially updated.
type CachedResponse struct {
	Coordinate Coordinate `json:"coordinate" bson:"coordinate"`
	Body       []byte     `json:"-" bson:"body"`
	StoredAt   time.Time  `json:"storedAt" bson:"storedAt"`
}

// ForecastDatum is one reconciled forecast entry. Derived from the cached
// response on every query, not persisted.
type ForecastDatum struct {
	Time                     time.Time `json:"time"`
	Temperature              float64   `json:"temperature"`
	SymbolCode               string    `json:"symbolCode,omitempty"`
	PrecipitationAmount      *float64  `json:"precipitationAmount,omitempty"`
	PrecipitationProbability *float64  `json:"precipitationProbability,omitempty"`
	WindSpeed                float64   `json:"windSpeed"`
	WindFromDirection        float64   `json:"windFromDirection"`
	RelativeHumidity         float64   `json:"relativeHumidity"`
	Pressure                 float64   `json:"pressure"`
}

// Window is a closed time range; both bounds are inclusive.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// FailureReason classifies a failed refresh attempt for surfacing to callers.
type FailureReason string

const (
	ReasonThrottled FailureReason = "throttled"
	ReasonClient    FailureReason = "client error"
	ReasonServer    FailureReason = "server error"
	ReasonGeneric   FailureReason = "generic error"
)

// ResultStatus discriminates the ForecastResult variants.
type ResultStatus string

const (
	// StatusSuccess means fresh or cache-hit data is available for the window.
	StatusSuccess ResultStatus = "success"
	// StatusCachedSuccess means data was served from cache because a refresh
	// attempt failed; Reason carries the failure classification.
	StatusCachedSuccess ResultStatus = "cached_success"
	// StatusEmpty means no cached data intersects the window.
	StatusEmpty ResultStatus = "empty"
	// StatusEmptyWithReason is StatusEmpty after a failed refresh attempt.
	StatusEmptyWithReason ResultStatus = "empty_with_reason"
)

// ForecastResult is the sole surface consumed by presentation collaborators.
type ForecastResult struct {
	Status ResultStatus    `json:"status"`
	Data   []ForecastDatum `json:"data,omitempty"`
	Meta   *ForecastMeta   `json:"meta,omitempty"`
	Reason FailureReason   `json:"reason,omitempty"`
}

// Success builds a result carrying fresh or cache-hit data.
func Success(data []ForecastDatum, meta *ForecastMeta) ForecastResult {
	return ForecastResult{Status: StatusSuccess, Data: data, Meta: meta}
}

// CachedSuccess builds a result carrying cached data after a failed refresh.
func CachedSuccess(data []ForecastDatum, meta *ForecastMeta, reason FailureReason) ForecastResult {
	return ForecastResult{Status: StatusCachedSuccess, Data: data, Meta: meta, Reason: reason}
}

// Empty builds a result for a window with no data at all.
func Empty() ForecastResult {
	return ForecastResult{Status: StatusEmpty}
}

// EmptyWithReason builds an empty result whose refresh attempt failed.
func EmptyWithReason(reason FailureReason) ForecastResult {
	return ForecastResult{Status: StatusEmptyWithReason, Reason: reason}
}

// Place is a saved location a user tracks forecasts for.
type Place struct {
	ID        string  `json:"id" bson:"_id,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Coordinate returns the place's rounded coordinate.
func (p *Place) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}.Rounded()
}
