package provider

import (
	"encoding/json"
	"fmt"
	"time"
)

// LocationForecastResponse mirrors the locationforecast/2.0/compact payload.
// Only the fields the reconciler consumes are decoded; the stored body keeps
// everything the provider sent.
type LocationForecastResponse struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Meta struct {
			UpdatedAt time.Time `json:"updated_at"`
		} `json:"meta"`
		Timeseries []TimeStep `json:"timeseries"`
	} `json:"properties"`
}

// TimeStep is a single forecast time-step. Steps are ordered ascending by
// Time and may be spaced irregularly (hourly near-term, then 6-hourly).
type TimeStep struct {
	Time time.Time `json:"time"`
	Data struct {
		Instant struct {
			Details InstantDetails `json:"details"`
		} `json:"instant"`
		Next1Hours *NextHours `json:"next_1_hours,omitempty"`
		Next6Hours *NextHours `json:"next_6_hours,omitempty"`
	} `json:"data"`
}

// InstantDetails are the instantaneous measurements valid at the step's time.
type InstantDetails struct {
	AirPressureAtSeaLevel float64 `json:"air_pressure_at_sea_level"`
	AirTemperature        float64 `json:"air_temperature"`
	RelativeHumidity      float64 `json:"relative_humidity"`
	WindFromDirection     float64 `json:"wind_from_direction"`
	WindSpeed             float64 `json:"wind_speed"`
}

// NextHours is the summary block covering the hours after a step. The symbol
// code is an opaque identifier passed through to presentation collaborators.
type NextHours struct {
	Summary struct {
		SymbolCode string `json:"symbol_code"`
	} `json:"summary"`
	Details struct {
		PrecipitationAmount        *float64 `json:"precipitation_amount,omitempty"`
		ProbabilityOfPrecipitation *float64 `json:"probability_of_precipitation,omitempty"`
	} `json:"details"`
}

// Decode parses a stored provider response body.
func Decode(body []byte) (*LocationForecastResponse, error) {
	var response LocationForecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return &response, nil
}
