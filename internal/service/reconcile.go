package service

import (
	"github.com/ikovac/met-forecast-api/internal/model"
	"github.com/ikovac/met-forecast-api/internal/provider"
)

// Reconcile maps the raw time-step sequence to one datum per present
// timestamp. Each step contributes its instantaneous values; precipitation
// and symbol fields are folded in from the step's own 1-hour summary when
// present, falling back to the 6-hour summary. The last step has no
// following step to cover, so it is emitted with instant values only.
// Gaps between non-hourly steps are not interpolated.
func Reconcile(steps []provider.TimeStep) []model.ForecastDatum {
	data := make([]model.ForecastDatum, 0, len(steps))

	for i, step := range steps {
		datum := model.ForecastDatum{
			Time:              step.Time,
			Temperature:       step.Data.Instant.Details.AirTemperature,
			WindSpeed:         step.Data.Instant.Details.WindSpeed,
			WindFromDirection: step.Data.Instant.Details.WindFromDirection,
			RelativeHumidity:  step.Data.Instant.Details.RelativeHumidity,
			Pressure:          step.Data.Instant.Details.AirPressureAtSeaLevel,
		}

		if i < len(steps)-1 {
			if summary := pickSummary(step); summary != nil {
				datum.SymbolCode = summary.Summary.SymbolCode
				datum.PrecipitationAmount = summary.Details.PrecipitationAmount
				datum.PrecipitationProbability = summary.Details.ProbabilityOfPrecipitation
			}
		}

		data = append(data, datum)
	}

	return data
}

// pickSummary prefers the 1-hour block over the 6-hour block; it covers the
// step's hours more precisely.
func pickSummary(step provider.TimeStep) *provider.NextHours {
	if step.Data.Next1Hours != nil {
		return step.Data.Next1Hours
	}
	return step.Data.Next6Hours
}
