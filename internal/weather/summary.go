// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

type Summary struct {
	AvgTemperature       float64
	MaxPrecipProbability float64
	TotalPrecipitation   float64
}

// Summarize aggregates the numeric series of the forecast. The second return value is false
// if any of temperature, precipitation probability or precipitation has no numeric entry.
func (f *Forecast) Summarize() (Summary, bool) {
	temps := f.Hourly.Temperature.Values()
	probs := f.Hourly.PrecipitationProbability.Values()
	precips := f.Hourly.Precipitation.Values()
	if len(temps) == 0 || len(probs) == 0 || len(precips) == 0 {
		return Summary{}, false
	}

	var summary Summary
	var tempSum float64
	for _, temp := range temps {
		tempSum += temp
	}
	summary.AvgTemperature = tempSum / float64(len(temps))
	for _, prob := range probs {
		summary.MaxPrecipProbability = max(summary.MaxPrecipProbability, prob)
	}
	for _, precip := range precips {
		summary.TotalPrecipitation += precip
	}

	return summary, true
}
