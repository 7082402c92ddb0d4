// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/wneessen/hourly-forecast/internal/geo"
	"github.com/wneessen/hourly-forecast/internal/vartype"
)

// TimeLayout is the layout of the hourly timestamps returned by the forecast API.
const TimeLayout = "2006-01-02T15:04"

// HourlyFields are the hourly metrics requested for every forecast.
var HourlyFields = []string{"temperature_2m", "precipitation_probability", "precipitation", "visibility"}

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetForecast(ctx context.Context, coords geo.Coordinate) (*Forecast, error)
}

type Forecast struct {
	GeneratedAt time.Time
	Coordinates geo.Coordinate
	Units       Units
	Hourly      Hourly
}

type Units struct {
	Temperature   string
	Precipitation string
	Visibility    string
}

// Hourly holds the parallel per-hour series of a forecast response.
type Hourly struct {
	Time                     Series[string]  `json:"time"`
	Temperature              Series[float64] `json:"temperature_2m"`
	PrecipitationProbability Series[float64] `json:"precipitation_probability"`
	Precipitation            Series[float64] `json:"precipitation"`
	Visibility               Series[float64] `json:"visibility"`
}

// Series is a JSON array of optional values. Anything but an array decodes to an empty Series.
type Series[T any] []vartype.Variable[T]

// Hour is a single table row.
type Hour struct {
	Label                    string
	Temperature              float64
	PrecipitationProbability float64
	Precipitation            float64
	Visibility               float64
}

func MetricUnits() Units {
	return Units{Temperature: "°C", Precipitation: "mm", Visibility: "m"}
}

func ImperialUnits() Units {
	return Units{Temperature: "°F", Precipitation: "inch", Visibility: "ft"}
}

func (s *Series[T]) UnmarshalJSON(data []byte) error {
	*s = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var vals []vartype.Variable[T]
	if err := json.Unmarshal(data, &vals); err != nil {
		return nil
	}
	*s = vals
	return nil
}

// At returns the value at index i, or the zero value if i is out of range or unset.
func (s Series[T]) At(i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i].ValueOr(zero)
}

// Values returns the set values in order.
func (s Series[T]) Values() []T {
	vals := make([]T, 0, len(s))
	for i := range s {
		if s[i].IsSet() {
			vals = append(vals, s[i].Value())
		}
	}
	return vals
}

func (h *Hourly) UnmarshalJSON(data []byte) error {
	*h = Hourly{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	type plain Hourly
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*h = Hourly(p)
	return nil
}

// Hours returns one row per timestamp. Entries whose timestamp is not a string are skipped,
// missing or non-numeric values are reported as 0.
func (f *Forecast) Hours() []Hour {
	hours := make([]Hour, 0, len(f.Hourly.Time))
	for i := range f.Hourly.Time {
		if !f.Hourly.Time[i].IsSet() {
			continue
		}
		hours = append(hours, Hour{
			Label:                    HourLabel(f.Hourly.Time[i].Value()),
			Temperature:              f.Hourly.Temperature.At(i),
			PrecipitationProbability: f.Hourly.PrecipitationProbability.At(i),
			Precipitation:            f.Hourly.Precipitation.At(i),
			Visibility:               f.Hourly.Visibility.At(i),
		})
	}
	return hours
}

// Date returns the day the forecast starts at, derived from the first parsable timestamp.
// It falls back to the generation time.
func (f *Forecast) Date() time.Time {
	for _, ts := range f.Hourly.Time.Values() {
		if t, err := time.Parse(TimeLayout, ts); err == nil {
			return t
		}
	}
	return f.GeneratedAt
}

// HourLabel returns the part of the timestamp between the first and the second "T"
// separator, or "N/A" if there is none.
func HourLabel(timestamp string) string {
	parts := strings.Split(timestamp, "T")
	if len(parts) < 2 {
		return "N/A"
	}
	return parts[1]
}
