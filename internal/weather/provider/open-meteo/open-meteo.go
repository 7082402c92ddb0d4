// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/hourly-forecast/internal/geo"
	"github.com/wneessen/hourly-forecast/internal/http"
	"github.com/wneessen/hourly-forecast/internal/logger"
	"github.com/wneessen/hourly-forecast/internal/vartype"
	"github.com/wneessen/hourly-forecast/internal/weather"
)

const (
	name            = "open-meteo"
	DefaultEndpoint = "https://api.open-meteo.com/v1/forecast"
)

type OpenMeteo struct {
	endpoint     string
	forecastDays uint
	timeout      time.Duration
	unit         string
	log          *logger.Logger
	http         *http.Client
}

// Option configures optional OpenMeteo settings.
type Option func(*OpenMeteo)

type response struct {
	Error       vartype.VarBool   `json:"error"`
	Reason      vartype.VarString `json:"reason"`
	Timezone    vartype.VarString `json:"timezone"`
	HourlyUnits json.RawMessage   `json:"hourly_units"`
	Hourly      weather.Hourly    `json:"hourly"`
}

type hourlyUnits struct {
	Temperature   vartype.VarString `json:"temperature_2m"`
	Precipitation vartype.VarString `json:"precipitation"`
	Visibility    vartype.VarString `json:"visibility"`
}

// WithEndpoint overrides the forecast API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *OpenMeteo) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithForecastDays sets the forecast window in days.
func WithForecastDays(days uint) Option {
	return func(o *OpenMeteo) {
		if days > 0 {
			o.forecastDays = days
		}
	}
}

// WithTimeout sets a deadline for each request. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *OpenMeteo) {
		o.timeout = timeout
	}
}

func New(http *http.Client, log *logger.Logger, unit string, opts ...Option) (*OpenMeteo, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	provider := &OpenMeteo{
		endpoint:     DefaultEndpoint,
		forecastDays: 1,
		unit:         strings.ToLower(unit),
		http:         http,
		log:          log,
	}
	for _, opt := range opts {
		opt(provider)
	}
	return provider, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// Query returns the query parameters sent for the given coordinates.
func (o *OpenMeteo) Query(coords geo.Coordinate) url.Values {
	// latitude=37.7749&longitude=-122.4194&hourly=temperature_2m,...&forecast_days=1
	query := url.Values{}
	query.Set("latitude", coords.LatString())
	query.Set("longitude", coords.LonString())
	query.Set("hourly", strings.Join(weather.HourlyFields, ","))
	query.Set("forecast_days", strconv.FormatUint(uint64(o.forecastDays), 10))
	if o.unit == "imperial" {
		query.Set("temperature_unit", "fahrenheit")
		query.Set("precipitation_unit", "inch")
	}
	return query
}

func (o *OpenMeteo) GetForecast(ctx context.Context, coords geo.Coordinate) (*weather.Forecast, error) {
	res := new(response)
	query := o.Query(coords)

	o.log.Debug("requesting forecast", slog.String("provider", name), slog.String("endpoint", o.endpoint),
		slog.String("query", query.Encode()))
	code, err := o.http.GetWithTimeout(ctx, o.endpoint, res, query, nil, o.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err)
	}
	if code != 200 {
		if res.Error.Value() && res.Reason.IsSet() {
			return nil, fmt.Errorf("Open-Meteo API returned response code %d: %s", code, res.Reason.Value())
		}
		return nil, fmt.Errorf("Open-Meteo API returned non-positive response code: %d", code)
	}

	forecast := &weather.Forecast{
		GeneratedAt: time.Now(),
		Coordinates: coords,
		Units:       o.units(res.HourlyUnits),
		Hourly:      res.Hourly,
	}
	o.log.Debug("forecast received", slog.String("provider", name), slog.Int("hours", len(forecast.Hourly.Time)),
		slog.String("timezone", res.Timezone.String()))

	return forecast, nil
}

// UnmarshalJSON treats any JSON document that is not an object as a response without data.
func (r *response) UnmarshalJSON(data []byte) error {
	*r = response{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	type plain response
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = response(p)
	return nil
}

// units prefers the unit labels of the response over the configured defaults.
func (o *OpenMeteo) units(raw json.RawMessage) weather.Units {
	units := weather.MetricUnits()
	if o.unit == "imperial" {
		units = weather.ImperialUnits()
	}

	var res hourlyUnits
	if len(raw) == 0 || json.Unmarshal(raw, &res) != nil {
		return units
	}
	units.Temperature = res.Temperature.ValueOr(units.Temperature)
	units.Precipitation = res.Precipitation.ValueOr(units.Precipitation)
	units.Visibility = res.Visibility.ValueOr(units.Visibility)
	return units
}
