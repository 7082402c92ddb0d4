// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/wneessen/hourly-forecast/internal/http"
	"github.com/wneessen/hourly-forecast/internal/weather"
	openmeteo "github.com/wneessen/hourly-forecast/internal/weather/provider/open-meteo"
)

func (s *Service) selectWeatherProvider() (provider weather.Provider, err error) {
	provider, err = openmeteo.New(http.New(s.logger), s.logger, s.config.Units,
		openmeteo.WithEndpoint(s.config.Weather.Endpoint),
		openmeteo.WithForecastDays(s.config.Weather.ForecastDays),
		openmeteo.WithTimeout(s.config.Weather.Timeout),
	)
	if err != nil {
		return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
	}
	return provider, nil
}
