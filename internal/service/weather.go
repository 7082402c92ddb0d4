// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/wneessen/hourly-forecast/internal/geo"
	"github.com/wneessen/hourly-forecast/internal/logger"
)

// fetchAll fetches and prints the forecast for every collected location, one at a time.
// A failing location is logged and skipped.
func (s *Service) fetchAll(ctx context.Context, sess *session) (state, error) {
	s.prompt.Banner(s.t.Get("Getting weather data for coordinates."))
	for _, coords := range sess.coords {
		if err := ctx.Err(); err != nil {
			return stateDone, err
		}
		s.fetchWeather(ctx, coords)
	}
	return stateDone, nil
}

func (s *Service) fetchWeather(ctx context.Context, coords geo.Coordinate) {
	s.prompt.Println(s.t.Getf("Latitude: %s, Longitude: %s", coords.LatString(), coords.LonString()))

	forecast, err := s.provider.GetForecast(ctx, coords)
	if err != nil {
		s.logger.Error("failed to fetch forecast", logger.Err(err), slog.String("provider", s.provider.Name()),
			slog.String("location", coords.String()))
		return
	}
	if err = s.presenter.Render(s.output, forecast); err != nil {
		s.logger.Error("failed to render forecast", logger.Err(err), slog.String("location", coords.String()))
	}
}
