// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vorlif/spreak"

	"github.com/wneessen/hourly-forecast/internal/config"
	"github.com/wneessen/hourly-forecast/internal/geo"
	"github.com/wneessen/hourly-forecast/internal/logger"
	"github.com/wneessen/hourly-forecast/internal/presenter"
	"github.com/wneessen/hourly-forecast/internal/prompt"
	"github.com/wneessen/hourly-forecast/internal/weather"
)

type state int

const (
	stateCollectingLatitude state = iota
	stateCollectingLongitude
	stateConfirmRepeat
	stateFetching
	stateDone
)

func (s state) String() string {
	switch s {
	case stateCollectingLatitude:
		return "collecting_latitude"
	case stateCollectingLongitude:
		return "collecting_longitude"
	case stateConfirmRepeat:
		return "confirm_repeat"
	case stateFetching:
		return "fetching"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// session is the state threaded through a single run.
type session struct {
	pending geo.Coordinate
	coords  []geo.Coordinate
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	t         *spreak.Localizer
	output    io.Writer
	prompt    *prompt.Prompt
	presenter *presenter.Presenter
	provider  weather.Provider
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer, input io.Reader, output io.Writer) (*Service, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	prmpt, err := prompt.New(input, output, t, prompt.RuleFromConfig(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	pres, err := presenter.New(t, !conf.Output.DisableAstronomy)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	service := &Service{
		config:    conf,
		logger:    log,
		t:         t,
		output:    output,
		prompt:    prmpt,
		presenter: pres,
	}
	service.provider, err = service.selectWeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}

	return service, nil
}

// Run collects coordinates until the user declines to add another location and then
// prints the forecast for each of them in the order they were entered. An out-of-range
// coordinate ends the run without fetching anything.
func (s *Service) Run(ctx context.Context) error {
	sess := new(session)
	defer s.prompt.Close()
	s.prompt.Banner(s.t.Get("This program will get the weather forecast for a given location."))

	var err error
	st := stateCollectingLatitude
	for st != stateDone {
		prev := st
		switch st {
		case stateCollectingLatitude:
			st, err = s.collectLatitude(ctx, sess)
		case stateCollectingLongitude:
			st, err = s.collectLongitude(ctx, sess)
		case stateConfirmRepeat:
			st, err = s.confirmRepeat(ctx)
		case stateFetching:
			st, err = s.fetchAll(ctx, sess)
		default:
			return fmt.Errorf("invalid state: %d", st)
		}
		if err != nil {
			return err
		}
		s.logger.Debug("state transition", slog.String("from", prev.String()), slog.String("to", st.String()),
			slog.Int("locations", len(sess.coords)))
	}
	return nil
}

func (s *Service) collectLatitude(ctx context.Context, sess *session) (state, error) {
	s.prompt.Banner(s.t.Get("Enter the latitude of the location [(-)XX.XXXX]:"))
	lat, err := s.prompt.Coordinate(ctx)
	if err != nil {
		return stateDone, fmt.Errorf("failed to read latitude: %w", err)
	}
	if !geo.ValidLatitude(lat) {
		s.prompt.Println(s.t.Get("Invalid latitude. Please enter a value between -90 and 90."))
		s.logger.Debug("latitude out of range, aborting", slog.Float64("lat", lat))
		return stateDone, nil
	}
	sess.pending = geo.Coordinate{Lat: lat}
	return stateCollectingLongitude, nil
}

func (s *Service) collectLongitude(ctx context.Context, sess *session) (state, error) {
	s.prompt.Banner(s.t.Get("Enter the longitude of the location [(-)XXX.XXXX]:"))
	lon, err := s.prompt.Coordinate(ctx)
	if err != nil {
		return stateDone, fmt.Errorf("failed to read longitude: %w", err)
	}
	if !geo.ValidLongitude(lon) {
		s.prompt.Println(s.t.Get("Invalid longitude. Please enter a value between -180 and 180."))
		s.logger.Debug("longitude out of range, aborting", slog.Float64("lon", lon))
		return stateDone, nil
	}
	sess.pending.Lon = lon
	sess.coords = append(sess.coords, sess.pending)
	return stateConfirmRepeat, nil
}

func (s *Service) confirmRepeat(ctx context.Context) (state, error) {
	s.prompt.Banner(s.t.Get("Do you want to get weather data for another location? (y/n)"))
	another, err := s.prompt.Confirm(ctx)
	if err != nil {
		return stateDone, fmt.Errorf("failed to read answer: %w", err)
	}
	if another {
		return stateCollectingLatitude, nil
	}
	return stateFetching, nil
}
