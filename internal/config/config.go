// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"

	openmeteo "github.com/wneessen/hourly-forecast/internal/weather/provider/open-meteo"
)

const (
	configEnv = "HOURLYFORECAST"

	FormatRuleLegacy    = "legacy"
	FormatRulePrecision = "precision"
)

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Input struct {
		// Allowed values: legacy, precision
		FormatRule string `fig:"format_rule" default:"legacy"`
		// Allowed value: 1 to 10
		MinDecimals uint `fig:"min_decimals" default:"4"`
	} `fig:"input"`

	Weather struct {
		Endpoint string `fig:"endpoint"`
		// Allowed value: 1 to 16
		ForecastDays uint `fig:"forecast_days" default:"1"`
		// Zero disables the request deadline
		Timeout time.Duration `fig:"timeout"`
	} `fig:"weather"`

	Output struct {
		DisableAstronomy bool `fig:"disable_astronomy"`
	} `fig:"output"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	c.Units = strings.ToLower(c.Units)
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.Input.FormatRule = strings.ToLower(c.Input.FormatRule)
	if c.Input.FormatRule != FormatRuleLegacy && c.Input.FormatRule != FormatRulePrecision {
		return fmt.Errorf("invalid input format rule: %s", c.Input.FormatRule)
	}
	if c.Input.MinDecimals < 1 || c.Input.MinDecimals > 10 {
		return fmt.Errorf("invalid minimum decimals: %d", c.Input.MinDecimals)
	}
	if c.Weather.Endpoint == "" {
		c.Weather.Endpoint = openmeteo.DefaultEndpoint
	}
	endpoint, err := url.Parse(c.Weather.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid weather endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" || endpoint.Host == "" {
		return fmt.Errorf("invalid weather endpoint: %s", c.Weather.Endpoint)
	}
	if c.Weather.ForecastDays < 1 || c.Weather.ForecastDays > 16 {
		return fmt.Errorf("invalid forecast days: %d", c.Weather.ForecastDays)
	}
	if c.Weather.Timeout < 0 {
		return fmt.Errorf("invalid weather timeout: %s", c.Weather.Timeout)
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
