// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/hourly-forecast/internal/weather"
)

const (
	hourWidth   = 8
	columnWidth = 10
	ruleWidth   = 46
	titleRule   = "==============="
	astroLayout = "15:04 MST"
)

// Presenter renders forecasts as fixed-width terminal tables.
type Presenter struct {
	localizer *spreak.Localizer
	astronomy bool
}

func New(t *spreak.Localizer, astronomy bool) (*Presenter, error) {
	if t == nil {
		return nil, fmt.Errorf("localizer is required")
	}
	return &Presenter{localizer: t, astronomy: astronomy}, nil
}

// Render writes the hourly table of the forecast followed by the summary, if one can be
// computed, and the sun and moon block.
func (p *Presenter) Render(w io.Writer, forecast *weather.Forecast) error {
	buf := bufio.NewWriter(w)
	t := p.localizer
	rule := strings.Repeat("=", ruleWidth)

	_, _ = fmt.Fprintf(buf, "\n%s %s %s\n", titleRule, t.Get("Weather Forecast"), titleRule)
	_, _ = fmt.Fprintln(buf, t.Getf("Location: %s", forecast.Coordinates.String()))
	_, _ = fmt.Fprintln(buf, rule)
	_, _ = fmt.Fprintln(buf, row(t.Get("Hour"),
		t.Getf("Temp(%s)", forecast.Units.Temperature),
		t.Get("Precip(%)"),
		t.Getf("Rain(%s)", forecast.Units.Precipitation),
		t.Getf("Vis(%s)", forecast.Units.Visibility),
	))
	_, _ = fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	for _, hour := range forecast.Hours() {
		_, _ = fmt.Fprintln(buf, row(hour.Label,
			floatFormat(hour.Temperature, 1),
			floatFormat(hour.PrecipitationProbability, 0),
			floatFormat(hour.Precipitation, 1),
			floatFormat(hour.Visibility, 0),
		))
	}

	summary, ok := forecast.Summarize()
	if ok {
		_, _ = fmt.Fprintln(buf, rule)
		_, _ = fmt.Fprintln(buf, t.Get("SUMMARY:"))
		_, _ = fmt.Fprintln(buf, t.Getf("Avg Temperature: %s%s", floatFormat(summary.AvgTemperature, 1),
			forecast.Units.Temperature))
		_, _ = fmt.Fprintln(buf, t.Getf("Max Precip Chance: %s%%", floatFormat(summary.MaxPrecipProbability, 0)))
		_, _ = fmt.Fprintln(buf, t.Getf("Total Precipitation: %s %s", floatFormat(summary.TotalPrecipitation, 1),
			forecast.Units.Precipitation))
		_, _ = fmt.Fprintln(buf, rule)
	}
	if p.astronomy {
		if !ok {
			_, _ = fmt.Fprintln(buf, rule)
		}
		p.renderAstronomy(buf, forecast)
		_, _ = fmt.Fprintln(buf, rule)
	}
	_, _ = fmt.Fprintln(buf)

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write forecast: %w", err)
	}
	return nil
}

func (p *Presenter) renderAstronomy(w io.Writer, forecast *weather.Forecast) {
	t := p.localizer
	date := forecast.Date()
	rise, set := sunrise.SunriseSunset(forecast.Coordinates.Lat, forecast.Coordinates.Lon,
		date.Year(), date.Month(), date.Day())
	_, _ = fmt.Fprintln(w, t.Getf("Sunrise: %s", p.astroTime(rise)))
	_, _ = fmt.Fprintln(w, t.Getf("Sunset: %s", p.astroTime(set)))

	phase := moonphase.New(date).PhaseName()
	name := phase
	if msgID, found := moonPhaseNames[phase]; found {
		name = t.Get(msgID)
	}
	_, _ = fmt.Fprintln(w, t.Getf("Moon phase: %s %s", MoonPhaseIcon[phase], name))
}

func (p *Presenter) astroTime(val time.Time) string {
	if val.IsZero() {
		return "N/A"
	}
	return val.UTC().Format(astroLayout)
}

// row left-aligns the hour label and the value columns to their fixed widths.
func row(hour string, columns ...string) string {
	var sb strings.Builder
	sb.WriteString(runewidth.FillRight(hour, hourWidth))
	for _, col := range columns {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(col, columnWidth))
	}
	return sb.String()
}

func floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}
