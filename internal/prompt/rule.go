// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package prompt

import (
	"math"
	"strings"

	"github.com/vorlif/spreak"

	"github.com/wneessen/hourly-forecast/internal/config"
	"github.com/wneessen/hourly-forecast/internal/geo"
)

// Rule decides whether a parsed coordinate was entered in an acceptable format.
type Rule interface {
	Accept(input string, value float64) bool
	Hint(t *spreak.Localizer) []string
}

// LegacyRule accepts values whose absolute value renders with 7 or 8 characters,
// e.g. 12.3456 or 123.4567. Single digit degrees like 5.1234 are rejected.
type LegacyRule struct{}

// PrecisionRule accepts values entered with at least MinDecimals fractional digits.
type PrecisionRule struct {
	MinDecimals int
}

// RuleFromConfig returns the rule selected in the input configuration.
func RuleFromConfig(conf *config.Config) Rule {
	if conf.Input.FormatRule == config.FormatRulePrecision {
		return PrecisionRule{MinDecimals: int(conf.Input.MinDecimals)} //nolint:gosec
	}
	return LegacyRule{}
}

func (LegacyRule) Accept(_ string, value float64) bool {
	length := len(geo.FormatDegrees(math.Abs(value)))
	return length >= 7 && length <= 8
}

func (LegacyRule) Hint(t *spreak.Localizer) []string {
	return []string{
		t.Get("Invalid coordinate format. Please enter coordinate with at least 6 digits."),
		t.Get("6-7 digits for longitude. Negative sign not included. (e.g., -12.3456)"),
	}
}

func (r PrecisionRule) Accept(input string, _ float64) bool {
	idx := strings.IndexByte(input, '.')
	if idx == -1 {
		return r.MinDecimals <= 0
	}
	decimals := 0
	for _, c := range input[idx+1:] {
		if c < '0' || c > '9' {
			break
		}
		decimals++
	}
	return decimals >= r.MinDecimals
}

func (r PrecisionRule) Hint(t *spreak.Localizer) []string {
	return []string{
		t.NGetf("Invalid coordinate format. Please enter at least %d decimal place.",
			"Invalid coordinate format. Please enter at least %d decimal places.", r.MinDecimals, r.MinDecimals),
		t.Get("Example: -12.3456"),
	}
}
