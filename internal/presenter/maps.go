// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// moonPhaseNames maps the phase names of go-moonphase to translatable message IDs.
var moonPhaseNames = map[string]localize.MsgID{
	"New Moon":        "New moon",
	"Waxing Crescent": "Waxing crescent",
	"First Quarter":   "First quarter",
	"Waxing Gibbous":  "Waxing gibbous",
	"Full Moon":       "Full moon",
	"Waning Gibbous":  "Waning gibbous",
	"Third Quarter":   "Third quarter",
	"Waning Crescent": "Waning crescent",
}
