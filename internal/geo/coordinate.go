// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"strconv"
)

const (
	MaxLatitude  = 90.0
	MaxLongitude = 180.0
)

// Coordinate represents a geographic coordinate entered by the user.
type Coordinate struct {
	Lat float64
	Lon float64
}

// ValidLatitude reports whether val lies strictly between -90 and 90 degrees.
func ValidLatitude(val float64) bool {
	return val > -MaxLatitude && val < MaxLatitude
}

// ValidLongitude reports whether val lies strictly between -180 and 180 degrees.
func ValidLongitude(val float64) bool {
	return val > -MaxLongitude && val < MaxLongitude
}

// Valid checks if both latitude and longitude are within the open ranges.
func (c Coordinate) Valid() bool {
	return ValidLatitude(c.Lat) && ValidLongitude(c.Lon)
}

// LatString returns the shortest decimal representation of the latitude.
func (c Coordinate) LatString() string {
	return FormatDegrees(c.Lat)
}

// LonString returns the shortest decimal representation of the longitude.
func (c Coordinate) LonString() string {
	return FormatDegrees(c.Lon)
}

func (c Coordinate) String() string {
	return "(" + c.LatString() + ", " + c.LonString() + ")"
}

// FormatDegrees renders val with the fewest digits needed to represent it exactly,
// never using exponent notation.
func FormatDegrees(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
