// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package testhelper

import (
	"net/http"
	"os"
	"testing"
)

// TestOnlineAPIURL is a public endpoint used by tests that require network access.
const TestOnlineAPIURL = "https://api.open-meteo.com/v1/forecast?latitude=52.5200&longitude=13.4050&hourly=temperature_2m&forecast_days=1"

// MockRoundTripper replaces the transport of an HTTP client with Fn.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless PERFORM_INTEGRATION_TESTS is set.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("PERFORM_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration test, set PERFORM_INTEGRATION_TESTS to run")
	}
}
