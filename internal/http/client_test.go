// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/hourly-forecast/internal/logger"
	"github.com/wneessen/hourly-forecast/internal/testhelper"
)

type testType struct {
	String string  `json:"string"`
	Int    int     `json:"int"`
	Float  float64 `json:"float"`
	Bool   bool    `json:"bool"`
}

const testFile = "../../testdata/testtype.json"

func TestNew(t *testing.T) {
	client := New(logger.New(slog.LevelInfo))
	if client == nil {
		t.Fatal("expected client to be non-nil")
	}
	if client.Timeout != 0 {
		t.Errorf("expected client to have no global timeout, got %s", client.Timeout)
	}
}

func TestClient_Get(t *testing.T) {
	t.Run("getting and serializing JSON should work", func(t *testing.T) {
		var gotReq *stdhttp.Request
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotReq = req
			data, err := os.Open(testFile)
			if err != nil {
				t.Fatalf("failed to open JSON response file: %s", err)
			}

			return &stdhttp.Response{
				StatusCode: 200,
				Body:       data,
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		query := url.Values{}
		query.Add("key", "value")
		headers := make(map[string]string)
		headers["X-Custom-Header"] = "custom-value"

		target := new(testType)
		response, err := client.Get(t.Context(), "https://example.com", target, query, headers)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}

		if response != 200 {
			t.Errorf("expected status code 200, got %d", response)
		}
		if target.String != "test" {
			t.Errorf("expected target string to be 'test', got %s", target.String)
		}
		if target.Int != 123 {
			t.Errorf("expected target int to be 123, got %d", target.Int)
		}
		if target.Float != 123.456 {
			t.Errorf("expected target float to be 123.456, got %f", target.Float)
		}
		if !target.Bool {
			t.Error("expected target bool to be true")
		}
		if gotReq == nil {
			t.Fatal("expected request to be captured")
		}
		if gotReq.URL.Query().Get("key") != "value" {
			t.Errorf("expected query parameter key to be 'value', got %q", gotReq.URL.Query().Get("key"))
		}
		if gotReq.Header.Get("X-Custom-Header") != "custom-value" {
			t.Errorf("expected custom header to be set, got %q", gotReq.Header.Get("X-Custom-Header"))
		}
		if gotReq.Header.Get("User-Agent") != UserAgent {
			t.Errorf("expected user agent to be %q, got %q", UserAgent, gotReq.Header.Get("User-Agent"))
		}
	})
	t.Run("request without deadline has no context deadline", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if _, ok := req.Context().Deadline(); ok {
				t.Error("expected request context to have no deadline")
			}
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`{"string":"x"}`)),
				Header:     make(stdhttp.Header),
			}, nil
		}
		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		target := new(testType)
		if _, err := client.Get(t.Context(), "https://example.com", target, nil, nil); err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
	})
	t.Run("unmarshalling into non-pointer should fail", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo))
		var target testType
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !errors.Is(err, ErrNonPointerTarget) {
			t.Errorf("expected error to be %s, got %s", ErrNonPointerTarget, err)
		}
	})
	t.Run("parsing an invalid url should fail", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo))
		target := new(testType)
		_, err := client.Get(t.Context(), "http://example.com/xyz%", target, nil, nil)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !strings.Contains(err.Error(), "failed to parse URL") {
			t.Errorf("expected error to contain 'failed to parse URL', got %s", err)
		}
	})
	t.Run("get request fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !strings.Contains(err.Error(), "failed to perform HTTP request") {
			t.Errorf("expected error to contain 'failed to perform HTTP request', got %s", err)
		}
	})
	t.Run("non-JSON body fails to decode", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 502,
				Body:       io.NopCloser(strings.NewReader("<html>bad gateway</html>")),
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		code, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if code != 502 {
			t.Errorf("expected status code 502, got %d", code)
		}
		if !strings.Contains(err.Error(), "failed to decode JSON") {
			t.Errorf("expected error to contain 'failed to decode JSON', got %s", err)
		}
	})
	t.Run("trailing data after JSON fails", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"html after object", `{"string":"value"} <html>oops</html>`},
			{"second object", `{"string":"value"}{"string":"other"}`},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
					return &stdhttp.Response{
						StatusCode: 200,
						Body:       io.NopCloser(strings.NewReader(tc.body)),
						Header:     make(stdhttp.Header),
					}, nil
				}

				client := New(logger.New(slog.LevelInfo))
				client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

				target := new(testType)
				_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
				if err == nil {
					t.Fatal("expected get request to fail")
				}
				if !errors.Is(err, ErrTrailingData) {
					t.Errorf("expected error to be %s, got %s", ErrTrailingData, err)
				}
			})
		}
	})
	t.Run("trailing whitespace after JSON is accepted", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("{\"string\":\"value\"}\n\t ")),
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		if _, err := client.Get(t.Context(), "https://example.com", target, nil, nil); err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
	})
	t.Run("failing body close is logged", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       &failReadCloser{},
				Header:     make(stdhttp.Header),
			}, nil
		}

		logBuf := bytes.NewBuffer(nil)
		client := New(logger.NewLogger(slog.LevelInfo, logBuf))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if !strings.Contains(logBuf.String(), "failed to close HTTP response body") {
			t.Errorf("expected close failure to be logged, got %q", logBuf.String())
		}
	})
}

func TestClient_GetWithTimeout(t *testing.T) {
	t.Run("request carries the deadline", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if _, ok := req.Context().Deadline(); !ok {
				t.Error("expected request context to have a deadline")
			}
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`{}`)),
				Header:     make(stdhttp.Header),
			}, nil
		}
		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		target := new(testType)
		if _, err := client.GetWithTimeout(t.Context(), "https://example.com", target, nil, nil,
			time.Second); err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
	})
	t.Run("get request fails on context cancel", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}
		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond)
		defer cancel()

		target := new(testType)
		_, err := client.GetWithTimeout(ctx, "https://example.com", target, nil, nil, time.Second*5)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected error to be %s, got %s", context.DeadlineExceeded, err)
		}
	})
	t.Run("get request against the online API", func(t *testing.T) {
		testhelper.PerformIntegrationTests(t)
		client := New(logger.New(slog.LevelInfo))
		target := &struct {
			Latitude float64 `json:"latitude"`
		}{}
		code, err := client.GetWithTimeout(t.Context(), testhelper.TestOnlineAPIURL, target, nil, nil,
			time.Second*10)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if code != 200 {
			t.Errorf("expected status code 200, got %d", code)
		}
	})
}

type failReadCloser struct {
	read bool
}

func (f *failReadCloser) Read(p []byte) (int, error) {
	if f.read {
		return 0, io.EOF
	}
	f.read = true
	return copy(p, `{"string":"closed"}`), nil
}
func (f *failReadCloser) Close() error { return errors.New("failed to close") }
