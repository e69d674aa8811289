/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coinsage/coinsage/common/null"
)

func newTestServer(t *testing.T, options ...func(*HServer) error) *httptest.Server {
	t.Helper()
	s, err := New(append([]func(*HServer) error{WithLogger(null.Logger())}, options...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	s.AddRoute(Route{
		Name:    "echo",
		Methods: []string{"GET"},
		Pattern: "/echo/{id}",
		JHandler: func(req *http.Request) JResponse {
			return JResponse{HTTPCode: http.StatusOK, JSONData: Response{Status: "ok", Code: 200, Details: GetParam(req, "id")}}
		},
	})
	s.AddRoute(Route{
		Name:     "panics",
		Methods:  []string{"GET"},
		Pattern:  "/panic",
		JHandler: func(*http.Request) JResponse { panic("boom") },
	})
	s.AddRoute(Route{
		Name:    "private",
		Methods: []string{"GET"},
		Pattern: "/private",
		JHandler: func(req *http.Request) JResponse {
			return JResponse{HTTPCode: http.StatusOK, JSONData: Response{Status: "ok", Code: 200, Data: AuthDetailsFrom(req)}}
		},
		AuthFunc: func(_, header string) (bool, []byte, any) {
			if header == "Bearer good" {
				return true, nil, "caller-1"
			}
			return false, []byte(`{"status":"error","code":401}`), nil
		},
	})

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, req *http.Request) (int, Response, http.Header) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, r, resp.Header
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		method   string
		wantCode int
		want     Response
	}{
		{"health", "/health", "GET", 200, Response{Status: "ok", Code: 200, Details: "health check ok"}},
		{"path variable", "/echo/abc", "GET", 200, Response{Status: "ok", Code: 200, Details: "abc"}},
		{"not found", "/nope", "GET", 404, Response{Status: "error", Code: 404, Details: "object does not exist"}},
		{"method not allowed", "/health", "DELETE", 405, Response{Status: "error", Code: 405, Details: "method not allowed"}},
		{"panic recovered", "/panic", "GET", 500, Response{Status: "error", Code: 500, Details: "Internal Server Error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			code, got, header := getJSON(t, req)
			if code != tt.wantCode {
				t.Errorf("status = %d, want %d", code, tt.wantCode)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
			if header.Get("Cache-Control") == "" {
				t.Error("default headers missing")
			}
		})
	}
}

func TestAuthFunc(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest("GET", ts.URL+"/private", nil)
	code, _, _ := getJSON(t, req)
	if code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", code)
	}

	req, _ = http.NewRequest("GET", ts.URL+"/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	code, got, _ := getJSON(t, req)
	if code != http.StatusOK || got.Data != "caller-1" {
		t.Fatalf("authenticated request = %d %+v", code, got)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, WithCORS("GET", "POST"))

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/health", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestRemoteIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	if got := RemoteIP(req); got != "10.0.0.7" {
		t.Errorf("RemoteIP() = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := RemoteIP(req); got != "203.0.113.9" {
		t.Errorf("RemoteIP() with forwarded = %q", got)
	}
}
