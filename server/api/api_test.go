//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/common/schema"
	"github.com/coinsage/coinsage/common/uconfig"
	"github.com/coinsage/coinsage/server/data"
	"github.com/coinsage/coinsage/server/global"
)

func newTestAPI(t *testing.T, env map[string]string) (*httptest.Server, *data.Data) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	env[global.ConfigDataPath] = t.TempDir()
	env[global.ConfigPenaltyBoxMin] = "0"
	env[global.ConfigPenaltyBoxMax] = "0"

	conf, err := global.Config(uconfig.WithLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	if err != nil {
		t.Fatalf("Config: %v", err)
	}

	d, err := data.New(conf, null.Logger())
	if err != nil {
		t.Fatalf("data.New: %v", err)
	}
	t.Cleanup(d.Close)

	a, err := New(conf, d, null.Logger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ts := httptest.NewServer(a.Handler())
	t.Cleanup(ts.Close)
	return ts, d
}

func get(t *testing.T, url, token string) (int, []byte, http.Header) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw json.RawMessage
	if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, raw, resp.Header
}

func TestRootAndHealth(t *testing.T) {
	ts, _ := newTestAPI(t, nil)

	code, body, hdr := get(t, ts.URL+"/", "")
	if code != http.StatusOK {
		t.Fatalf("GET / = %d", code)
	}
	var root schema.APIRootResponse
	_ = json.Unmarshal(body, &root)
	if root.Status != "OK" {
		t.Errorf("GET / status = %q, want OK", root.Status)
	}
	if hdr.Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing CORS header")
	}

	code, _, _ = get(t, ts.URL+"/health", "")
	if code != http.StatusOK {
		t.Errorf("GET /health = %d", code)
	}

	code, _, _ = get(t, ts.URL+"/nope", "")
	if code != http.StatusNotFound {
		t.Errorf("GET /nope = %d", code)
	}
}

func TestQueryLogEndpoints(t *testing.T) {
	ts, d := newTestAPI(t, nil)

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	d.LogQuery(schema.QueryLog{ID: "p1", Command: schema.CommandPrice, TokenID: "PEPE", CreatedAt: base})
	d.LogQuery(schema.QueryLog{ID: "p2", Command: schema.CommandPrice, TokenID: "BTC", CreatedAt: base.Add(time.Minute)})
	d.LogQuery(schema.QueryLog{ID: "a1", Command: schema.CommandAnalyze, TokenAddress: "0xabc", CreatedAt: base})

	decode := func(body []byte) []string {
		var r schema.APIQueryLogResponse
		if err := json.Unmarshal(body, &r); err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, q := range r.Data {
			ids = append(ids, q.ID)
		}
		return ids
	}

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"all prices newest first", "/price", []string{"p2", "p1"}},
		{"price by id", "/price?tokenId=PEPE", []string{"p1"}},
		{"analyze by address", "/analyze?tokenAddress=0xabc", []string{"a1"}},
		{"analyze no match", "/analyze?tokenAddress=0xdef", nil},
		{"limit", "/price?limit=1", []string{"p2"}},
	}
	for _, tt := range tests {
		code, body, _ := get(t, ts.URL+tt.path, "")
		if code != http.StatusOK {
			t.Errorf("%s: code = %d", tt.name, code)
			continue
		}
		if diff := cmp.Diff(tt.want, decode(body)); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tt.name, diff)
		}
	}

	code, _, _ := get(t, ts.URL+"/price?limit=abc", "")
	if code != http.StatusBadRequest {
		t.Errorf("bad limit code = %d, want 400", code)
	}
}

func TestQueryLogAuth(t *testing.T) {
	ts, d := newTestAPI(t, map[string]string{global.ConfigAPITokenKey: "test-signing-key"})

	code, _, _ := get(t, ts.URL+"/price", "")
	if code != http.StatusUnauthorized {
		t.Errorf("no token code = %d, want 401", code)
	}

	code, _, _ = get(t, ts.URL+"/price", "garbage")
	if code != http.StatusUnauthorized {
		t.Errorf("bad token code = %d, want 401", code)
	}

	tok, err := d.CreateToken("ops", 5)
	if err != nil {
		t.Fatal(err)
	}
	code, _, _ = get(t, ts.URL+"/price", tok)
	if code != http.StatusOK {
		t.Errorf("valid token code = %d, want 200", code)
	}

	// Root stays public
	code, _, _ = get(t, ts.URL+"/", "")
	if code != http.StatusOK {
		t.Errorf("GET / with auth enabled = %d", code)
	}
}
