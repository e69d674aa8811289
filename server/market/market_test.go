/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

const dexBody = `{"schemaVersion":"1.0.0","pairs":[{
	"chainId":"ethereum","priceUsd":"0.00001234","fdv":5200000000,
	"baseToken":{"address":"0x6982508145454Ce325dDbE47a25d4ec3d2311933","name":"Pepe","symbol":"PEPE"},
	"liquidity":{"usd":31000000.5},"volume":{"h24":1250000},
	"txns":{"h24":{"buys":700,"sells":300}}}]}`

const geckoMarketsBody = `[{"id":"pepe","symbol":"pepe","name":"Pepe","current_price":0.00001234,
	"total_volume":980000000,"market_cap":5190000000,"price_change_percentage_24h":-3.5}]`

const geckoTrendingBody = `{"coins":[{"item":{"id":"bonk","name":"Bonk","symbol":"bonk","market_cap_rank":60,"price_btc":2.1e-10}},
	{"item":{"id":"sui","name":"Sui","symbol":"sui","market_cap_rank":12,"price_btc":null}}]}`

func newProvider(t *testing.T, routes map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		body, ok := routes[r.URL.RequestURI()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if body == "429" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		if body == "500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestDexScreener(t *testing.T) {
	ts, _ := newProvider(t, map[string]string{
		"/latest/dex/tokens/0x6982508145454Ce325dDbE47a25d4ec3d2311933": dexBody,
		"/latest/dex/search?q=PEPE":                                     dexBody,
		"/latest/dex/search?q=NONE":                                     `{"pairs":[]}`,
		"/latest/dex/search?q=NULL":                                     `{"pairs":null}`,
		"/latest/dex/search?q=FAIL":                                     "500",
	})
	d := NewDexScreener(WithBaseURL(ts.URL), WithRate(0))
	ctx := context.Background()

	got, err := d.TokenByAddress(ctx, "0x6982508145454Ce325dDbE47a25d4ec3d2311933")
	if err != nil {
		t.Fatalf("TokenByAddress: %v", err)
	}
	want := &DexToken{
		Name:      "Pepe",
		Symbol:    "PEPE",
		Chain:     "ethereum",
		Address:   "0x6982508145454Ce325dDbE47a25d4ec3d2311933",
		Price:     decimal.RequireFromString("0.00001234"),
		Liquidity: decimal.RequireFromString("31000000.5"),
		Volume24h: decimal.NewFromInt(1250000),
		Txns24h:   1000,
		FDV:       decimal.NewFromInt(5200000000),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(decimal.Decimal.Equal)); diff != "" {
		t.Errorf("TokenByAddress mismatch (-want +got):\n%s", diff)
	}

	if got, err = d.TokenBySymbol(ctx, "PEPE"); err != nil || got == nil || got.Symbol != "PEPE" {
		t.Errorf("TokenBySymbol(PEPE) = %+v, %v", got, err)
	}

	for _, sym := range []string{"NONE", "NULL", "MISSING"} {
		got, err = d.TokenBySymbol(ctx, sym)
		if err != nil || got != nil {
			t.Errorf("TokenBySymbol(%s) = %+v, %v; want nil, nil", sym, got, err)
		}
	}

	if _, err = d.TokenBySymbol(ctx, "FAIL"); !errors.Is(err, ErrUpstream) {
		t.Errorf("TokenBySymbol(FAIL) err = %v, want ErrUpstream", err)
	}
}

func TestCoinGecko(t *testing.T) {
	ts, _ := newProvider(t, map[string]string{
		"/coins/markets?vs_currency=usd&symbols=pepe": geckoMarketsBody,
		"/coins/markets?vs_currency=usd&symbols=zzz":  `[]`,
		"/coins/markets?vs_currency=usd&symbols=busy": "429",
		"/search/trending":                            geckoTrendingBody,
		"/coins/list":                                 `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}]`,
	})
	g := NewCoinGecko(WithBaseURL(ts.URL), WithRate(0))
	ctx := context.Background()

	m, err := g.MarketData(ctx, "PEPE")
	if err != nil || m == nil {
		t.Fatalf("MarketData(PEPE) = %+v, %v", m, err)
	}
	if m.Symbol != "PEPE" || !m.MarketCap.Equal(decimal.NewFromInt(5190000000)) || !m.Change24h.Equal(decimal.RequireFromString("-3.5")) {
		t.Errorf("MarketData(PEPE) = %+v", m)
	}

	if m, err = g.MarketData(ctx, "ZZZ"); err != nil || m != nil {
		t.Errorf("MarketData(ZZZ) = %+v, %v; want nil, nil", m, err)
	}

	if _, err = g.MarketData(ctx, "BUSY"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("MarketData(BUSY) err = %v, want ErrRateLimited", err)
	}

	trending, err := g.Trending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(trending) != 2 || trending[0].Symbol != "BONK" || trending[1].MarketCapRank != 12 || !trending[1].PriceBTC.IsZero() {
		t.Errorf("Trending() = %+v", trending)
	}

	list, err := g.CoinList(ctx)
	if diff := cmp.Diff([]ListedCoin{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}, list); diff != "" || err != nil {
		t.Errorf("CoinList() err = %v, mismatch (-want +got):\n%s", err, diff)
	}
}

func TestRateLimitHonoursContext(t *testing.T) {
	ts, hits := newProvider(t, map[string]string{"/search/trending": `{"coins":[]}`})

	// One request per minute: the second call must wait and give up
	g := NewCoinGecko(WithBaseURL(ts.URL), WithRate(1))
	if _, err := g.Trending(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := g.Trending(ctx); !errors.Is(err, ErrUpstream) {
		t.Errorf("second call err = %v, want ErrUpstream", err)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("provider hit %d times, want 1", n)
	}
}

func TestTransportFailure(t *testing.T) {
	ts, _ := newProvider(t, nil)
	ts.Close()

	d := NewDexScreener(WithBaseURL(ts.URL), WithRate(0))
	if _, err := d.TokenBySymbol(context.Background(), "PEPE"); !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}
