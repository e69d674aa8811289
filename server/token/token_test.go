/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package token

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/coinsage/coinsage/common/cache"
	"github.com/coinsage/coinsage/common/schema"
	"github.com/coinsage/coinsage/server/llm"
	"github.com/coinsage/coinsage/server/market"
)

const ethAddress = "0x6982508145454Ce325dDbE47a25d4ec3d2311933"

type fakeDex struct {
	byAddress map[string]*market.DexToken
	bySymbol  map[string]*market.DexToken
	err       error
	calls     atomic.Int32
}

func (f *fakeDex) TokenByAddress(_ context.Context, address string) (*market.DexToken, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.byAddress[address], nil
}

func (f *fakeDex) TokenBySymbol(_ context.Context, symbol string) (*market.DexToken, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.bySymbol[strings.ToUpper(symbol)], nil
}

type fakeGecko struct {
	tokens   map[string]*market.GeckoToken
	trending []market.TrendingCoin
	list     []market.ListedCoin
	err      error
	calls    atomic.Int32
}

func (f *fakeGecko) MarketData(_ context.Context, symbol string) (*market.GeckoToken, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[strings.ToUpper(symbol)], nil
}

func (f *fakeGecko) Trending(context.Context) ([]market.TrendingCoin, error) {
	f.calls.Add(1)
	return f.trending, f.err
}

func (f *fakeGecko) CoinList(context.Context) ([]market.ListedCoin, error) {
	f.calls.Add(1)
	return f.list, f.err
}

type recorder struct {
	mu      sync.Mutex
	queries []schema.QueryLog
}

func (r *recorder) LogQuery(q schema.QueryLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func pepeDex() *market.DexToken {
	return &market.DexToken{
		Name:      "Pepe",
		Symbol:    "PEPE",
		Chain:     "ethereum",
		Address:   ethAddress,
		Price:     decimal.RequireFromString("0.0000123"),
		Liquidity: decimal.NewFromInt(1500000),
		Volume24h: decimal.NewFromInt(250000),
		Txns24h:   4200,
		FDV:       decimal.NewFromInt(5000000),
	}
}

func pepeGecko() *market.GeckoToken {
	return &market.GeckoToken{
		ID:        "pepe",
		Name:      "Pepe",
		Symbol:    "PEPE",
		Price:     decimal.RequireFromString("0.0000125"),
		Volume24h: decimal.NewFromInt(300000000),
		MarketCap: decimal.NewFromInt(5200000000),
	}
}

func analystModel(t *testing.T) llm.Model {
	t.Helper()
	return llm.ModelFunc(func(_ context.Context, _, prompt string) (string, error) {
		if strings.Contains(prompt, "safety percentage") {
			return "72%: **deep** liquidity", nil
		}
		return "## Healthy\nActive trading.", nil
	})
}

func newService(dex *fakeDex, gecko *fakeGecko, model llm.Model, sink QuerySink) (*Service, *cache.Cache) {
	c := cache.New()
	return New(dex, gecko, model, c, WithQuerySink(sink)), c
}

func TestByAddress(t *testing.T) {
	dex := &fakeDex{byAddress: map[string]*market.DexToken{ethAddress: pepeDex()}}
	gecko := &fakeGecko{tokens: map[string]*market.GeckoToken{"PEPE": pepeGecko()}}
	sink := &recorder{}
	s, c := newService(dex, gecko, analystModel(t), sink)

	tok, err := s.ByAddress(context.Background(), ethAddress, "42")
	if err != nil {
		t.Fatalf("ByAddress: %v", err)
	}
	if tok.Insight != "Healthy\nActive trading." {
		t.Errorf("insight = %q", tok.Insight)
	}
	if tok.SafetyScore != "72%: deep liquidity" {
		t.Errorf("safety = %q", tok.SafetyScore)
	}
	if !tok.Price.Equal(decimal.RequireFromString("0.0000125")) {
		t.Errorf("price = %s, want CoinGecko price", tok.Price)
	}
	if _, ok := c.Get("token_address:" + ethAddress); !ok {
		t.Error("analysis not cached")
	}

	// Served from cache; the query is logged again
	if _, err = s.ByAddress(context.Background(), ethAddress, "42"); err != nil {
		t.Fatalf("ByAddress (cached): %v", err)
	}
	if n := dex.calls.Load(); n != 1 {
		t.Errorf("dex calls = %d, want 1", n)
	}
	if len(sink.queries) != 2 {
		t.Fatalf("logged %d queries, want 2", len(sink.queries))
	}
	want := schema.QueryLog{
		UserID:       "42",
		Command:      schema.CommandAnalyze,
		TokenAddress: ethAddress,
		ChainID:      "ethereum",
		TokenID:      "PEPE",
		TokenName:    "Pepe",
		Response:     map[string]any{"insight": tok.Insight, "safetyScore": tok.SafetyScore},
	}
	if diff := cmp.Diff(want, sink.queries[1]); diff != "" {
		t.Errorf("query log mismatch (-want +got):\n%s", diff)
	}
}

func TestByAddressModelFailure(t *testing.T) {
	dex := &fakeDex{byAddress: map[string]*market.DexToken{ethAddress: pepeDex()}}
	gecko := &fakeGecko{tokens: map[string]*market.GeckoToken{"PEPE": pepeGecko()}}
	failing := llm.ModelFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	s, _ := newService(dex, gecko, failing, nil)

	tok, err := s.ByAddress(context.Background(), ethAddress, "42")
	if err != nil {
		t.Fatalf("ByAddress: %v", err)
	}
	if tok.Insight != "Failed to analyze token" || tok.SafetyScore != "0%" {
		t.Errorf("got insight %q safety %q", tok.Insight, tok.SafetyScore)
	}
}

func TestByAddressErrors(t *testing.T) {
	tests := []struct {
		name    string
		address string
		dex     *fakeDex
		gecko   *fakeGecko
		want    error
		message string
	}{
		{"empty", "", &fakeDex{}, &fakeGecko{}, ErrInvalidAddress, "Token address is required"},
		{"malformed", "0x123", &fakeDex{}, &fakeGecko{}, ErrInvalidAddress,
			"Invalid token address. Must be a valid Ethereum, Solana, or Bitcoin address"},
		{"unknown pair", ethAddress, &fakeDex{}, &fakeGecko{}, ErrNotFound, "not found"},
		{"no market data", ethAddress, &fakeDex{byAddress: map[string]*market.DexToken{ethAddress: pepeDex()}},
			&fakeGecko{}, ErrNotFound, "not found"},
		{"upstream", ethAddress, &fakeDex{err: market.ErrUpstream}, &fakeGecko{}, ErrUpstream, "unavailable"},
	}

	for _, tt := range tests {
		sink := &recorder{}
		s, c := newService(tt.dex, tt.gecko, analystModel(t), sink)
		_, err := s.ByAddress(context.Background(), tt.address, "42")
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
		if got := UserMessage(err, "not found", "unavailable"); got != tt.message {
			t.Errorf("%s: UserMessage = %q, want %q", tt.name, got, tt.message)
		}
		if c.Len() != 0 {
			t.Errorf("%s: %d cache entries after failure", tt.name, c.Len())
		}
		if len(sink.queries) != 0 {
			t.Errorf("%s: failed lookup was logged", tt.name)
		}
	}
}

func TestBySymbol(t *testing.T) {
	dex := &fakeDex{bySymbol: map[string]*market.DexToken{"PEPE": pepeDex()}}
	gecko := &fakeGecko{tokens: map[string]*market.GeckoToken{"PEPE": pepeGecko()}}
	sink := &recorder{}
	s, c := newService(dex, gecko, analystModel(t), sink)

	tok, err := s.BySymbol(context.Background(), "PEPE", "7")
	if err != nil {
		t.Fatalf("BySymbol: %v", err)
	}
	if tok.Chain != "ethereum" || !tok.Liquidity.Equal(decimal.NewFromInt(1500000)) {
		t.Errorf("dex fields missing: %+v", tok)
	}

	// Lower case hits the same entry
	if _, err = s.BySymbol(context.Background(), "pepe", "7"); err != nil {
		t.Fatalf("BySymbol (cached): %v", err)
	}
	if n := gecko.calls.Load(); n != 1 {
		t.Errorf("gecko calls = %d, want 1", n)
	}
	if _, ok := c.Get("token_symbol:pepe"); !ok {
		t.Error("token_symbol:pepe not cached")
	}
	if len(sink.queries) != 2 {
		t.Fatalf("logged %d queries, want 2", len(sink.queries))
	}
	q := sink.queries[0]
	if q.Command != schema.CommandPrice || q.TokenID != "PEPE" || q.Response["liquidity"] != "1500000" {
		t.Errorf("query = %+v", q)
	}
}

func TestBySymbolDexOptional(t *testing.T) {
	dex := &fakeDex{err: market.ErrUpstream}
	gecko := &fakeGecko{tokens: map[string]*market.GeckoToken{"PEPE": pepeGecko()}}
	s, _ := newService(dex, gecko, analystModel(t), nil)

	tok, err := s.BySymbol(context.Background(), "PEPE", "7")
	if err != nil {
		t.Fatalf("BySymbol: %v", err)
	}
	if tok.Chain != "" || !tok.Liquidity.IsZero() {
		t.Errorf("unexpected dex fields: %+v", tok)
	}
}

func TestBySymbolErrors(t *testing.T) {
	tests := []struct {
		symbol string
		want   error
	}{
		{"", ErrInvalidSymbol},
		{"PE-PE", ErrInvalidSymbol},
		{"ABCDEFGHIJK", ErrInvalidSymbol},
		{"NOPE", ErrNotFound},
	}
	for _, tt := range tests {
		s, _ := newService(&fakeDex{}, &fakeGecko{}, analystModel(t), nil)
		if _, err := s.BySymbol(context.Background(), tt.symbol, "7"); !errors.Is(err, tt.want) {
			t.Errorf("BySymbol(%q) err = %v, want %v", tt.symbol, err, tt.want)
		}
	}
}

func TestTokensData(t *testing.T) {
	dex := &fakeDex{bySymbol: map[string]*market.DexToken{"PEPE": pepeDex()}}
	gecko := &fakeGecko{tokens: map[string]*market.GeckoToken{"PEPE": pepeGecko(), "BTC": {Symbol: "btc", Name: "Bitcoin"}}}
	s, _ := newService(dex, gecko, analystModel(t), nil)

	got := s.TokensData(context.Background(), []string{"btc", "NOPE", "PEPE"})
	var symbols []string
	for _, d := range got {
		symbols = append(symbols, d.Symbol)
	}
	if diff := cmp.Diff([]string{"BTC", "PEPE"}, symbols); diff != "" {
		t.Errorf("TokensData mismatch (-want +got):\n%s", diff)
	}
	if got[0].Dex != nil || got[1].Dex == nil {
		t.Errorf("dex side wrong: %+v", got)
	}
}

func TestKnownSymbols(t *testing.T) {
	gecko := &fakeGecko{list: []market.ListedCoin{
		{ID: "bitcoin", Symbol: "btc"},
		{ID: "ethereum", Symbol: "eth"},
		{ID: "wrapped-bitcoin", Symbol: "BTC"},
		{ID: "blank", Symbol: " "},
	}}
	s, _ := newService(&fakeDex{}, gecko, analystModel(t), nil)

	if diff := cmp.Diff([]string{"BTC", "ETH"}, s.KnownSymbols(context.Background())); diff != "" {
		t.Errorf("KnownSymbols mismatch (-want +got):\n%s", diff)
	}
	s.KnownSymbols(context.Background())
	if n := gecko.calls.Load(); n != 1 {
		t.Errorf("coin list calls = %d, want 1", n)
	}

	failing, _ := newService(&fakeDex{}, &fakeGecko{err: market.ErrRateLimited}, analystModel(t), nil)
	if got := failing.KnownSymbols(context.Background()); got != nil {
		t.Errorf("KnownSymbols on failure = %v", got)
	}
}

func TestReferenceSymbols(t *testing.T) {
	gecko := &fakeGecko{
		list: []market.ListedCoin{
			{ID: "0x0", Symbol: "0x0"},
			{ID: "aave", Symbol: "aave"},
			{ID: "bitcoin", Symbol: "btc"},
			{ID: "pepe", Symbol: "pepe"},
		},
		trending: []market.TrendingCoin{{ID: "pepe", Symbol: "PEPE"}, {ID: "sui", Symbol: "SUI"}},
	}
	s, _ := newService(&fakeDex{}, gecko, analystModel(t), nil)

	want := []string{"BTC", "ETH", "PEPE", "SUI", "0X0", "AAVE"}
	if diff := cmp.Diff(want, s.ReferenceSymbols(context.Background())); diff != "" {
		t.Errorf("ReferenceSymbols mismatch (-want +got):\n%s", diff)
	}

	// Provider failures still leave the reference assets
	failing, _ := newService(&fakeDex{}, &fakeGecko{err: market.ErrRateLimited}, analystModel(t), nil)
	if diff := cmp.Diff([]string{"BTC", "ETH"}, failing.ReferenceSymbols(context.Background())); diff != "" {
		t.Errorf("ReferenceSymbols on failure mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaries(t *testing.T) {
	var prompts []string
	var mu sync.Mutex
	model := llm.ModelFunc(func(_ context.Context, _, prompt string) (string, error) {
		mu.Lock()
		prompts = append(prompts, prompt)
		mu.Unlock()
		return "**Summary** text", nil
	})
	gecko := &fakeGecko{
		tokens:   map[string]*market.GeckoToken{"PEPE": pepeGecko(), "BTC": {Symbol: "btc", Name: "Bitcoin"}},
		trending: []market.TrendingCoin{{ID: "pepe", Name: "Pepe", Symbol: "PEPE", MarketCapRank: 30}},
	}
	s, _ := newService(&fakeDex{}, gecko, model, nil)
	ctx := context.Background()

	out, err := s.Recommendations(ctx, "meme")
	if err != nil || out != "Summary text" {
		t.Errorf("Recommendations = %q, %v", out, err)
	}
	if _, err = s.Compare(ctx, []string{"BTC", "PEPE"}, "Compare BTC and PEPE"); err != nil {
		t.Errorf("Compare: %v", err)
	}
	if _, err = s.Compare(ctx, []string{"NOPE", "NADA"}, "Compare NOPE and NADA"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Compare unknown err = %v", err)
	}
	if _, err = s.MarketTrends(ctx); err != nil {
		t.Errorf("MarketTrends: %v", err)
	}
	if _, err = s.GeneralAnswer(ctx, "what is staking"); err != nil {
		t.Errorf("GeneralAnswer: %v", err)
	}

	if len(prompts) != 4 {
		t.Fatalf("model called %d times, want 4", len(prompts))
	}
	if !strings.Contains(prompts[0], "meme") || !strings.Contains(prompts[0], "Pepe (PEPE)") {
		t.Errorf("recommendation prompt = %q", prompts[0])
	}
	if !strings.Contains(prompts[1], "- BTC:") || !strings.Contains(prompts[1], "- PEPE:") {
		t.Errorf("comparison prompt = %q", prompts[1])
	}
}

func TestSummaryFailure(t *testing.T) {
	model := llm.ModelFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("503")
	})
	s, _ := newService(&fakeDex{}, &fakeGecko{}, model, nil)

	_, err := s.GeneralAnswer(context.Background(), "what is staking")
	if !errors.Is(err, ErrSummary) {
		t.Fatalf("err = %v, want ErrSummary", err)
	}
	if got := UserMessage(err, "nf", "un"); got != llm.Apology {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidate(t *testing.T) {
	addresses := []struct {
		in string
		ok bool
	}{
		{ethAddress, true},
		{"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", true},
		{"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", true},
		{"0x6982508145454Ce325dDbE47a25d4ec3d231193", false},
		{"0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl", false},
		{"", false},
	}
	for _, tt := range addresses {
		if err := ValidateAddress(tt.in); (err == nil) != tt.ok {
			t.Errorf("ValidateAddress(%q) = %v", tt.in, err)
		}
	}

	symbols := []struct {
		in string
		ok bool
	}{
		{"BTC", true},
		{"pepe", true},
		{"1INCH", true},
		{"ABCDEFGHIJ", true},
		{"ABCDEFGHIJK", false},
		{"$BTC", false},
		{"", false},
	}
	for _, tt := range symbols {
		if err := ValidateSymbol(tt.in); (err == nil) != tt.ok {
			t.Errorf("ValidateSymbol(%q) = %v", tt.in, err)
		}
	}
}
