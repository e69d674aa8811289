//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package market

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

const (
	DexScreenerURL  = "https://api.dexscreener.com"
	DexScreenerRate = 250 // requests per minute
)

type dexPair struct {
	ChainID   string          `json:"chainId"`
	PriceUSD  decimal.Decimal `json:"priceUsd"`
	FDV       decimal.Decimal `json:"fdv"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	Liquidity struct {
		USD decimal.Decimal `json:"usd"`
	} `json:"liquidity"`
	Volume struct {
		H24 decimal.Decimal `json:"h24"`
	} `json:"volume"`
	Txns struct {
		H24 struct {
			Buys  int64 `json:"buys"`
			Sells int64 `json:"sells"`
		} `json:"h24"`
	} `json:"txns"`
}

type dexResponse struct {
	Pairs []dexPair `json:"pairs"`
}

// DexScreener looks up trading pairs
type DexScreener struct {
	client
}

func NewDexScreener(options ...Option) *DexScreener {
	return &DexScreener{client: newClient("dexscreener", DexScreenerURL, DexScreenerRate, 4320, options...)}
}

// TokenByAddress returns the first pair for a contract address, or nil
func (d *DexScreener) TokenByAddress(ctx context.Context, address string) (*DexToken, error) {
	return d.first(ctx, "/latest/dex/tokens/"+url.PathEscape(address))
}

// TokenBySymbol returns the first search result for a symbol, or nil
func (d *DexScreener) TokenBySymbol(ctx context.Context, symbol string) (*DexToken, error) {
	return d.first(ctx, "/latest/dex/search?q="+url.QueryEscape(symbol))
}

func (d *DexScreener) first(ctx context.Context, path string) (*DexToken, error) {
	var r dexResponse
	found, err := d.getJSON(ctx, path, &r)
	if err != nil || !found || len(r.Pairs) == 0 {
		return nil, err
	}

	p := r.Pairs[0]
	return &DexToken{
		Name:      p.BaseToken.Name,
		Symbol:    p.BaseToken.Symbol,
		Chain:     p.ChainID,
		Address:   p.BaseToken.Address,
		Price:     p.PriceUSD,
		Liquidity: p.Liquidity.USD,
		Volume24h: p.Volume.H24,
		Txns24h:   p.Txns.H24.Buys + p.Txns.H24.Sells,
		FDV:       p.FDV,
	}, nil
}
