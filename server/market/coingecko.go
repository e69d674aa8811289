//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package market

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CoinGeckoURL  = "https://api.coingecko.com/api/v3"
	CoinGeckoRate = 25 // requests per minute on the public tier
)

type geckoMarket struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	TotalVolume  decimal.Decimal `json:"total_volume"`
	MarketCap    decimal.Decimal `json:"market_cap"`
	Change24h    decimal.Decimal `json:"price_change_percentage_24h"`
}

type geckoTrending struct {
	Coins []struct {
		Item struct {
			ID            string          `json:"id"`
			Name          string          `json:"name"`
			Symbol        string          `json:"symbol"`
			MarketCapRank int             `json:"market_cap_rank"`
			PriceBTC      decimal.Decimal `json:"price_btc"`
		} `json:"item"`
	} `json:"coins"`
}

// CoinGecko looks up market data
type CoinGecko struct {
	client
}

func NewCoinGecko(options ...Option) *CoinGecko {
	return &CoinGecko{client: newClient("coingecko", CoinGeckoURL, CoinGeckoRate, 4330, options...)}
}

// MarketData returns USD market data for a symbol, or nil if CoinGecko
// does not know it
func (g *CoinGecko) MarketData(ctx context.Context, symbol string) (*GeckoToken, error) {
	var r []geckoMarket
	path := "/coins/markets?vs_currency=usd&symbols=" + url.QueryEscape(strings.ToLower(symbol))
	found, err := g.getJSON(ctx, path, &r)
	if err != nil || !found || len(r) == 0 {
		return nil, err
	}

	m := r[0]
	return &GeckoToken{
		ID:        m.ID,
		Name:      m.Name,
		Symbol:    strings.ToUpper(m.Symbol),
		Price:     m.CurrentPrice,
		Volume24h: m.TotalVolume,
		MarketCap: m.MarketCap,
		Change24h: m.Change24h,
	}, nil
}

// Trending returns CoinGecko's trending coins
func (g *CoinGecko) Trending(ctx context.Context) ([]TrendingCoin, error) {
	var r geckoTrending
	if _, err := g.getJSON(ctx, "/search/trending", &r); err != nil {
		return nil, err
	}

	coins := make([]TrendingCoin, 0, len(r.Coins))
	for _, c := range r.Coins {
		coins = append(coins, TrendingCoin{
			ID:            c.Item.ID,
			Name:          c.Item.Name,
			Symbol:        strings.ToUpper(c.Item.Symbol),
			MarketCapRank: c.Item.MarketCapRank,
			PriceBTC:      c.Item.PriceBTC,
		})
	}
	return coins, nil
}

// CoinList returns every coin CoinGecko lists
func (g *CoinGecko) CoinList(ctx context.Context) ([]ListedCoin, error) {
	var r []ListedCoin
	if _, err := g.getJSON(ctx, "/coins/list", &r); err != nil {
		return nil, err
	}
	return r, nil
}
