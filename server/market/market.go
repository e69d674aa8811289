/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package market fetches token data from DexScreener and CoinGecko.
package market

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrUpstream covers transport failures and unexpected responses
	ErrUpstream = errors.New("market data provider unavailable")

	// ErrRateLimited is returned when a provider answers 429
	ErrRateLimited = errors.New("market data provider rate limited")
)

// DexToken is the best pair DexScreener reports for a token
type DexToken struct {
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Chain     string          `json:"chain"`
	Address   string          `json:"address"`
	Price     decimal.Decimal `json:"price"`
	Liquidity decimal.Decimal `json:"liquidity"`
	Volume24h decimal.Decimal `json:"volume24h"`
	Txns24h   int64           `json:"txns24h"`
	FDV       decimal.Decimal `json:"fdv"`
}

// GeckoToken is CoinGecko market data for a symbol
type GeckoToken struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Volume24h decimal.Decimal `json:"volume24h"`
	MarketCap decimal.Decimal `json:"marketCap"`
	Change24h decimal.Decimal `json:"change24h"`
}

// TrendingCoin is an entry of CoinGecko's trending list
type TrendingCoin struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	MarketCapRank int             `json:"marketCapRank"`
	PriceBTC      decimal.Decimal `json:"priceBtc"`
}

// ListedCoin is an entry of CoinGecko's full coin list
type ListedCoin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
