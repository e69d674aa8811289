/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package token answers questions about tokens using market data and the
// language model.
package token

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/common/schema"
	"github.com/coinsage/coinsage/server/extractor"
	"github.com/coinsage/coinsage/server/llm"
	"github.com/coinsage/coinsage/server/market"
)

// DexProvider looks up trading pairs
type DexProvider interface {
	TokenByAddress(ctx context.Context, address string) (*market.DexToken, error)
	TokenBySymbol(ctx context.Context, symbol string) (*market.DexToken, error)
}

// GeckoProvider looks up market data
type GeckoProvider interface {
	MarketData(ctx context.Context, symbol string) (*market.GeckoToken, error)
	Trending(ctx context.Context) ([]market.TrendingCoin, error)
	CoinList(ctx context.Context) ([]market.ListedCoin, error)
}

// QuerySink records answered queries
type QuerySink interface {
	LogQuery(q schema.QueryLog)
}

// Token is what the bot reports about a token
type Token struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Chain       string          `json:"chain"`
	Address     string          `json:"address"`
	Price       decimal.Decimal `json:"price"`
	Liquidity   decimal.Decimal `json:"liquidity"`
	Volume24h   decimal.Decimal `json:"volume24h"`
	Txns24h     int64           `json:"txns24h"`
	FDV         decimal.Decimal `json:"fdv"`
	MarketCap   decimal.Decimal `json:"marketCap"`
	Insight     string          `json:"insight,omitempty"`
	SafetyScore string          `json:"safetyScore,omitempty"`
}

// SymbolData is whatever each provider knows about one symbol. Either
// side may be nil.
type SymbolData struct {
	Symbol string
	Dex    *market.DexToken
	Gecko  *market.GeckoToken
}

func (d SymbolData) Valid() bool {
	return d.Dex != nil || d.Gecko != nil
}

type Service struct {
	dex       DexProvider
	gecko     GeckoProvider
	model     llm.Model
	extractor *extractor.Extractor
	cache     interfaces.Cache
	sink      QuerySink
	logger    interfaces.Logger
}

type Option func(*Service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQuerySink records price and analyze queries
func WithQuerySink(sink QuerySink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithExtractor replaces the default extractor built on the model
func WithExtractor(e *extractor.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

func New(dex DexProvider, gecko GeckoProvider, model llm.Model, c interfaces.Cache, options ...Option) *Service {
	s := &Service{
		dex:    dex,
		gecko:  gecko,
		model:  model,
		cache:  c,
		logger: null.Logger(),
	}
	for _, op := range options {
		op(s)
	}
	if s.extractor == nil {
		s.extractor = extractor.New(model, extractor.WithLogger(s.logger))
	}
	return s
}

// Model returns the language model the service summarizes with
func (s *Service) Model() llm.Model {
	return s.model
}

func (s *Service) logQuery(q schema.QueryLog) {
	if s.sink != nil {
		s.sink.LogQuery(q)
	}
}
