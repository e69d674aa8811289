/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package token

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/coinsage/coinsage/common/cache"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/schema"
)

// ByAddress analyzes the token at a contract address and records the query
func (s *Service) ByAddress(ctx context.Context, address, userID string) (*Token, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	v, err := s.cache.Fetch(ctx, cache.AddressKey(cache.NSTokenAddress, address), cache.TTLTokenData,
		func(ctx context.Context) (any, error) {
			return s.analyze(ctx, address)
		})
	if err != nil {
		return nil, err
	}
	t := v.(*Token)

	s.logQuery(schema.QueryLog{
		UserID:       userID,
		Command:      schema.CommandAnalyze,
		TokenAddress: address,
		ChainID:      t.Chain,
		TokenID:      t.Symbol,
		TokenName:    t.Name,
		Response: map[string]any{
			"insight":     t.Insight,
			"safetyScore": t.SafetyScore,
		},
	})
	return t, nil
}

func (s *Service) analyze(ctx context.Context, address string) (*Token, error) {
	dex, err := s.dex.TokenByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if dex == nil {
		return nil, fmt.Errorf("%w: address %s", ErrNotFound, address)
	}

	gecko, err := s.gecko.MarketData(ctx, dex.Symbol)
	if err != nil {
		return nil, err
	}
	if gecko == nil {
		return nil, fmt.Errorf("%w: no market data for %s", ErrNotFound, dex.Symbol)
	}

	t := &Token{
		Name:      dex.Name,
		Symbol:    dex.Symbol,
		Chain:     dex.Chain,
		Address:   dex.Address,
		Price:     gecko.Price,
		Liquidity: dex.Liquidity,
		Volume24h: gecko.Volume24h,
		Txns24h:   dex.Txns24h,
		FDV:       dex.FDV,
		MarketCap: gecko.MarketCap,
	}

	metrics := metricsBlock(t)
	insight, err := s.summarize(ctx, analystSystem, fmt.Sprintf(insightPrompt, metrics))
	if err != nil {
		insight = "Failed to analyze token"
	}
	score, err := s.summarize(ctx, analystSystem, fmt.Sprintf(safetyPrompt, metrics))
	if err != nil {
		score = "0%"
	}
	t.Insight, t.SafetyScore = insight, score

	s.logger.Info(4101, "token analyzed", fields.NewFields(
		fields.NewField("address", address),
		fields.NewField("symbol", t.Symbol),
		fields.NewField("chain", t.Chain)))
	return t, nil
}

// BySymbol returns market data for a ticker and records the query
func (s *Service) BySymbol(ctx context.Context, symbol, userID string) (*Token, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	v, err := s.cache.Fetch(ctx, cache.SymbolKey(cache.NSTokenSymbol, symbol), cache.TTLTokenData,
		func(ctx context.Context) (any, error) {
			return s.price(ctx, symbol)
		})
	if err != nil {
		return nil, err
	}
	t := v.(*Token)

	s.logQuery(schema.QueryLog{
		UserID:       userID,
		Command:      schema.CommandPrice,
		TokenAddress: t.Address,
		ChainID:      t.Chain,
		TokenID:      strings.ToUpper(symbol),
		TokenName:    t.Name,
		Response: map[string]any{
			"price":     t.Price.String(),
			"volume24h": t.Volume24h.String(),
			"marketCap": t.MarketCap.String(),
			"liquidity": t.Liquidity.String(),
		},
	})
	return t, nil
}

func (s *Service) price(ctx context.Context, symbol string) (*Token, error) {
	gecko, err := s.gecko.MarketData(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if gecko == nil {
		return nil, fmt.Errorf("%w: symbol %s", ErrNotFound, symbol)
	}

	t := &Token{
		Name:      gecko.Name,
		Symbol:    gecko.Symbol,
		Price:     gecko.Price,
		Volume24h: gecko.Volume24h,
		MarketCap: gecko.MarketCap,
	}

	// Liquidity and chain are extras; a DexScreener failure does not fail the lookup
	dex, err := s.dex.TokenBySymbol(ctx, symbol)
	if err != nil {
		s.logger.Warning(4102, "dexscreener lookup failed", fields.NewFields(
			fields.NewField("symbol", symbol),
			fields.NewField("error", err.Error())))
	}
	if dex != nil {
		t.Chain = dex.Chain
		t.Address = dex.Address
		t.Liquidity = dex.Liquidity
		t.Txns24h = dex.Txns24h
		t.FDV = dex.FDV
	}
	return t, nil
}

// SymbolData returns what both providers know about a symbol. Provider
// errors are logged and leave that side empty.
func (s *Service) SymbolData(ctx context.Context, symbol string) SymbolData {
	v, err := s.cache.Fetch(ctx, cache.SymbolKey(cache.NSTokenData, symbol), cache.TTLTokenData,
		func(ctx context.Context) (any, error) {
			d := SymbolData{Symbol: strings.ToUpper(symbol)}
			var dexErr, geckoErr error

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				d.Dex, dexErr = s.dex.TokenBySymbol(ctx, symbol)
			}()
			go func() {
				defer wg.Done()
				d.Gecko, geckoErr = s.gecko.MarketData(ctx, symbol)
			}()
			wg.Wait()

			// Do not cache a result that failed on both sides
			if dexErr != nil && geckoErr != nil {
				return nil, fmt.Errorf("%w; %w", dexErr, geckoErr)
			}
			return d, nil
		})
	if err != nil {
		s.logger.Warning(4103, "symbol data unavailable", fields.NewFields(
			fields.NewField("symbol", symbol),
			fields.NewField("error", err.Error())))
		return SymbolData{Symbol: strings.ToUpper(symbol)}
	}
	return v.(SymbolData)
}

// TokensData fetches SymbolData for each symbol concurrently and returns
// only the entries at least one provider knows, in input order
func (s *Service) TokensData(ctx context.Context, symbols []string) []SymbolData {
	all := make([]SymbolData, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			all[i] = s.SymbolData(gctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	valid := make([]SymbolData, 0, len(all))
	for _, d := range all {
		if d.Valid() {
			valid = append(valid, d)
		}
	}
	return valid
}
