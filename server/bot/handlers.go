/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/coinsage/coinsage/common/cache"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/server/token"
)

// cached returns the reply stored under key, or builds it with fn. Replies
// are stored only when fn succeeds.
func (d *Dispatcher) cached(key string, ttl int, fn func() (string, bool)) string {
	if reply, ok := d.cache.GetString(key); ok {
		d.logger.Debug(4010, "reply served from cache", fields.NewFields(fields.NewField("key", key)))
		return reply
	}
	reply, ok := fn()
	if ok {
		d.cache.Set(key, reply, ttl)
	}
	return reply
}

func (d *Dispatcher) failed(op string, err error, notFound, unavailable string) string {
	d.logger.Warning(4020, op+" failed", fields.NewFields(fields.Err(err)))
	return token.UserMessage(err, notFound, unavailable)
}

func (d *Dispatcher) address(ctx context.Context, msg Message, address string) string {
	return d.cached(cache.AddressKey(cache.NSAddress, address), cache.TTLAddressReply, func() (string, bool) {
		t, err := d.tokens.ByAddress(ctx, address, msg.UserID)
		if err != nil {
			return d.failed("address lookup", err, addressNotFound, addressUnavailable), false
		}
		return fmt.Sprintf(`📊 Token: %s (%s)
   Chain: %s
   Price: %s
   Liquidity: %s
   24h Volume: %s (%d txns)

🧠 AI Insight: %s
🛡 Safety Score: %s`,
			t.Name, t.Symbol, t.Chain, usd(t.Price), usd(t.Liquidity), usd(t.Volume24h), t.Txns24h,
			t.Insight, t.SafetyScore), true
	})
}

func (d *Dispatcher) price(ctx context.Context, msg Message, symbol string) string {
	symbol = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(symbol), "$"))
	if symbol == "" {
		return specifySymbol
	}
	return d.cached(cache.SymbolKey(cache.NSPrice, symbol), cache.TTLPriceReply, func() (string, bool) {
		t, err := d.tokens.BySymbol(ctx, symbol, msg.UserID)
		if err != nil {
			return d.failed("price lookup", err, symbolNotFound, priceUnavailable), false
		}
		return fmt.Sprintf(`📊 Token: %s (%s)
   Price: %s
   24h Volume: %s
   Liquidity: %s`,
			t.Name, strings.ToUpper(t.Symbol), usd(t.Price), usd(t.Volume24h), usd(t.Liquidity)), true
	})
}

func (d *Dispatcher) recommend(ctx context.Context, category string) string {
	return d.cached(cache.TextKey(cache.NSRecommendation, category), cache.TTLRecommend, func() (string, bool) {
		out, err := d.tokens.Recommendations(ctx, category)
		if err != nil {
			return d.failed("recommendation", err, recommendUnavailable, recommendUnavailable), false
		}
		return out, true
	})
}

func (d *Dispatcher) compare(ctx context.Context, query string) string {
	return d.cached(cache.TextKey(cache.NSComparison, query), cache.TTLComparison, func() (string, bool) {
		symbols := d.tokens.ExtractSymbols(ctx, query)
		if len(symbols) < 2 {
			return specifyMention, false
		}
		out, err := d.tokens.Compare(ctx, symbols, query)
		if err != nil {
			return d.failed("comparison", err, specifyMention, compareUnavailable), false
		}
		return out, true
	})
}

func (d *Dispatcher) trends(ctx context.Context) string {
	return d.cached(cache.TrendKey(d.now()), cache.TTLTrend, func() (string, bool) {
		out, err := d.tokens.MarketTrends(ctx)
		if err != nil {
			return d.failed("market trends", err, trendsUnavailable, trendsUnavailable), false
		}
		return out, true
	})
}

func (d *Dispatcher) general(ctx context.Context, question string) string {
	return d.cached(cache.TextKey(cache.NSGeneral, question), cache.TTLGeneral, func() (string, bool) {
		out, err := d.answer(ctx, question)
		if err != nil {
			return d.failed("general question", err, generalUnavailable, generalUnavailable), false
		}
		return out, true
	})
}

// answer compares when several known tokens are named alongside "compare",
// answers from market data when at least one is known, and otherwise
// answers without data
func (d *Dispatcher) answer(ctx context.Context, question string) (string, error) {
	symbols := d.tokens.ExtractSymbols(ctx, question)
	if len(symbols) == 0 {
		return d.tokens.GeneralAnswer(ctx, question)
	}

	data := d.tokens.TokensData(ctx, symbols)
	switch {
	case len(data) > 1 && strings.Contains(strings.ToLower(question), "compare"):
		valid := make([]string, len(data))
		for i, v := range data {
			valid[i] = v.Symbol
		}
		return d.tokens.Compare(ctx, valid, question)
	case len(data) > 0:
		return d.tokens.AnswerTokenQuestion(ctx, question, data)
	default:
		return d.tokens.GeneralAnswer(ctx, question)
	}
}
