/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package token

import (
	"context"
	"fmt"
	"strings"

	"github.com/coinsage/coinsage/common"
	"github.com/coinsage/coinsage/common/cache"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/server/llm"
	"github.com/coinsage/coinsage/server/market"
)

// Assets described in every market trend summary
var referenceSymbols = []string{"BTC", "ETH"}

// summarize runs one LLM call and strips markdown from the answer
func (s *Service) summarize(ctx context.Context, system, prompt string) (string, error) {
	out, err := s.model.Generate(ctx, system, prompt)
	if err != nil {
		s.logger.Warning(4110, "summary failed", fields.NewFields(fields.Err(err)))
		return "", fmt.Errorf("%w: %w", ErrSummary, err)
	}
	text := llm.CleanMarkdown(out)
	if text == "" {
		return "", fmt.Errorf("%w: %w", ErrSummary, llm.ErrEmptyResponse)
	}
	return text, nil
}

// Trending returns CoinGecko's trending coins, cached briefly
func (s *Service) Trending(ctx context.Context) ([]market.TrendingCoin, error) {
	v, err := s.cache.Fetch(ctx, cache.Key(cache.NSTrending, "coingecko"), cache.TTLTrendingCoins,
		func(ctx context.Context) (any, error) {
			return s.gecko.Trending(ctx)
		})
	if err != nil {
		return nil, err
	}
	return v.([]market.TrendingCoin), nil
}

// Recommendations suggests tokens for a category from what is trending
func (s *Service) Recommendations(ctx context.Context, category string) (string, error) {
	trending, err := s.Trending(ctx)
	if err != nil {
		return "", err
	}
	return s.summarize(ctx, analystSystem, fmt.Sprintf(recommendPrompt, category, trendingBlock(trending)))
}

// Compare summarizes the differences between the given symbols
func (s *Service) Compare(ctx context.Context, symbols []string, query string) (string, error) {
	data := s.TokensData(ctx, symbols)
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, strings.Join(symbols, ","))
	}
	return s.summarize(ctx, analystSystem, fmt.Sprintf(comparePrompt, common.SingleLine(query), dataBlock(data)))
}

// MarketTrends summarizes the market using reference assets and trending coins
func (s *Service) MarketTrends(ctx context.Context) (string, error) {
	trending, err := s.Trending(ctx)
	if err != nil {
		return "", err
	}
	ref := s.TokensData(ctx, referenceSymbols)
	return s.summarize(ctx, analystSystem, fmt.Sprintf(trendsPrompt, dataBlock(ref), trendingBlock(trending)))
}

// AnswerTokenQuestion answers a question about tokens whose data is known
func (s *Service) AnswerTokenQuestion(ctx context.Context, question string, data []SymbolData) (string, error) {
	return s.summarize(ctx, analystSystem, fmt.Sprintf(tokenQuestionPrompt, common.SingleLine(question), dataBlock(data)))
}

// GeneralAnswer answers a crypto question without market data
func (s *Service) GeneralAnswer(ctx context.Context, question string) (string, error) {
	return s.summarize(ctx, analystSystem, fmt.Sprintf(generalPrompt, question))
}

func metricsBlock(t *Token) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", t.Name)
	fmt.Fprintf(&b, "Symbol: %s\n", t.Symbol)
	fmt.Fprintf(&b, "Chain: %s\n", t.Chain)
	fmt.Fprintf(&b, "Price: %s\n", t.Price.String())
	fmt.Fprintf(&b, "Liquidity: %s\n", t.Liquidity.String())
	fmt.Fprintf(&b, "Volume 24h: %s\n", t.Volume24h.String())
	fmt.Fprintf(&b, "Txns 24h: %d\n", t.Txns24h)
	fmt.Fprintf(&b, "FDV: %s", t.FDV.String())
	return b.String()
}

func dataBlock(data []SymbolData) string {
	if len(data) == 0 {
		return "(no data)"
	}
	var b strings.Builder
	for _, d := range data {
		fmt.Fprintf(&b, "- %s:", d.Symbol)
		if g := d.Gecko; g != nil {
			fmt.Fprintf(&b, " name=%s price=%s marketCap=%s volume24h=%s change24h=%s%%",
				g.Name, g.Price, g.MarketCap, g.Volume24h, g.Change24h.StringFixed(2))
		}
		if x := d.Dex; x != nil {
			fmt.Fprintf(&b, " chain=%s liquidity=%s txns24h=%d fdv=%s", x.Chain, x.Liquidity, x.Txns24h, x.FDV)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func trendingBlock(coins []market.TrendingCoin) string {
	if len(coins) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, c := range coins {
		fmt.Fprintf(&b, "- %s (%s) rank=%d priceBtc=%s\n", c.Name, c.Symbol, c.MarketCapRank, c.PriceBTC)
	}
	return strings.TrimRight(b.String(), "\n")
}
