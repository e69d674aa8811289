//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package token

import (
	"context"
	"sort"
	"strings"

	"github.com/coinsage/coinsage/common/cache"
	"github.com/coinsage/coinsage/common/fields"
)

// KnownSymbols returns the upper-cased, sorted symbols CoinGecko lists.
// A failed load yields nil; the list only guides extraction.
func (s *Service) KnownSymbols(ctx context.Context) []string {
	v, err := s.cache.Fetch(ctx, cache.Key(cache.NSTokenList, "coingecko"), cache.TTLTokenList,
		func(ctx context.Context) (any, error) {
			coins, err := s.gecko.CoinList(ctx)
			if err != nil {
				return nil, err
			}
			seen := make(map[string]struct{}, len(coins))
			list := make([]string, 0, len(coins))
			for _, c := range coins {
				sym := strings.ToUpper(strings.TrimSpace(c.Symbol))
				if sym == "" {
					continue
				}
				if _, ok := seen[sym]; ok {
					continue
				}
				seen[sym] = struct{}{}
				list = append(list, sym)
			}
			sort.Strings(list)
			return list, nil
		})
	if err != nil {
		s.logger.Warning(4120, "coin list unavailable", fields.NewFields(fields.Err(err)))
		return nil
	}
	return v.([]string)
}

// ReferenceSymbols orders the known symbols for the extractor, most
// relevant first: the reference assets, then what is trending, then the
// full list. Trending is best effort.
func (s *Service) ReferenceSymbols(ctx context.Context) []string {
	known := s.KnownSymbols(ctx)
	trending, err := s.Trending(ctx)
	if err != nil {
		s.logger.Debug(4121, "trending unavailable for reference list", fields.NewFields(fields.Err(err)))
	}

	out := make([]string, 0, len(referenceSymbols)+len(trending)+len(known))
	seen := make(map[string]struct{}, cap(out))
	add := func(sym string) {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			return
		}
		if _, ok := seen[sym]; !ok {
			seen[sym] = struct{}{}
			out = append(out, sym)
		}
	}

	for _, sym := range referenceSymbols {
		add(sym)
	}
	for _, c := range trending {
		add(c.Symbol)
	}
	for _, sym := range known {
		add(sym)
	}
	return out
}

// ExtractSymbols returns the sorted symbols mentioned in text
func (s *Service) ExtractSymbols(ctx context.Context, text string) []string {
	return s.extractor.Extract(ctx, text, s.ReferenceSymbols(ctx)).Slice()
}
