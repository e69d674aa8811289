//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coinsage/coinsage/server/llm"
)

var (
	ErrUnknownKind  = errors.New("unknown intent")
	ErrMissingArg   = errors.New("missing argument")
	ErrEmptyMessage = errors.New("empty message")
)

// wire is the classifier's response shape
type wire struct {
	Function string   `json:"function"`
	Args     []string `json:"args"`
}

// Parse decodes a classifier response into an Intent. text is the user's
// original message and stands in for a missing comparison or general
// question argument. Extra arguments are ignored.
func Parse(raw, text string) (Intent, error) {
	var w wire
	if err := llm.DecodeStrict(raw, &w); err != nil {
		return nil, err
	}

	kind := Kind(w.Function)
	need, ok := arity[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Function)
	}

	var arg string
	if len(w.Args) > 0 {
		arg = strings.TrimSpace(w.Args[0])
	}

	if (kind == KindComparison || kind == KindGeneral) && arg == "" {
		arg = strings.TrimSpace(text)
	}

	if kind == KindPriceQuery {
		arg = strings.TrimSpace(strings.TrimPrefix(arg, "$"))
	}

	if need > 0 && arg == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingArg, kind)
	}

	switch kind {
	case KindPriceQuery:
		return PriceQuery{Symbol: arg}, nil
	case KindAddressLookup:
		return AddressLookup{Address: arg}, nil
	case KindMarketTrend:
		return MarketTrend{}, nil
	case KindRecommendation:
		return Recommendation{Category: arg}, nil
	case KindComparison:
		return Comparison{Query: arg}, nil
	case KindGeneral:
		return GeneralQuestion{Question: arg}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, w.Function)
}
