//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package cache

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Key namespaces. Each identifies the operation whose result is cached.
const (
	NSAddress        = "address"
	NSPrice          = "price"
	NSComparison     = "comparison"
	NSTrend          = "trend"
	NSRecommendation = "recommendation"
	NSGeneral        = "general"
	NSTokenAddress   = "token_address"
	NSTokenSymbol    = "token_symbol"
	NSTokenList      = "token_list"
	NSTokenData      = "token_data"
	NSTrending       = "trending"
)

// TTLs in seconds
const (
	TTLAddressReply  = 300
	TTLPriceReply    = 300
	TTLTokenData     = 600
	TTLRecommend     = 7200
	TTLComparison    = 3600
	TTLTrend         = 3600
	TTLGeneral       = 3600
	TTLTokenList     = 3600
	TTLTrendingCoins = 600
)

// Key joins a namespace and an already-normalized argument
func Key(namespace, arg string) string {
	return namespace + ":" + arg
}

// TextKey builds a key for free text so that requests differing only in
// case or incidental whitespace share an entry
func TextKey(namespace, text string) string {
	return Key(namespace, NormalizeText(text))
}

// SymbolKey builds a key for a ticker. Tickers are case-insensitive.
func SymbolKey(namespace, symbol string) string {
	return Key(namespace, strings.ToLower(strings.TrimSpace(symbol)))
}

// AddressKey builds a key for a chain address. Base58 addresses are
// case-sensitive, so the address is used verbatim.
func AddressKey(namespace, address string) string {
	return Key(namespace, strings.TrimSpace(address))
}

// TrendKey builds the market trend key for the UTC calendar day of t
func TrendKey(t time.Time) string {
	return Key(NSTrend, t.UTC().Format("2006-01-02"))
}

// NormalizeText case-folds s, trims it and collapses each whitespace run
// into a single underscore
func NormalizeText(s string) string {
	// A Caser holds state and must not be shared between goroutines
	folded := cases.Fold().String(s)
	return strings.Join(strings.Fields(folded), "_")
}
