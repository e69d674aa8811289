//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package router

// Kind is the tag a classifier uses for an intent
type Kind string

const (
	KindPriceQuery     Kind = "handlePriceQuery"
	KindAddressLookup  Kind = "handleTokenAddress"
	KindMarketTrend    Kind = "handleMarketTrends"
	KindRecommendation Kind = "handleTokenRecommendation"
	KindComparison     Kind = "handleTokenComparison"
	KindGeneral        Kind = "handleGeneralQuestion"
)

// DefaultSymbol is the argument of the fallback intent
const DefaultSymbol = "BTC"

// Fallback is returned whenever classification fails
var Fallback = PriceQuery{Symbol: DefaultSymbol}

// Intent is one of the request kinds the bot can answer. The set is
// closed: only types in this package implement it.
type Intent interface {
	Kind() Kind
	isIntent()
}

// PriceQuery asks for the current price of a ticker
type PriceQuery struct {
	Symbol string
}

// AddressLookup asks for an analysis of a token contract address
type AddressLookup struct {
	Address string
}

// MarketTrend asks how the market is doing today
type MarketTrend struct{}

// Recommendation asks for tokens in a category
type Recommendation struct {
	Category string
}

// Comparison compares tokens mentioned in Query, the user's full text
type Comparison struct {
	Query string
}

// GeneralQuestion is any other crypto question
type GeneralQuestion struct {
	Question string
}

func (PriceQuery) Kind() Kind      { return KindPriceQuery }
func (AddressLookup) Kind() Kind   { return KindAddressLookup }
func (MarketTrend) Kind() Kind     { return KindMarketTrend }
func (Recommendation) Kind() Kind  { return KindRecommendation }
func (Comparison) Kind() Kind      { return KindComparison }
func (GeneralQuestion) Kind() Kind { return KindGeneral }

func (PriceQuery) isIntent()      {}
func (AddressLookup) isIntent()   {}
func (MarketTrend) isIntent()     {}
func (Recommendation) isIntent()  {}
func (Comparison) isIntent()      {}
func (GeneralQuestion) isIntent() {}

// arity is the number of required arguments for each kind
var arity = map[Kind]int{
	KindPriceQuery:     1,
	KindAddressLookup:  1,
	KindMarketTrend:    0,
	KindRecommendation: 1,
	KindComparison:     1,
	KindGeneral:        1,
}
