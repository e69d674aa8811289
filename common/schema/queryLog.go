//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

import "time"

// Command kinds recorded in the query log
const (
	CommandAnalyze = "analyze"
	CommandPrice   = "price"
)

// QueryLog is one append-only record of a chat request that produced
// token data
type QueryLog struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Command      string         `json:"command"`
	TokenAddress string         `json:"tokenAddress,omitempty"`
	ChainID      string         `json:"chainId,omitempty"`
	TokenID      string         `json:"tokenId,omitempty"`
	TokenName    string         `json:"tokenName,omitempty"`
	Response     map[string]any `json:"response"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// QueryFilter selects query-log entries. Empty fields match anything.
type QueryFilter struct {
	Command      string
	TokenAddress string
	TokenID      string
	Limit        int
}

// Matches reports whether q satisfies the filter
func (f QueryFilter) Matches(q QueryLog) bool {
	if f.Command != "" && q.Command != f.Command {
		return false
	}
	if f.TokenAddress != "" && q.TokenAddress != f.TokenAddress {
		return false
	}
	if f.TokenID != "" && q.TokenID != f.TokenID {
		return false
	}
	return true
}

// ValidCommand reports whether c is a command kind exposed by the API
func ValidCommand(c string) bool {
	return c == CommandAnalyze || c == CommandPrice
}
