//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package token

import (
	"regexp"
)

// Ethereum, Solana (base58) or Bitcoin (legacy/P2SH)
var addressPattern = regexp.MustCompile(`^(0x[a-fA-F0-9]{40}|[1-9A-HJ-NP-Za-km-z]{32,44}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})$`)

var symbolPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

const MaxSymbolLength = 10

// ValidateAddress checks that address looks like a supported chain address
func ValidateAddress(address string) error {
	if address == "" {
		return &ValidationError{kind: ErrInvalidAddress, Message: "Token address is required"}
	}
	if !addressPattern.MatchString(address) {
		return &ValidationError{kind: ErrInvalidAddress, Message: "Invalid token address. Must be a valid Ethereum, Solana, or Bitcoin address"}
	}
	return nil
}

// ValidateSymbol checks that symbol is 1-10 alphanumeric characters
func ValidateSymbol(symbol string) error {
	switch {
	case symbol == "":
		return &ValidationError{kind: ErrInvalidSymbol, Message: "Token symbol is required"}
	case !symbolPattern.MatchString(symbol):
		return &ValidationError{kind: ErrInvalidSymbol, Message: "Token symbol must be alphanumeric"}
	case len(symbol) > MaxSymbolLength:
		return &ValidationError{kind: ErrInvalidSymbol, Message: "Token symbol must be at most 10 characters"}
	}
	return nil
}
