//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package token

import (
	"errors"

	"github.com/coinsage/coinsage/server/llm"
	"github.com/coinsage/coinsage/server/market"
)

var (
	ErrInvalidAddress = errors.New("invalid token address")
	ErrInvalidSymbol  = errors.New("invalid token symbol")
	ErrNotFound       = errors.New("token not found")
	ErrUpstream       = market.ErrUpstream
	ErrSummary        = errors.New("summary unavailable")
)

// ValidationError carries the message shown to the user
type ValidationError struct {
	kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// UserMessage maps an error to the wording shown in chat. notFound and
// unavailable are the caller's messages for those categories.
func UserMessage(err error, notFound, unavailable string) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, ErrNotFound):
		return notFound
	case errors.Is(err, ErrSummary):
		return llm.Apology
	default:
		return unavailable
	}
}
