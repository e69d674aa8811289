//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package llm is the boundary to the hosted language model.
package llm

import (
	"context"
	"errors"
)

// Apology is returned to users when a summary cannot be produced
const Apology = "Sorry, I couldn't generate a response right now. Please try again later."

var ErrEmptyResponse = errors.New("model returned no text")

// Event ids logged by this package (4500-4599)
const (
	eidCallFailed uint32 = 4501
	eidCall       uint32 = 4502
)

// Model produces text for a system instruction and a prompt
type Model interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ModelFunc adapts an ordinary function to the Model interface
type ModelFunc func(ctx context.Context, system, prompt string) (string, error)

func (f ModelFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}
