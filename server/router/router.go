/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package router maps a chat message to exactly one Intent.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coinsage/coinsage/common"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/server/llm"
)

const DefaultTimeout = 20 * time.Second

type Router struct {
	model   llm.Model
	logger  interfaces.Logger
	timeout time.Duration
}

type Option func(*Router)

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTimeout bounds each classification call
func WithTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(model llm.Model, options ...Option) *Router {
	r := &Router{model: model, logger: null.Logger(), timeout: DefaultTimeout}
	for _, op := range options {
		op(r)
	}
	return r
}

// Route classifies text. It never fails: any classifier error, malformed
// response or unknown tag yields Fallback.
func (r *Router) Route(ctx context.Context, text string) Intent {
	intent, err := r.classify(ctx, text)
	if err != nil {
		r.logger.Warning(4202, "routing failed, using fallback", fields.NewFields(
			fields.NewField("text", common.Truncate(common.SingleLine(text), 120)),
			fields.NewField("error", common.SingleLine(err.Error()))))
		return Fallback
	}

	r.logger.Debug(4201, "routed", fields.NewFields(
		fields.NewField("kind", string(intent.Kind())),
		fields.NewField("text", common.Truncate(common.SingleLine(text), 120))))
	return intent
}

func (r *Router) classify(ctx context.Context, text string) (intent Intent, err error) {
	defer func() {
		if p := recover(); p != nil {
			intent, err = nil, fmt.Errorf("classifier panic: %v", p)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if r.model == nil {
		return nil, fmt.Errorf("no classifier configured")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.model.Generate(ctx, systemPrompt, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("classifier call: %w", err)
	}
	return Parse(raw, text)
}
