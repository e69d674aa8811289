/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package extractor finds the ticker symbols mentioned in a message.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/coinsage/coinsage/common"
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
	"github.com/coinsage/coinsage/server/llm"
)

const (
	DefaultTimeout = 20 * time.Second

	// MaxReference bounds the reference list included in the prompt
	MaxReference = 500
)

const systemPrompt = "You extract cryptocurrency ticker symbols from text."

const extractPrompt = `Identify every cryptocurrency token mentioned in the message below and return their ticker symbols in upper case without any "$" prefix.
Use the reference list of known symbols to disambiguate names, but you may include well-known tokens that are not in the list.

Reference symbols: %s

Respond ONLY with a raw JSON array of strings, for example ["BTC","ETH"]. Respond with [] if no token is mentioned.

Message: %s`

type Extractor struct {
	model   llm.Model
	logger  interfaces.Logger
	timeout time.Duration
}

type Option func(*Extractor)

func WithLogger(logger interfaces.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTimeout bounds each extraction call
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func New(model llm.Model, options ...Option) *Extractor {
	e := &Extractor{model: model, logger: null.Logger(), timeout: DefaultTimeout}
	for _, op := range options {
		op(e)
	}
	return e
}

// Extract returns the symbols mentioned in text. known is passed to the
// model as a hint and does not filter the result. Failures yield an
// empty set.
func (e *Extractor) Extract(ctx context.Context, text string, known []string) SymbolSet {
	raw, err := e.call(ctx, text, known)
	if err != nil {
		e.logger.Warning(4251, "symbol extraction failed", fields.NewFields(
			fields.NewField("text", common.Truncate(common.SingleLine(text), 120)),
			fields.NewField("error", common.SingleLine(err.Error()))))
		return SymbolSet{}
	}

	set := Normalize(raw)
	e.logger.Debug(4250, "symbols extracted", fields.NewFields(
		fields.NewField("symbols", strings.Join(set.Slice(), ","))))
	return set
}

func (e *Extractor) call(ctx context.Context, text string, known []string) (raw []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			raw, err = nil, fmt.Errorf("extractor panic: %v", p)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if e.model == nil {
		return nil, fmt.Errorf("no extractor model configured")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.model.Generate(ctx, systemPrompt, buildPrompt(text, known))
	if err != nil {
		return nil, fmt.Errorf("extractor call: %w", err)
	}

	if err = llm.DecodeStrict(out, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func buildPrompt(text string, known []string) string {
	return fmt.Sprintf(extractPrompt, strings.Join(references(text, known), ", "), text)
}

// references picks at most MaxReference entries of known. Symbols that
// appear as a word or $-token in text come first; the rest keep the order
// of known, which callers arrange most relevant first.
func references(text string, known []string) []string {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToUpper(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = struct{}{}
	}

	out := make([]string, 0, min(len(known), MaxReference))
	used := make(map[string]struct{})
	add := func(sym string) {
		if len(out) < MaxReference {
			out = append(out, sym)
			used[sym] = struct{}{}
		}
	}

	for _, sym := range known {
		if _, ok := words[strings.ToUpper(sym)]; ok {
			if _, dup := used[sym]; !dup {
				add(sym)
			}
		}
	}
	for _, sym := range known {
		if _, dup := used[sym]; !dup {
			add(sym)
		}
	}
	return out
}
