/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
)

const DefaultModel = "gemini-1.5-flash"

// Gemini implements Model with the Google generative AI client
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      interfaces.Logger
}

type GeminiOption func(*Gemini)

func WithModel(name string) GeminiOption {
	return func(g *Gemini) {
		if name != "" {
			g.model = name
		}
	}
}

func WithTemperature(t float32) GeminiOption {
	return func(g *Gemini) {
		g.temperature = t
	}
}

// WithTimeout bounds each Generate call
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) {
		g.timeout = d
	}
}

func WithLogger(logger interfaces.Logger) GeminiOption {
	return func(g *Gemini) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGemini creates a client for the given API key
func NewGemini(ctx context.Context, apiKey string, options ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	g := &Gemini{
		client:      client,
		model:       DefaultModel,
		temperature: 0.2,
		timeout:     20 * time.Second,
		logger:      null.Logger(),
	}
	for _, op := range options {
		op(g)
	}
	return g, nil
}

// Generate sends one prompt and returns the concatenated text parts
func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// GenerativeModel carries per-call state, so build one per request
	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(g.temperature)
	if system != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Warning(eidCallFailed, "model call failed", fields.NewFields(
			fields.NewField("model", g.model),
			fields.NewField("error", err.Error())))
		return "", fmt.Errorf("generating content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		// The first candidate with content is the answer
		if sb.Len() > 0 {
			break
		}
	}

	g.logger.Debug(eidCall, "model call", fields.NewFields(
		fields.NewField("model", g.model),
		fields.NewField("duration", fmt.Sprintf("%.3f", time.Since(start).Seconds())),
		fields.NewField("chars", sb.Len())))

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// Close releases the underlying client
func (g *Gemini) Close() error {
	return g.client.Close()
}
