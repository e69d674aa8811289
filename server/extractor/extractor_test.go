/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coinsage/coinsage/server/llm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  []string
		want []string
	}{
		{[]string{"$btc", "Eth", ""}, []string{"BTC", "ETH"}},
		{[]string{" $pepe ", "PEPE", "pepe"}, []string{"PEPE"}},
		{[]string{"$", "  ", "$$sol"}, []string{"SOL"}},
		{nil, []string{}},
	}
	for _, tt := range tests {
		got := Normalize(tt.raw)
		if diff := cmp.Diff(tt.want, got.Slice()); diff != "" {
			t.Errorf("Normalize(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}

	s := Normalize([]string{"$btc", "Eth", ""})
	if !s.Has("BTC") || !s.Has("ETH") || s.Has("btc") || s.Len() != 2 {
		t.Errorf("set = %v", s)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		model llm.Model
		want  []string
	}{
		{"fenced list", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return "```json\n[\"$btc\", \"Eth\", \"\"]\n```", nil
		}), []string{"BTC", "ETH"}},
		{"not in reference list is kept", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return `["NEWCOIN"]`, nil
		}), []string{"NEWCOIN"}},
		{"empty", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return `[]`, nil
		}), []string{}},
		{"error", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return "", errors.New("quota exceeded")
		}), []string{}},
		{"object instead of list", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return `{"symbols":["BTC"]}`, nil
		}), []string{}},
		{"numbers", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return `[1,2]`, nil
		}), []string{}},
		{"prose", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			return `The tokens are BTC and ETH`, nil
		}), []string{}},
		{"panic", llm.ModelFunc(func(context.Context, string, string) (string, error) {
			panic("boom")
		}), []string{}},
		{"nil model", nil, []string{}},
	}

	for _, tt := range tests {
		got := New(tt.model).Extract(context.Background(), "compare btc and eth", []string{"BTC", "ETH"})
		if diff := cmp.Diff(tt.want, got.Slice()); diff != "" {
			t.Errorf("%s: Extract() mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestExtractPrompt(t *testing.T) {
	known := make([]string, MaxReference+10)
	for i := range known {
		known[i] = fmt.Sprintf("S%d", i)
	}

	var prompt string
	m := llm.ModelFunc(func(_ context.Context, _, p string) (string, error) {
		prompt = p
		return `[]`, nil
	})
	New(m).Extract(context.Background(), "is S3 a good buy?", known)

	if !strings.Contains(prompt, "S3") || !strings.HasSuffix(prompt, "Message: is S3 a good buy?") {
		t.Errorf("unexpected prompt: %q", prompt)
	}
	if strings.Contains(prompt, fmt.Sprintf("S%d", MaxReference+5)) {
		t.Error("reference list was not truncated")
	}

	called := false
	New(llm.ModelFunc(func(context.Context, string, string) (string, error) {
		called = true
		return `[]`, nil
	})).Extract(context.Background(), "   ", nil)
	if called {
		t.Error("model called for empty text")
	}
}

func TestExtractPromptKeepsMentionedSymbols(t *testing.T) {
	// Alphabetical lists put common tickers far past the reference cap
	known := make([]string, 0, MaxReference+200)
	for i := 0; i < MaxReference+100; i++ {
		known = append(known, fmt.Sprintf("A%04d", i))
	}
	known = append(known, "BTC", "ETH", "PEPE")

	var prompt string
	m := llm.ModelFunc(func(_ context.Context, _, p string) (string, error) {
		prompt = p
		return `["BTC","PEPE"]`, nil
	})
	got := New(m).Extract(context.Background(), "compare $pepe with btc", known)

	if diff := cmp.Diff([]string{"BTC", "PEPE"}, got.Slice()); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	_, line, _ := strings.Cut(prompt, "Reference symbols: ")
	line, _, _ = strings.Cut(line, "\n")
	refs := strings.Split(line, ", ")
	if diff := cmp.Diff([]string{"BTC", "PEPE", "A0000"}, refs[:3]); diff != "" {
		t.Errorf("reference list head mismatch (-want +got):\n%s", diff)
	}
	if len(refs) != MaxReference {
		t.Errorf("reference count = %d, want %d", len(refs), MaxReference)
	}
	for _, r := range refs {
		if r == "ETH" {
			t.Error("unmentioned symbol past the cap reached the prompt")
		}
	}
}

func TestReferences(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		known []string
		want  []string
	}{
		{"no mentions keeps order", "hello", []string{"BTC", "ETH"}, []string{"BTC", "ETH"}},
		{"mention moves first", "how is eth?", []string{"BTC", "ETH"}, []string{"ETH", "BTC"}},
		{"dollar token", "$SOL pump", []string{"BTC", "SOL"}, []string{"SOL", "BTC"}},
		{"substring is not a mention", "ethereum", []string{"BTC", "ETH"}, []string{"BTC", "ETH"}},
		{"duplicates dropped", "btc", []string{"BTC", "ETH", "BTC"}, []string{"BTC", "ETH"}},
		{"empty", "btc", nil, []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, references(tt.text, tt.known)); diff != "" {
			t.Errorf("%s: references() mismatch (-want +got):\n%s", tt.name, diff)
		}
	}

	known := make([]string, MaxReference*2)
	for i := range known {
		known[i] = fmt.Sprintf("S%d", i)
	}
	if n := len(references("S999", known)); n != MaxReference {
		t.Errorf("len = %d, want %d", n, MaxReference)
	}
	if got := references("S999", known)[0]; got != "S999" {
		t.Errorf("first reference = %q, want S999", got)
	}
}
