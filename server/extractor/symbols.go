//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package extractor

import (
	"sort"
	"strings"
)

// SymbolSet is a set of upper-case tickers without a "$" prefix
type SymbolSet map[string]struct{}

// Normalize strips a leading "$", trims, upper-cases, drops empty strings
// and removes duplicates
func Normalize(raw []string) SymbolSet {
	s := make(SymbolSet, len(raw))
	for _, r := range raw {
		sym := strings.TrimSpace(r)
		sym = strings.TrimLeft(sym, "$")
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}
		s[sym] = struct{}{}
	}
	return s
}

func (s SymbolSet) Has(sym string) bool {
	_, ok := s[sym]
	return ok
}

func (s SymbolSet) Len() int {
	return len(s)
}

// Slice returns the symbols in sorted order
func (s SymbolSet) Slice() []string {
	r := make([]string, 0, len(s))
	for sym := range s {
		r = append(r, sym)
	}
	sort.Strings(r)
	return r
}
