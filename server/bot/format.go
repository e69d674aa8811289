//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package bot

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var one = decimal.NewFromInt(1)

// usd formats d as US dollars with thousands separators. Amounts below one
// dollar keep up to eight decimal places so that micro-cap prices stay
// readable.
func usd(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	places := int32(2)
	if !d.IsZero() && d.LessThan(one) {
		places = 8
	}
	fixed := d.Round(places).StringFixed(places)

	whole, frac, _ := strings.Cut(fixed, ".")
	if places > 2 {
		frac = strings.TrimRight(frac, "0")
		if len(frac) < 2 {
			frac += strings.Repeat("0", 2-len(frac))
		}
	}

	intPart := decimal.RequireFromString(whole).IntPart()
	p := message.NewPrinter(language.English)
	return sign + "$" + p.Sprintf("%d", intPart) + "." + frac
}
