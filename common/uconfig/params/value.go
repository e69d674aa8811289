//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package params

import (
	"strconv"
	"strings"
	"time"
)

type Value string

// String converts a Value to a string type
func (v Value) String() string {
	return string(v)
}

// Bytes converts a Value to a byte slice
func (v Value) Bytes() []byte {
	return []byte(v.String())
}

// Int converts a Value to an int type
func (v Value) Int() int {
	i, err := strconv.Atoi(v.String())
	if err != nil {
		return 0
	}
	return i
}

// Int64 converts a Value to an int64 type
func (v Value) Int64() int64 {
	i, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// Bool converts a Value to a bool type
func (v Value) Bool() bool {
	b, err := strconv.ParseBool(v.String())
	if err != nil {
		return false
	}
	return b
}

// Seconds interprets a Value as a number of seconds
func (v Value) Seconds() time.Duration {
	return time.Duration(v.Int()) * time.Second
}

// Float64 converts a Value to a float64 type
func (v Value) Float64() float64 {
	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// SplitList converts a comma-separated Value to a []string, dropping empty items
func (v Value) SplitList() []string {
	var ret []string
	for _, part := range strings.Split(v.String(), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}
