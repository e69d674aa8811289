/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package db

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var invalidKeyChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// validateKey removes any invalid characters (anything other than a-z, A-Z, 0-9, -) from the input string
func validateKey(key string) string {
	return invalidKeyChars.ReplaceAllString(key, "")
}

// queryKey builds "<zero-padded unix nanos>-<id>" so that byte order is time order
func queryKey(t time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d-%s", t.UnixNano(), validateKey(id)))
}

// keyTime parses the timestamp prefix of a query key
func keyTime(k []byte) (time.Time, error) {
	prefix, _, found := strings.Cut(string(k), "-")
	if !found {
		return time.Time{}, fmt.Errorf("malformed key %q", k)
	}
	n, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed key %q: %w", k, err)
	}
	return time.Unix(0, n), nil
}
