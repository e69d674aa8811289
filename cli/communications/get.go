/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"net/url"

	"github.com/coinsage/coinsage/cli/util"
)

// Get sends a GET request to the specified endpoint and returns the response body.
func (c *Communications) Get(endpoint string) (int, []byte, error) {
	return c.sendRequest("GET", endpoint)
}

// GetQuery accepts pairs and turns them into query parameters for a GET request to the specified endpoint
func (c *Communications) GetQuery(endpoint string, pairs *util.NVPairs) (int, []byte, error) {
	if pairs == nil || len(pairs.Pairs) == 0 {
		return c.sendRequest("GET", endpoint)
	}

	// Encode sorts by key, so the URL is stable
	q := url.Values{}
	for n, v := range pairs.Pairs {
		q.Set(n, v)
	}
	return c.sendRequest("GET", endpoint+"?"+q.Encode())
}
