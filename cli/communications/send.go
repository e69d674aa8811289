/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package communications

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/coinsage/coinsage/cli/global"
)

// sendRequest is a lower level function that sends HTTP requests
func (c *Communications) sendRequest(method, endpoint string) (int, []byte, error) {

	// Build the request URL
	url := strings.TrimRight(global.ServerURL, "/") + endpoint

	httpReq, err := http.NewRequest(method, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	// Set the Authorization header if a token is present
	if c.token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	// Read the response body
	var responseBody bytes.Buffer
	_, err = responseBody.ReadFrom(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, responseBody.Bytes(), nil
}
