/******************************************************************************
 * Copyright (c) 2025 Tenebris Technologies Inc.                              *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
)

const (
	DefaultTimeout = 20 * time.Second
	maxBody        = 8 << 20
	userAgent      = "CoinSage/1.0"
)

// client holds what both providers share
type client struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  interfaces.Logger
	seid    uint32
}

type Option func(*client)

// WithBaseURL overrides the provider's API root
func WithBaseURL(u string) Option {
	return func(c *client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRate limits requests per minute. Zero or less disables limiting.
func WithRate(perMinute int) Option {
	return func(c *client) {
		if perMinute <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst(perMinute))
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newClient(name, baseURL string, perMinute int, seid uint32, options ...Option) client {
	c := client{
		name:    name,
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  null.Logger(),
		seid:    seid,
	}
	WithRate(perMinute)(&c)
	for _, op := range options {
		op(&c)
	}
	return c
}

func burst(perMinute int) int {
	b := perMinute / 10
	if b < 1 {
		return 1
	}
	return b
}

// getJSON waits for the limiter, fetches path and decodes the body into v.
// found is false on 404.
func (c *client) getJSON(ctx context.Context, path string, v any) (found bool, err error) {
	if err = c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrUpstream, c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrUpstream, c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warning(c.seid+1, "request failed", fields.NewFields(
			fields.NewField("provider", c.name),
			fields.NewField("path", path),
			fields.NewField("error", err.Error())))
		return false, fmt.Errorf("%w: %s: %v", ErrUpstream, c.name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug(c.seid, "request", fields.NewFields(
		fields.NewField("provider", c.name),
		fields.NewField("path", path),
		fields.NewField("code", resp.StatusCode),
		fields.NewField("duration", fmt.Sprintf("%.3f", time.Since(start).Seconds()))))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, fmt.Errorf("%w: %s", ErrRateLimited, c.name)
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("%w: %s returned %d", ErrUpstream, c.name, resp.StatusCode)
	}

	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(v); err != nil {
		return false, fmt.Errorf("%w: %s: decoding response: %v", ErrUpstream, c.name, err)
	}
	return true, nil
}
