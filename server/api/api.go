//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/schema"
	"github.com/coinsage/coinsage/common/userver"
	"github.com/coinsage/coinsage/server/data"
	"github.com/coinsage/coinsage/server/global"
)

type API struct {
	logger   interfaces.Logger
	conf     *global.ServerConfig
	data     *data.Data
	server   *userver.HServer
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates the API and registers its routes
func New(config *global.ServerConfig, d *data.Data, logger interfaces.Logger) (*API, error) {
	a := &API{logger: logger, conf: config, data: d, stop: make(chan struct{})}

	var authFunc userver.AuthFunc
	if d.AuthEnabled() {
		authFunc = a.NewAuthFunc()
	}

	// Create a new HServer instance
	s, err := userver.New(
		userver.WithLogger(a.logger),
		userver.WithSEid(2500),
		userver.WithHealthHandler(true),
		userver.WithDefaultHeaders(true),
		userver.WithCORS("GET", "OPTIONS"),
		userver.WithDebug(global.Debug),
		userver.WithListen(config.Listen()),
		userver.WithHTTPTimeout(a.conf.SC.Get(global.ConfigHTTPTimeout).Int()),
		userver.WithHTTPIdleTimeout(a.conf.SC.Get(global.ConfigHTTPIdleTimeout).Int()),
		userver.WithHandlerTimeout(a.conf.SC.Get(global.ConfigHandlerTimeout).Int()),
		userver.WithMaxConcurrent(a.conf.SC.Get(global.ConfigMaxConcurrent).Int()),
		userver.WithPenaltyBox(
			a.conf.SC.Get(global.ConfigPenaltyBoxMin).Int(),
			a.conf.SC.Get(global.ConfigPenaltyBoxMax).Int()))
	if err != nil {
		return nil, err
	}

	if s == nil {
		return nil, errors.New("userver.New() returned nil")
	}

	s.AddRoute(userver.Route{
		Name:     "root",
		Methods:  []string{"GET"},
		Pattern:  schema.EndpointRoot,
		JHandler: a.getRoot,
		AuthFunc: nil})

	s.AddRoute(userver.Route{
		Name:     "analyze",
		Methods:  []string{"GET"},
		Pattern:  schema.EndpointAnalyze,
		JHandler: a.getAnalyze,
		AuthFunc: authFunc})

	s.AddRoute(userver.Route{
		Name:     "price",
		Methods:  []string{"GET"},
		Pattern:  schema.EndpointPrice,
		JHandler: a.getPrice,
		AuthFunc: authFunc})

	a.server = s
	return a, nil
}

// Handler returns the routed handler without listening
func (a *API) Handler() http.Handler {
	return a.server.Handler()
}

// Start serves the API until Stop is called. Listener failures are
// retried after a delay.
func (a *API) Start() {
	for {
		a.logger.Infof(2001, "Starting API")
		err := a.server.Start()
		if err == nil {
			a.logger.Infof(2002, "API stopped")
			return
		}
		a.logger.Errorf(2003, "API error: %s", err.Error())

		// Sleep before trying again
		select {
		case <-a.stop:
			return
		case <-time.After(10 * time.Second):
		}
	}
}

// Stop shuts down the HTTP server
func (a *API) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
		if err := a.server.Stop(); err != nil {
			a.logger.Warning(2004, fmt.Sprintf("error stopping API: %s", err.Error()), nil)
		}
	})
}
