/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package userver implements a production grade HTTP server using the
// standard Go libraries and gorilla/mux. Each route is served by either
// a traditional http.Handler or a JHandler that returns an object to be
// marshalled to JSON. Every request is logged with its duration.
package userver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/ulogger"
)

// New returns a HServer struct with default values and options applied
func New(options ...func(*HServer) error) (*HServer, error) {
	s := &HServer{
		Listen:          "127.0.0.1:3000",
		HTTPTimeout:     60,
		HTTPIdleTimeout: 60,
		HandlerTimeout:  60,
		MaxConcurrent:   100,
		HealthHandler:   true,
		DefaultHeaders:  true,
	}

	// Process options (see options.go)
	for _, op := range options {
		if err := op(s); err != nil {
			return nil, err
		}
	}

	// If there is no logger, create one that writes to stdout
	if s.Logger == nil {
		logger, err := ulogger.New(ulogger.WithLogStdout(true), ulogger.WithDebug(s.Debug))
		if err != nil {
			return nil, err
		}
		s.Logger = logger
	}
	return s, nil
}

// Handler builds the router for all registered routes. Start calls it;
// tests can serve it with httptest.
func (s *HServer) Handler() http.Handler {
	headers := s.Headers
	if s.DefaultHeaders {
		headers = append(Headers{
			{"Cache-Control", "no-cache, no-store, must-revalidate"},
			{"Pragma", "no-cache"},
			{"Expires", "0"},
		}, headers...)
	}

	routes := s.Routes
	if s.HealthHandler {
		routes = append(Routes{{
			Name:     "health",
			Methods:  []string{"GET"},
			Pattern:  "/health",
			JHandler: s.HandlerHealth,
		}}, routes...)
	}

	router := mux.NewRouter()

	// Use JHandler if set otherwise use Handler; wrap either for logging
	for _, route := range routes {
		if route.JHandler != nil {
			router.Handle(route.Pattern, s.Wrapper(route.Name, s.JWrapper(route.Name, route.JHandler), route.AuthFunc, headers)).
				Methods(route.Methods...)
		} else if route.Handler != nil {
			router.Handle(route.Pattern, s.Wrapper(route.Name, route.Handler, route.AuthFunc, headers)).
				Methods(route.Methods...)
		}
	}

	router.NotFoundHandler = s.Wrapper("Handler404", s.JWrapper("Handler404", s.Handler404), s.AuthFunc, headers)
	router.MethodNotAllowedHandler = s.Wrapper("Handler405", s.JWrapper("Handler405", s.Handler405), s.AuthFunc, headers)

	if s.CORS {
		return s.cors(router)
	}
	return router
}

// Start starts the server and blocks until it stops
func (s *HServer) Start() error {
	s.Logger.Info(s.SEid+1, "Starting server", fields.NewFields(fields.NewField("listen", s.Listen)))

	serv := &http.Server{
		Addr:              s.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Duration(s.HTTPTimeout) * time.Second,
		ReadTimeout:       time.Duration(s.HTTPTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.HTTPTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.HTTPIdleTimeout) * time.Second,
	}

	if s.TLS {
		if s.TLSCertFile == "" || s.TLSKeyFile == "" {
			return errors.New("TLS cert or key file not specified")
		}

		cert, err := tls.LoadX509KeyPair(s.TLSCertFile, s.TLSKeyFile)
		if err != nil {
			return err
		}
		serv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	err := s.listen(serv)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gives in-flight requests up to 10 seconds to finish
func (s *HServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.server == nil {
		return errors.New("server is not running")
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %s", err.Error())
	}
	return nil
}

// AddRoutes adds routes to the router
func (s *HServer) AddRoutes(routes Routes) {
	for _, route := range routes {
		s.AddRoute(route)
	}
}

// AddRoute adds a route to the router
func (s *HServer) AddRoute(route Route) {
	s.Routes = append(s.Routes, route)
}

// AddHeader adds a header to the list
func (s *HServer) AddHeader(key, value string) {
	s.Headers = append(s.Headers, Header{key, value})
}

// cors reflects the request origin (or allows any) and short-circuits preflight requests
func (s *HServer) cors(next http.Handler) http.Handler {
	methods := strings.Join(s.CORSMethods, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin := req.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// listen is a replacement for ListenAndServe that implements a concurrent session limit
// using netutil.LimitListener. If MaxConcurrent is 0, no limit is imposed.
func (s *HServer) listen(server *http.Server) error {

	// Store the server to allow for a graceful shutdown
	s.server = server

	addr := s.server.Addr
	if addr == "" {
		addr = ":http"
	}

	rawListener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	listener := rawListener
	if s.MaxConcurrent > 0 {
		listener = netutil.LimitListener(rawListener, s.MaxConcurrent)
	}

	if s.TLS {
		// This will use the previously configured TLS information
		return s.server.ServeTLS(listener, "", "")
	}
	return s.server.Serve(listener)
}
