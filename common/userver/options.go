//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import "github.com/coinsage/coinsage/common/interfaces"

// Functional options

func WithLogger(logger interfaces.Logger) func(*HServer) error {
	return func(e *HServer) error {
		e.Logger = logger
		return nil
	}
}

func WithListen(listen string) func(*HServer) error {
	return func(e *HServer) error {
		e.Listen = listen
		return nil
	}
}

func WithHTTPTimeout(t int) func(*HServer) error {
	return func(e *HServer) error {
		e.HTTPTimeout = t
		return nil
	}
}

func WithHTTPIdleTimeout(t int) func(*HServer) error {
	return func(e *HServer) error {
		e.HTTPIdleTimeout = t
		return nil
	}
}

func WithHandlerTimeout(t int) func(*HServer) error {
	return func(e *HServer) error {
		e.HandlerTimeout = t
		return nil
	}
}

func WithPenaltyBox(min, max int) func(*HServer) error {
	return func(e *HServer) error {
		e.PenaltyBoxMin = min
		e.PenaltyBoxMax = max
		return nil
	}
}

func WithMaxConcurrent(m int) func(*HServer) error {
	return func(e *HServer) error {
		e.MaxConcurrent = m
		return nil
	}
}

func WithDownFile(down string) func(*HServer) error {
	return func(e *HServer) error {
		e.DownFile = down
		return nil
	}
}

func WithSEid(seid uint32) func(*HServer) error {
	return func(e *HServer) error {
		e.SEid = seid
		return nil
	}
}

func WithHealthHandler(h bool) func(*HServer) error {
	return func(e *HServer) error {
		e.HealthHandler = h
		return nil
	}
}

func WithDefaultHeaders(d bool) func(*HServer) error {
	return func(e *HServer) error {
		e.DefaultHeaders = d
		return nil
	}
}

// WithCORS reflects the caller's Origin and answers preflight requests
// for the listed methods
func WithCORS(methods ...string) func(*HServer) error {
	return func(e *HServer) error {
		e.CORS = true
		e.CORSMethods = methods
		return nil
	}
}

func WithTLS(certFile, keyFile string) func(*HServer) error {
	return func(e *HServer) error {
		e.TLS = true
		e.TLSCertFile = certFile
		e.TLSKeyFile = keyFile
		return nil
	}
}

func WithDebug(d bool) func(*HServer) error {
	return func(e *HServer) error {
		e.Debug = d
		return nil
	}
}

func WithAuthFunc(authFunc AuthFunc) func(*HServer) error {
	return func(e *HServer) error {
		e.AuthFunc = authFunc
		return nil
	}
}
