/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coinsage/coinsage/common/fields"
)

// ResponseWriterWrapper wraps a http.ResponseWriter to capture the status code
type ResponseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader captures the status code
func (rw *ResponseWriterWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriterWrapper) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

// Wrapper wraps a http.Handler to add standard headers, logging, panic
// recovery, and optionally authentication
func (s *HServer) Wrapper(handlerName string, h http.Handler, authFunc AuthFunc, headers Headers) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {

		startTime := time.Now()
		src := s.getIP(req)

		// Headers must be set before the handler writes the status line
		for _, header := range headers {
			w.Header().Set(header.Key, header.Value)
		}

		if authFunc != nil {
			authenticated, failMsg, details := authFunc(src, req.Header.Get("Authorization"))
			if !authenticated {
				s.Logger.Warning(s.SEid+12,
					"authentication failure",
					fields.NewFields(
						fields.NewField("src_ip", src),
						fields.NewField("method", req.Method),
						fields.NewField("uri", req.URL.Path),
						fields.NewField("handler", handlerName)))

				// Impose a time penalty for failed authentication
				s.PenaltyBox()

				w.Header().Set("Content-Type", "application/json; charset=UTF-8")
				w.WriteHeader(http.StatusUnauthorized)
				if failMsg != nil {
					_, _ = w.Write(failMsg)
				}
				return
			}

			req = req.WithContext(context.WithValue(req.Context(), authDetailsKey{}, details))
		}

		ctx, cancel := context.WithTimeout(req.Context(), time.Duration(s.HandlerTimeout)*time.Second)
		defer cancel()
		req = req.WithContext(ctx)

		rw := &ResponseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		func() {
			defer func() {
				if r := recover(); r != nil {
					s.Logger.Error(s.SEid+13, "handler panic", fields.NewFields(
						fields.NewField("handler", handlerName),
						fields.NewField("panic", fmt.Sprint(r))))
					if !rw.written {
						writeJSON(rw, http.StatusInternalServerError, Response{
							Status: "error", Code: http.StatusInternalServerError, Details: "Internal Server Error"})
					}
				}
			}()
			h.ServeHTTP(rw, req)
		}()

		// Remove parameters from URI to avoid logging confidential information
		uri := strings.Split(req.RequestURI, "?")[0]

		logFields := fields.NewFields(
			fields.NewField("code", rw.statusCode),
			fields.NewField("src_ip", src),
			fields.NewField("method", req.Method),
			fields.NewField("uri", uri),
			fields.NewField("handler", handlerName),
			fields.NewField("duration", fmt.Sprintf("%.4f", time.Since(startTime).Seconds())))

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logFields.Append(fields.NewField("timeout", "true"))
		}

		s.Logger.Info(s.SEid+10, "HTTP", logFields)
	})
}

// AuthDetailsFrom returns whatever the AuthFunc attached to the request, or nil
func AuthDetailsFrom(req *http.Request) any {
	return req.Context().Value(authDetailsKey{})
}

// getIP returns an IP address by reading the forwarded-for
// header (for proxies or load balancers) and falls back to use the remote address.
func (s *HServer) getIP(r *http.Request) string {
	return RemoteIP(r)
}
