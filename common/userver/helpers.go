//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package userver

import (
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// RemoteIP returns the remote IP address of the caller, excluding the port number.
func RemoteIP(req *http.Request) string {

	// The X-Forwarded-For header can contain multiple IPs, take the first one
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}

// GetParam retrieves a path variable
func GetParam(r *http.Request, param string) string {
	return mux.Vars(r)[param]
}
