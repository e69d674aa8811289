/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"encoding/json"
	"net/http"

	"github.com/coinsage/coinsage/common/fields"
)

// JWrapper wraps a JHandler to a standard http.Handler.
// It marshals the JSON data and logs any errors.
// This allows APIs to avoid providing http.Handler directly.
func (s *HServer) JWrapper(name string, h JHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respData := h(req)

		if err := writeJSON(w, respData.HTTPCode, respData.JSONData); err != nil {
			s.Logger.Error(s.SEid+11,
				"Error writing response",
				fields.NewFields(
					fields.Err(err),
					fields.NewField("src_ip", s.getIP(req)),
					fields.NewField("method", req.Method),
					fields.NewField("uri", req.URL.Path),
					fields.NewField("handler", name)))
		}
	})
}

func writeJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
