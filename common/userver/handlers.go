/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"net/http"
	"os"
)

// HandlerHealth implements a health check for load balancers, etc.
func (s *HServer) HandlerHealth(_ *http.Request) JResponse {
	var r Response

	// Check for presence of the file that indicates the server is down
	if _, err := os.Stat(s.DownFile); s.DownFile != "" && err == nil {
		r.Status = "down"
		r.Code = http.StatusServiceUnavailable
		r.Details = "server is shutting down"
	} else {
		r.Status = "ok"
		r.Code = http.StatusOK
		r.Details = "health check ok"
	}
	return JResponse{
		HTTPCode: r.Code,
		JSONData: r}
}

func (s *HServer) Handler404(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusNotFound,
		JSONData: Response{Details: "object does not exist", Status: "error", Code: http.StatusNotFound}}
}

func (s *HServer) Handler405(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusMethodNotAllowed,
		JSONData: Response{Details: "method not allowed", Status: "error", Code: http.StatusMethodNotAllowed}}
}
