/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// All API responses include the Status and Code fields.

// APIAnyResponse can be used by a client to deserialize any API response
type APIAnyResponse struct {
	Status  string `json:"status"`            // see apiMeta.go
	Code    int    `json:"code"`              // HTTP status code
	Details string `json:"details,omitempty"` // optional details about the response
	Data    any    `json:"data,omitempty"`    // optional data
}

// APIRootResponse is returned by GET / and keeps the shape existing
// monitors expect
type APIRootResponse struct {
	Status string `json:"status" example:"OK"`
}

type API400 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details" example:"bad request"`
}

type API401 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"401"`
	Details string `json:"details" example:"authentication failed"`
}

type API500 struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"500"`
	Details string `json:"details" example:"internal server error"`
}

// APIQueryLogResponse carries query-log entries, newest first
type APIQueryLogResponse struct {
	Status string     `json:"status"`
	Code   int        `json:"code"`
	Data   []QueryLog `json:"data"`
}
