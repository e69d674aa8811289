//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package schema

const (
	EndpointRoot    = "/"
	EndpointHealth  = "/health"
	EndpointAnalyze = "/analyze"
	EndpointPrice   = "/price"
)

const (
	APIStatusOK      = "ok"
	APIStatusError   = "error"
	APIStatusExpired = "expired"
)

// Query parameters accepted by the query-log endpoints
const (
	ParamTokenAddress = "tokenAddress"
	ParamTokenID      = "tokenId"
	ParamLimit        = "limit"
)
