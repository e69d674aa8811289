/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package api

import (
	"net/http"
	"strconv"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/schema"
	"github.com/coinsage/coinsage/common/userver"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// @Summary Service status
// @Produce json
// @Success 200 {object} schema.APIRootResponse
// @Router / [get]
func (a *API) getRoot(_ *http.Request) userver.JResponse {
	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIRootResponse{Status: "OK"}}
}

// @Summary Retrieve token analysis queries
// @Description Returns recorded address lookups, newest first
// @Produce json
// @Param tokenAddress query string false "Token address"
// @Param tokenId query string false "Token symbol"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} schema.APIQueryLogResponse
// @Failure 400 {object} schema.API400
// @Failure 401 {object} schema.API401
// @Failure 500 {object} schema.API500
// @Router /analyze [get]
func (a *API) getAnalyze(req *http.Request) userver.JResponse {
	return a.queryLog(req, schema.CommandAnalyze)
}

// @Summary Retrieve price queries
// @Description Returns recorded price queries, newest first
// @Produce json
// @Param tokenAddress query string false "Token address"
// @Param tokenId query string false "Token symbol"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} schema.APIQueryLogResponse
// @Failure 400 {object} schema.API400
// @Failure 401 {object} schema.API401
// @Failure 500 {object} schema.API500
// @Router /price [get]
func (a *API) getPrice(req *http.Request) userver.JResponse {
	return a.queryLog(req, schema.CommandPrice)
}

func (a *API) queryLog(req *http.Request, command string) userver.JResponse {

	query := req.URL.Query()
	filter := schema.QueryFilter{
		Command:      command,
		TokenAddress: query.Get(schema.ParamTokenAddress),
		TokenID:      query.Get(schema.ParamTokenID),
		Limit:        defaultLimit,
	}

	logFields := fields.NewFields(
		fields.NewField("src_ip", userver.RemoteIP(req)),
		fields.NewField("id", GetAuthDetails(req).ID),
		fields.NewField("command", command))

	if filter.TokenAddress != "" {
		logFields.Append(fields.NewField("token_address", filter.TokenAddress))
	}

	if filter.TokenID != "" {
		logFields.Append(fields.NewField("token_id", filter.TokenID))
	}

	if l := query.Get(schema.ParamLimit); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxLimit {
			a.logger.Info(2601, "invalid limit", logFields)
			return userver.JResponse{
				HTTPCode: http.StatusBadRequest,
				JSONData: schema.API400{Status: schema.APIStatusError, Code: http.StatusBadRequest, Details: "invalid limit"}}
		}
		filter.Limit = n
	}

	queries, err := a.data.RecentQueries(filter)
	if err != nil {
		logFields.Append(fields.NewField("error", err.Error()))
		a.logger.Error(2602, "error reading query log", logFields)
		return userver.JResponse{
			HTTPCode: http.StatusInternalServerError,
			JSONData: schema.API500{Status: schema.APIStatusError, Code: http.StatusInternalServerError, Details: "Internal Server Error"}}
	}

	logFields.Append(fields.NewField("count", len(queries)))
	a.logger.Debug(2600, "query log read", logFields)

	return userver.JResponse{
		HTTPCode: http.StatusOK,
		JSONData: schema.APIQueryLogResponse{Status: schema.APIStatusOK, Code: http.StatusOK, Data: queries}}
}
