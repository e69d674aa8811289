//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/schema"
	"github.com/coinsage/coinsage/common/userver"
)

var authFailResponse = schema.API401{
	Status:  schema.APIStatusError,
	Code:    http.StatusUnauthorized,
	Details: "authentication failed"}

// AuthInfo contains information about the authenticated caller.
// It implements the userver.AuthDetails interface.
type AuthInfo struct {
	ID            string // authenticated subject or ""
	Authenticated bool   // flag set if the caller is authenticated
}

func (a AuthInfo) IsAuthenticated() bool {
	return a.Authenticated
}

// NewAuthFunc returns an AuthFunc that accepts bearer tokens minted by the server
func (a *API) NewAuthFunc() userver.AuthFunc {
	return func(ip, authHeader string) (bool, []byte, any) {

		authFail := AuthInfo{ID: "", Authenticated: false}

		// Set up log fields of interest
		logFields := fields.NewFields(fields.NewField("src_ip", ip))

		// Fail if the Authorization header is missing
		if authHeader == "" {
			a.logger.Warning(2831, "authentication failure: missing Authorization header", logFields)
			return false, a.AuthFailMessage(false), authFail
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			a.logger.Warning(2832, "authentication failure: invalid Authorization header format", logFields)
			return false, a.AuthFailMessage(false), authFail
		}

		// Extract the token from the header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := a.data.ValidateToken(tokenString)
		if err != nil {

			// Check if the token is expired
			if errors.Is(err, jwt.ErrTokenExpired) {
				a.logger.Info(2833, fmt.Sprintf("authentication expired: %s", err.Error()), logFields)
				return false, a.AuthFailMessage(true), authFail
			}
			a.logger.Warning(2833, fmt.Sprintf("authentication failure: %s", err.Error()), logFields)
			return false, a.AuthFailMessage(false), authFail
		}

		logFields.Append(fields.NewField("id", subject))
		a.logger.Debug(2835, "authentication success", logFields)
		return true, nil, AuthInfo{ID: subject, Authenticated: true}
	}
}

// AuthFailMessage returns a generic response for authentication failures
// The only variation is for expired tokens
func (a *API) AuthFailMessage(expired bool) []byte {

	// Start with a standard auth failure response
	msg := authFailResponse

	// If expired, update the response
	if expired {
		msg.Details = "token expired"
		msg.Status = schema.APIStatusExpired
	}

	// Marshal the response
	response, err := json.Marshal(msg)
	if err != nil {
		a.logger.Error(2839, fmt.Sprintf("error marshalling failure response: %s", err.Error()), nil)
		return nil
	}
	return response
}

// GetAuthDetails returns the caller attached by the AuthFunc
func GetAuthDetails(req *http.Request) AuthInfo {
	details, ok := userver.AuthDetailsFrom(req).(AuthInfo)
	if !ok {
		return AuthInfo{Authenticated: false}
	}
	return details
}
