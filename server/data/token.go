/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/coinsage/coinsage/server/global"
)

const TokenPurposeAPI = "api"

var ErrAuthDisabled = errors.New("API authentication is not configured")

// CustomClaims includes jwt.RegisteredClaims and adds custom fields
type CustomClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// AuthEnabled reports whether the query-log API requires a token
func (d *Data) AuthEnabled() bool {
	return len(d.jwtKey) > 0
}

// CreateToken requires the subject and lifetime of the JWT in minutes.
// A lifetime of 0 creates a token that does not expire.
func (d *Data) CreateToken(subject string, lifeTime int) (string, error) {
	if !d.AuthEnabled() {
		return "", ErrAuthDisabled
	}

	// Define the JWT claims
	// Set NotBefore 5 minutes in the past to allow for clock skew
	now := time.Now()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			Issuer:    global.Name,
			ID:        "T-" + uuid.New().String(),
		},
		Purpose: TokenPurposeAPI,
	}

	// If token lifetime is limited, add the expiration time/date
	if lifeTime > 0 {
		claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Duration(lifeTime) * time.Minute))
	}

	// Create the token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token with the secret key
	return token.SignedString(d.jwtKey)
}

// ValidateToken validates the supplied token (including purpose) and returns the subject
func (d *Data) ValidateToken(tokenString string) (string, error) {
	if !d.AuthEnabled() {
		return "", ErrAuthDisabled
	}

	// Parse the token
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		return d.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	// Validate the token and extract the claims
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		if claims.Purpose == TokenPurposeAPI {
			return claims.Subject, nil
		}
	}
	return "", errors.New("invalid token")
}
