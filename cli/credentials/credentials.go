/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package credentials holds the API token for the life of the process
package credentials

var accessToken string

func SetAccessToken(token string) {
	accessToken = token
}

func GetAccessToken() string {
	return accessToken
}

// AccessExpired forgets a token the server rejected
func AccessExpired() {
	accessToken = ""
}
