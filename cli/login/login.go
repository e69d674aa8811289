/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package login

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/coinsage/coinsage/cli/credentials"
	"github.com/coinsage/coinsage/cli/global"
)

// Login sets the server URL and returns the API token, which may be empty
// when the server does not require one. It does its own error handling to
// avoid a lot of duplication.
func Login() string {
	if err := Load(); err != nil {
		fatal(err)
	}
	return credentials.GetAccessToken()
}

// Load reads ~/.coinsage if it exists and then the environment
func Load() error {

	// Get the user's home directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		// Existing environment variables take precedence
		_ = godotenv.Load(filepath.Join(homeDir, global.EnvFile))
	}

	global.ServerURL = os.Getenv(global.EnvServer)
	if global.ServerURL == "" {
		return errors.New(global.EnvServer + " is not set")
	}

	if credentials.GetAccessToken() == "" {
		credentials.SetAccessToken(os.Getenv(global.EnvToken))
	}
	return nil
}

func fatal(err error) {
	fmt.Printf("Error: %s\n\n", err.Error())
	os.Exit(1)
}
