//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// See LICENSE file for details
//

package global

import "github.com/coinsage/coinsage/common"

const (
	Version          = common.Version
	Build            = common.Build
	Name             = "CoinSage"
	LogName          = "coinsage"
	Description      = "CoinSage crypto assistant"
	UnixBinaryName   = "coinsage"
	EnvFileVar       = "COINSAGE_ENV_FILE" // overrides the .env search list
	DBFileName       = "coinsage.db"
	ConsoleExitDelay = 3     // seconds to wait so that user can read the console output when exiting
	TokenLength      = 64    // Length of generated signing keys prior to base-64 encoding
	PruneInterval    = 86400 // seconds between query-log pruning runs
	DefaultTokenLife = 1440  // minutes, API tokens minted from the console
	ShutdownTimeout  = 10    // seconds to wait for in-flight work on shutdown
	QueryQueueSize   = 256   // buffered query-log records awaiting storage
)

var (
	EnvFiles = []string{".env", "/etc/coinsage.env"}
	Debug    = false

	// ListenOverride replaces LISTEN_HOST and PORT when set from the console
	ListenOverride = ""
)
