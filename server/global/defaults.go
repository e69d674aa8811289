/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"github.com/coinsage/coinsage/common/uconfig"
	"github.com/coinsage/coinsage/common/uconfig/params"
)

// Configuration keys are the environment variable names
const (
	ConfigServerSet       = "server_config"
	ConfigLogFile         = "LOG_FILE"
	ConfigLogStdout       = "LOG_STDOUT"
	ConfigLogRetention    = "LOG_RETENTION"
	ConfigDebug           = "DEBUG"
	ConfigPort            = "PORT"
	ConfigListenHost      = "LISTEN_HOST"
	ConfigDataPath        = "DATA_PATH"
	ConfigHTTPTimeout     = "HTTP_TIMEOUT"
	ConfigHTTPIdleTimeout = "HTTP_IDLE_TIMEOUT"
	ConfigHandlerTimeout  = "HANDLER_TIMEOUT"
	ConfigMaxConcurrent   = "MAX_CONCURRENT"
	ConfigPenaltyBoxMin   = "PENALTY_BOX_MIN"
	ConfigPenaltyBoxMax   = "PENALTY_BOX_MAX"
	ConfigQueryRetention  = "QUERY_RETENTION"
	ConfigCacheSweep      = "CACHE_SWEEP_INTERVAL"

	ConfigBotSet         = "bot_config"
	ConfigBotMaxInflight = "BOT_MAX_INFLIGHT"
	ConfigRemoteTimeout  = "REMOTE_TIMEOUT"
	ConfigGeminiModel    = "GEMINI_MODEL"
	ConfigLLMTemperature = "LLM_TEMPERATURE"
	ConfigCoinGeckoRate  = "COINGECKO_RATE"
	ConfigDexRate        = "DEXSCREENER_RATE"

	ConfigPrivate       = "server_private"
	ConfigTelegramToken = "TELEGRAM_BOT_TOKEN"
	ConfigGeminiKey     = "GEMINI_API_KEY"
	ConfigAPITokenKey   = "API_TOKEN_KEY"
)

// Secrets are masked when the configuration is dumped
var Secrets = map[string]bool{
	ConfigTelegramToken: true,
	ConfigGeminiKey:     true,
	ConfigAPITokenKey:   true,
}

// setDefaults makes sure the sets exist, sets default values, and constraints
func setDefaults(c *uconfig.UConfig) (*params.Params, *params.Params, *params.Params) {

	// Server configuration set
	sc := c.NewSet(ConfigServerSet)
	sc.SetConstraint(ConfigLogFile, 0, 0, "")           // no log file by default
	sc.SetConstraint(ConfigLogStdout, 0, 0, true)       // by default log to stdout
	sc.SetConstraint(ConfigLogRetention, 1, 0, 30)      // days
	sc.SetConstraint(ConfigDebug, 0, 0, false)          // debug logging
	sc.SetConstraint(ConfigPort, 1, 65535, 3000)        // HTTP port
	sc.SetConstraint(ConfigListenHost, 0, 0, "0.0.0.0") // HTTP listen host
	sc.SetConstraint(ConfigDataPath, 0, 0, "./data")    // base directory for data
	sc.SetConstraint(ConfigHTTPTimeout, 1, 0, 30)       // seconds
	sc.SetConstraint(ConfigHTTPIdleTimeout, 1, 0, 30)   // seconds
	sc.SetConstraint(ConfigHandlerTimeout, 1, 0, 30)    // seconds
	sc.SetConstraint(ConfigMaxConcurrent, 1, 0, 100)    // number of concurrent connections, others will wait
	sc.SetConstraint(ConfigPenaltyBoxMin, 0, 0, 1000)   // Minimum penalty box time in milliseconds
	sc.SetConstraint(ConfigPenaltyBoxMax, 0, 0, 5000)   // Maximum penalty box time in milliseconds
	sc.SetConstraint(ConfigQueryRetention, 1, 0, 90)    // days
	sc.SetConstraint(ConfigCacheSweep, 1, 3600, 60)     // seconds

	// Chat bot and upstream configuration
	bc := c.NewSet(ConfigBotSet)
	bc.SetConstraint(ConfigBotMaxInflight, 1, 1000, 32)           // concurrent chat requests
	bc.SetConstraint(ConfigRemoteTimeout, 1, 300, 20)             // seconds per remote call
	bc.SetConstraint(ConfigGeminiModel, 0, 0, "gemini-1.5-flash") // model name
	bc.SetConstraint(ConfigLLMTemperature, 0, 0, "0.2")           // sampling temperature
	bc.SetConstraint(ConfigCoinGeckoRate, 1, 0, 25)               // requests per minute
	bc.SetConstraint(ConfigDexRate, 1, 0, 250)                    // requests per minute

	// Protected configuration items
	sp := c.NewSet(ConfigPrivate)
	sp.SetConstraint(ConfigTelegramToken, 0, 0, "")
	sp.SetConstraint(ConfigGeminiKey, 0, 0, "")
	sp.SetConstraint(ConfigAPITokenKey, 0, 0, "")

	// Return the sets
	return sc, bc, sp
}
