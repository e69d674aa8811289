/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import "github.com/coinsage/coinsage/common"

//goland:noinspection GoUnusedConst
const (
	Version         = common.Version
	Build           = common.Build
	Name            = "COINSAGECLI"
	Description     = "CoinSage CLI"
	LongDescription = "CoinSage command line interface for the query-log API"
	Copyright       = "Copyright (c) 2024-2025 Tenebris Technologies Inc."
	EnvFile         = ".coinsage"
	EnvServer       = "COINSAGE_SERVER"
	EnvToken        = "COINSAGE_TOKEN"
	RequestTimeout  = 30 // seconds
)

var ServerURL string
