/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import "github.com/coinsage/coinsage/cli/util"

type Comms interface {
	SetToken(token string)
	Get(endpoint string) (int, []byte, error)
	GetQuery(endpoint string, pairs *util.NVPairs) (int, []byte, error)
}
