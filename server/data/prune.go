/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"time"

	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/server/global"
)

// PruneDB removes old data from the database
// It is intended to run as a goroutine and therefore
// logs and handles its own errors.
func (d *Data) PruneDB() {
	queryRetention := d.conf.SC.Get(global.ConfigQueryRetention).Int()
	startTime := time.Now()

	d.logger.Info(3000, "Pruning database started", fields.NewFields(
		fields.NewField(global.ConfigQueryRetention, queryRetention)))

	removed := 0
	if queryRetention > 0 {
		var err error
		removed, err = d.database.PruneQueries(queryRetention)
		d.pruneError(err)
	}

	d.logger.Infof(3001, "Pruning database completed in %.2f seconds, %d queries removed",
		time.Since(startTime).Seconds(), removed)
}

func (d *Data) pruneError(err error) {
	if err != nil {
		d.logger.Warningf(3002, "error pruning database: %s", err.Error())
	}
}
