//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"github.com/coinsage/coinsage/common/fields"
	"github.com/coinsage/coinsage/common/schema"
)

// LogQuery records a query. Failures are logged and swallowed so that
// a broken log store never changes a chat reply.
func (d *Data) LogQuery(q schema.QueryLog) {
	if d == nil || d.database == nil {
		return
	}

	stored, err := d.database.AddQuery(q)
	if err != nil {
		d.logger.Warning(3010, "unable to record query", fields.NewFields(
			fields.NewField("command", q.Command),
			fields.NewField("user", q.UserID),
			fields.NewField("token_id", q.TokenID),
			fields.NewField("error", err.Error())))
		return
	}

	d.logger.Debug(3011, "query recorded", fields.NewFields(
		fields.NewField("id", stored.ID),
		fields.NewField("command", stored.Command),
		fields.NewField("token_id", stored.TokenID)))
}

// RecentQueries returns recorded queries matching the filter, newest first
func (d *Data) RecentQueries(filter schema.QueryFilter) ([]schema.QueryLog, error) {
	return d.database.RecentQueries(filter)
}
