//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package interfaces

import (
	"context"
	"time"
)

// Cache is a process-wide key/value store with a per-entry time to live.
// Values are opaque to the cache; ttl is expressed in seconds.
type Cache interface {
	Get(key string) (any, bool)
	GetString(key string) (string, bool)
	Set(key string, value any, ttl int)
	Fetch(ctx context.Context, key string, ttl int, load func(context.Context) (any, error)) (any, error)
	Delete(key string)
	Clear()
}

// Clock supplies the current time. It exists so that expiry can be tested
// without sleeping.
type Clock interface {
	Now() time.Time
}
