//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"fmt"

	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/server/db"
	"github.com/coinsage/coinsage/server/global"
)

type Data struct {
	logger   interfaces.Logger
	conf     *global.ServerConfig
	database *db.DB
	jwtKey   []byte
}

// New creates a new Data instance
func New(conf *global.ServerConfig, logger interfaces.Logger) (*Data, error) {

	// An empty key disables API authentication
	jwtKey := conf.SP.Get(global.ConfigAPITokenKey).Bytes()

	// The data directory is created by global.Config()
	dbInstance, err := db.Open(conf.DBFile(), logger)
	if err != nil {
		return nil, fmt.Errorf("unable to open or create database: %w", err)
	}

	return &Data{
		logger:   logger,
		conf:     conf,
		database: dbInstance,
		jwtKey:   jwtKey,
	}, nil
}

// Close anything data-related that requires it.
func (d *Data) Close() {

	// If the data instance is nil, bail
	if d == nil {
		return
	}

	// Close the database connection
	if d.database != nil {
		d.database.Close()
	}
}
