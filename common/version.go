//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// See LICENSE file for details
//

package common

const (
	Version = "1.0.0"
	Build   = 100
)
