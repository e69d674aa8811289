/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"os"
)

// WithEnvFile reads the specified file. A missing file is an error.
func WithEnvFile(filename string) func(*UConfig) error {
	return func(c *UConfig) error {
		return readEnvFile(c, filename)
	}
}

// WithFind reads every file in the list that exists. Missing files are skipped.
func WithFind(filenames []string) func(*UConfig) error {
	return func(c *UConfig) error {
		for _, filename := range filenames {
			if filename == "" {
				continue
			}
			if _, err := os.Stat(filename); err != nil {
				continue
			}
			if err := readEnvFile(c, filename); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithLookup replaces the process environment, mostly for tests
func WithLookup(lookup func(string) (string, bool)) func(*UConfig) error {
	return func(c *UConfig) error {
		c.lookup = lookup
		return nil
	}
}
