/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package uconfig loads named parameter sets from the process environment
// and optional .env files.
package uconfig

import (
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/coinsage/coinsage/common/uconfig/params"
)

// UConfig holds all configuration data
type UConfig struct {
	lookup   func(string) (string, bool) // process environment
	fileVars map[string]string           // values read from .env files
	files    []string                    // files that were actually read
	Sets     map[string]*params.Params   `json:"sets"`
}

// New returns an UConfig instance
func New(options ...func(*UConfig) error) (*UConfig, error) {
	c := &UConfig{
		lookup:   os.LookupEnv,
		fileVars: make(map[string]string),
		Sets:     make(map[string]*params.Params)}

	// Process options (see options.go)
	for _, op := range options {
		err := op(c)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewSet returns the named set, creating it if necessary
func (c *UConfig) NewSet(name string) *params.Params {
	if p, ok := c.Sets[name]; ok {
		return p
	}
	p := params.New()
	c.Sets[name] = &p
	return &p
}

// GetSet returns the named set or nil
func (c *UConfig) GetSet(name string) *params.Params {
	return c.Sets[name]
}

// Files returns the .env files that were read
func (c *UConfig) Files() []string {
	return c.files
}

// Lookup returns the value of an environment variable. The process
// environment wins over values read from files.
func (c *UConfig) Lookup(key string) (string, bool) {
	if v, ok := c.lookup(key); ok {
		return v, true
	}
	v, ok := c.fileVars[key]
	return v, ok
}

// Apply copies environment values into every set. Only keys that have
// been declared in a set (via SetConstraint or SetDefault) are read.
func (c *UConfig) Apply() {
	for _, set := range c.Sets {
		for _, key := range set.Keys() {
			if v, ok := c.Lookup(key); ok {
				set.Set(key, v)
			}
		}
	}
}

// Dump the configuration to the console with secrets masked
func (c *UConfig) Dump(secret map[string]bool) {
	fmt.Printf("Current configuration:\n")
	names := make([]string, 0, len(c.Sets))
	for name := range c.Sets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("[%s]\n", name)
		m := c.Sets[name].GetMap()
		for _, key := range c.Sets[name].Keys() {
			v := m[key]
			if secret[key] && v != "" {
				v = "********"
			}
			fmt.Printf("  %s=%s\n", key, v)
		}
	}
}

func readEnvFile(c *UConfig, filename string) error {
	vars, err := godotenv.Read(filename)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}
	for k, v := range vars {
		// Earlier files win, matching godotenv.Load
		if _, ok := c.fileVars[k]; !ok {
			c.fileVars[k] = v
		}
	}
	c.files = append(c.files, filename)
	return nil
}
