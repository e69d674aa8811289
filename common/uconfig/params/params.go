/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package params implements a simple key/value store with constraints.
package params

import (
	"fmt"
	"sort"
)

type Element struct {
	Value   Value `json:"value"`
	Default Value `json:"default"`
	Min     int   `json:"min"`
	Max     int   `json:"max"`
}

type Params struct {
	Data map[string]Element
}

// New returns an initialized Params object
func New() Params {
	return Params{Data: make(map[string]Element)}
}

// Exists checks if a key exists in the Params object
func (p *Params) Exists(key string) bool {
	_, ok := p.Data[key]
	return ok
}

// Keys returns the declared keys in sorted order
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.Data))
	for k := range p.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set a key/value pair in the Params object
func (p *Params) Set(key string, value any) {
	element, ok := p.Data[key]
	if !ok {
		element = Element{}
	}

	// enforceAny deals with empty strings and out of range ints and returns a string
	element.Value = enforceAny(value, element.Min, element.Max, element.Default)
	p.Data[key] = element
}

// SetDefault sets a default value for a key in the Params object
func (p *Params) SetDefault(key string, value any) {
	element, ok := p.Data[key]
	if !ok {
		element = Element{}
	}
	element.Default = Value(fmt.Sprintf("%v", value))
	p.Data[key] = element
}

// SetConstraint sets a min and max constraint and a default for a key in the Params object
func (p *Params) SetConstraint(key string, min, max int, def any) {
	element, ok := p.Data[key]
	if !ok {
		element = Element{}
	}
	element.Default = Value(fmt.Sprintf("%v", def))
	element.Min = min
	element.Max = max
	p.Data[key] = element
}

// SetStringMap sets multiple key/value pairs in the Params object
func (p *Params) SetStringMap(data map[string]string) {
	for key, value := range data {
		// Use set for constraint enforcement and type conversion
		p.Set(key, value)
	}
}

// Get a Value from the Params object
func (p *Params) Get(key string) Value {

	// Get the element if it exists
	element, ok := p.Data[key]
	if !ok {
		return Value("")
	}

	// Enforce the constraints
	ret := enforce(element)

	// If changed, save it
	if ret != element.Value {
		element.Value = ret
		p.Data[key] = element
	}
	return ret
}

// GetMap converts the Params object to a map[string]string
// Constraints are enforced
func (p *Params) GetMap() map[string]string {
	r := make(map[string]string)
	for key, element := range p.Data {
		r[key] = enforce(element).String()
	}
	return r
}
