/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package fields provides the name/value pairs attached to log events.
package fields

import (
	"fmt"
	"strings"

	"github.com/coinsage/coinsage/common/interfaces"
)

type Fields struct {
	Fields []Field
}

type Field struct {
	K string
	V any
}

// Name returns the key of the field to implement the NVPair interface
func (f Field) Name() string {
	return f.K
}

// Value returns the value of the field to implement the NVPair interface
func (f Field) Value() any {
	return f.V
}

func NewFields(fields ...Field) *Fields {
	return &Fields{Fields: fields}
}

func NewField(key string, value any) Field {
	return Field{K: key, V: value}
}

// Err returns an "error" field, or an empty error string for a nil error
func Err(err error) Field {
	if err == nil {
		return Field{K: "error", V: ""}
	}
	return Field{K: "error", V: err.Error()}
}

func (f *Fields) Append(fields ...Field) {
	f.Fields = append(f.Fields, fields...)
}

func (f *Fields) AppendKV(key string, value any) {
	f.Fields = append(f.Fields, Field{K: key, V: value})
}

// With returns a copy of f with the additional fields appended, leaving f untouched.
// It is used by handlers that share a base set of request fields.
func (f *Fields) With(fields ...Field) *Fields {
	if f == nil {
		return NewFields(fields...)
	}
	c := make([]Field, 0, len(f.Fields)+len(fields))
	c = append(c, f.Fields...)
	c = append(c, fields...)
	return &Fields{Fields: c}
}

// ToText converts the Fields to a string
func (f *Fields) ToText() string {
	if f == nil || len(f.Fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		parts = append(parts, fmt.Sprintf("%s=%v", field.K, field.V))
	}
	return strings.Join(parts, " ")
}

// ToPairs implements the ToPairs method
func (f *Fields) ToPairs() []interfaces.NVPair {
	if f == nil {
		return nil
	}
	pairs := make([]interfaces.NVPair, len(f.Fields))
	for i, field := range f.Fields {
		pairs[i] = field
	}
	return pairs
}
