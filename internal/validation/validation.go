// Package validation reports missing or malformed request fields.
package validation

import (
	"fmt"
	"strings"
)

// Error lists the request fields that failed validation.
type Error struct {
	Fields []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NewError creates a validation error for the given fields.
func NewError(fields ...string) *Error {
	return &Error{Fields: fields}
}

// Collector accumulates failed fields and builds an Error at the end.
type Collector struct {
	fields []string
}

// Require records field as failed when value is empty or whitespace.
func (c *Collector) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.fields = append(c.fields, field)
	}
}

// Fail records field as failed unconditionally.
func (c *Collector) Fail(field string) {
	c.fields = append(c.fields, field)
}

// Err returns an *Error naming every failed field, or nil if all passed.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}
