package domain

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError signals that a referenced entity id does not resolve in the store.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError carries field-level detail for a rejected payload. It is
// always produced before any state mutation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		parts = append(parts, field)
	}
	sort.Strings(parts)
	for i, field := range parts {
		parts[i] = field + " " + e.Fields[field]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// TransitionError signals a lot status change that the lifecycle state
// machine does not allow.
type TransitionError struct {
	From LotStatus
	To   LotStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
