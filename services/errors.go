package services

import (
	"errors"
	"sort"
	"strings"

	"bukarum/utils"
)

var (
	ErrDateFormat          = utils.ErrDateFormat
	ErrInvalidDateRange    = errors.New("invalid_date_range")
	ErrNoAvailability      = errors.New("no_availability")
	ErrInvalidCardProfile  = errors.New("invalid_card_profile")
	ErrNotAuthenticated    = errors.New("not_authenticated")
	ErrNotFoundOrForbidden = errors.New("not_found_or_forbidden")
	ErrSearchExpired       = errors.New("search_expired")
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrAccountDisabled     = errors.New("account_disabled")
	ErrConflict            = errors.New("conflict")
	ErrNotFound            = errors.New("not_found")
)

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
