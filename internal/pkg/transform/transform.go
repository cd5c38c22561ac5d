// Package transform converts map keys between snake_case and camelCase at
// the boundary between the persistence layer and the API layer.
package transform

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnakeToCamel converts a snake_case identifier to camelCase.
// Leading underscores are preserved so internal keys keep their shape.
func SnakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) && s[i] == '_' {
		b.WriteByte('_')
		i++
	}

	upperNext := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperNext = false
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToSnake converts a camelCase identifier to snake_case.
// Consecutive uppercase runs are treated as a single word boundary, so
// "userID" becomes "user_id" rather than "user_i_d".
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			prevLower := i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z'
			nextLower := i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z'
			if prevLower || (i > 0 && nextLower) {
				b.WriteByte('_')
			}
			b.WriteByte(c + 'a' - 'A')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// KeysToCamel recursively rewrites every map key in v from snake_case to
// camelCase. Maps and slices are walked; atomic values are returned as-is.
func KeysToCamel(v any) any {
	return transformKeys(v, SnakeToCamel)
}

// KeysToSnake recursively rewrites every map key in v from camelCase to
// snake_case. Maps and slices are walked; atomic values are returned as-is.
func KeysToSnake(v any) any {
	return transformKeys(v, CamelToSnake)
}

func transformKeys(v any, rename func(string) string) any {
	if isAtomic(v) {
		return v
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[rename(k)] = transformKeys(inner, rename)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = transformKeys(inner, rename)
		}
		return out
	default:
		return v
	}
}

// isAtomic reports whether v is an opaque leaf value that must pass through
// unchanged even though it may expose map-like or slice-like behavior when
// serialized.
func isAtomic(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time,
		uuid.UUID, *uuid.UUID,
		decimal.Decimal, *decimal.Decimal:
		return true
	default:
		return false
	}
}
