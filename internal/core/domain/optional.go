package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Float returns a pointer to v. Used to populate optional fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

// Coalesce returns *v, or def when v is nil.
func Coalesce[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// CoalesceString returns *v, or def when v is nil or blank.
func CoalesceString(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AsFloat coerces a loosely typed scalar to float64.
// Booleans and strings are not numbers; ok is false for them.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// CheckQuantity returns ErrInvalidInput naming field when v is negative or non-finite.
func CheckQuantity(field string, v float64) error {
	if !IsFinite(v) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidInput, field, v)
	}
	return nil
}
