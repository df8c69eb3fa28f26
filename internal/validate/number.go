// internal/validate/number.go
package validate

import (
	"fmt"
	"strconv"

	"github.com/tamzrod/modbus-preflight/internal/config"
)

// Number coerces a scalar to a number without losing precision. Integer
// input stays integral, fractional input becomes float64.
func Number(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		return v, nil
	case float64:
		return v, nil
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, raw)
}

// Sentinel coerces a not-a-number marker to an integer. Marker values
// may arrive as plain integers, decimal strings, or hex strings with
// or without the 0x prefix.
func Sentinel(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
		if n, ok := parseHex(v); ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, raw)
}

// Numbers coerces an entity's free-form numeric fields and returns a
// copy carrying the canonical values: scale, offset and range bounds
// through Number, the not-a-number sentinel through Sentinel. The
// input is never mutated.
func Numbers(name string, e config.Entity) (config.Entity, error) {
	out := e

	fields := []struct {
		raw   *any
		field string
	}{
		{&out.Scale, "scale"},
		{&out.Offset, "offset"},
		{&out.MinValue, "min_value"},
		{&out.MaxValue, "max_value"},
	}
	for _, f := range fields {
		if *f.raw == nil {
			continue
		}
		v, err := Number(*f.raw)
		if err != nil {
			return config.Entity{}, fmt.Errorf("%w: %s: `%s:` cannot coerce %v",
				ErrInvalidNumber, name, f.field, *f.raw)
		}
		*f.raw = v
	}

	if out.NaNValue != nil {
		v, err := Sentinel(out.NaNValue)
		if err != nil {
			return config.Entity{}, fmt.Errorf("%w: %s: `nan_value:` cannot coerce %v",
				ErrInvalidNumber, name, out.NaNValue)
		}
		out.NaNValue = v
	}
	return out, nil
}

func parseHex(s string) (int64, bool) {
	neg := false
	t := s
	if len(t) > 0 && (t[0] == '-' || t[0] == '+') {
		neg = t[0] == '-'
		t = t[1:]
	}
	if len(t) > 1 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
		t = t[2:]
	}
	n, err := strconv.ParseInt(t, 16, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
