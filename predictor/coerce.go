package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when a scalar field cannot be coerced to its numeric type
var ErrNotNumeric = errors.New("not a number")

// toInt coerces v to an integer. Floats are truncated toward zero,
// strings must hold a base-10 integer.
func toInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return uintToInt(field, uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return uintToInt(field, n)
	case float32:
		return truncate(field, float64(n))
	case float64:
		return truncate(field, n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", field, ErrNotNumeric, n.String())
		}
		return truncate(field, f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%s: invalid literal for integer: %q", field, n)
		}
		return i, nil
	case nil:
		return 0, fmt.Errorf("%s: value is required", field)
	default:
		return 0, fmt.Errorf("%s: %w: unsupported type %T", field, ErrNotNumeric, v)
	}
}

// toFloat coerces v to a float64
func toFloat(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", field, ErrNotNumeric, n.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: could not convert string to float: %q", field, n)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("%s: value is required", field)
	default:
		return 0, fmt.Errorf("%s: %w: unsupported type %T", field, ErrNotNumeric, v)
	}
}

func truncate(field string, f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: cannot convert %v to integer", field, f)
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, fmt.Errorf("%s: %v overflows integer", field, f)
	}
	return int(t), nil
}

func uintToInt(field string, u uint64) (int, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%s: %d overflows integer", field, u)
	}
	return int(u), nil
}
