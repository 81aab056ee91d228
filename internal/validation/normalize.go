package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number converts a submitted value to float64.
// JSON numbers and numeric strings are both accepted.
func Number(field string, value any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, Invalid(field, field+" must be numeric")
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, Invalid(field, field+" must be numeric")
	}
	return f, nil
}

// OptionalNumber is like Number but maps empty values to nil
func OptionalNumber(field string, value any) (*float64, error) {
	if IsEmpty(value) {
		return nil, nil
	}
	f, err := Number(field, value)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ID converts a submitted value to a positive integer identifier
func ID(field string, value any) (int64, error) {
	f, err := Number(field, value)
	if err != nil {
		return 0, Invalid(field, field+" must be a positive integer")
	}
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt64 {
		return 0, Invalid(field, field+" must be a positive integer")
	}
	return int64(f), nil
}

// OptionalID is like ID but maps empty values to nil
func OptionalID(field string, value any) (*int64, error) {
	if IsEmpty(value) {
		return nil, nil
	}
	id, err := ID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// String converts a submitted value to a trimmed string
func String(field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", Invalid(field, field+" must be a string")
	}
}

// OptionalString is like String but maps null to nil
func OptionalString(field string, value any) (*string, error) {
	if value == nil {
		return nil, nil
	}
	s, err := String(field, value)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
