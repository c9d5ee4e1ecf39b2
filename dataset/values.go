package dataset

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"time"
)

// ============================================================================
// VALUES — Cell normalization and missing-value rules
// ============================================================================
// Every cell is stored as one of:
//   nil        missing
//   float64    (NaN counts as missing)
//   int64
//   string
//   bool
//   time.Time
// Drivers and CSV loaders hand us whatever they scanned; Normalize folds
// it into this small set so builders only switch on six cases.
// ============================================================================

// Normalize converts a scanned value into one of the dataset cell types.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return x
	case time.Time:
		return x
	default:
		return normalizeOther(x)
	}
}

// normalizeOther handles pointers, sql.Null* style driver.Valuers and
// anything else the drivers scan. A nil pointer or a failing Valuer is a
// missing cell.
func normalizeOther(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		if err != nil {
			return nil
		}
		return Normalize(dv)
	}
	if rv.Kind() == reflect.Pointer {
		return Normalize(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// IsMissing reports whether a normalized cell counts as missing (nil or NaN).
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	}
	return false
}

// ToFloat returns the numeric value of a cell. Booleans count as 0/1.
// Strings and timestamps are not numeric.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// IsNumeric reports whether a non-missing cell has a numeric value.
func IsNumeric(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

// Format renders a cell for text outputs (CSV, samples). Missing cells are "".
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return fmt.Sprintf("%v", x)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
