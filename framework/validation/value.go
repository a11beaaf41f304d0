package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// IsPresent reports whether value counts as supplied.
//
// Absent values are nil (including nil pointers, slices and maps), "", false,
// numeric zero of any kind and NaN. Everything else, the string "0" and empty
// non-nil collections included, is present.
func IsPresent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		if v == "" {
			return false
		}
		f, err := v.Float64()
		if err != nil {
			return true
		}
		return f != 0 && !math.IsNaN(f)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return IsPresent(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// numberValue converts values of a numeric type. Strings are not considered.
func numberValue(value any) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		return parseNumber(string(n))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return numberValue(rv.Elem().Interface())
	}
	return 0, false
}

// toNumber converts numeric values and numeric strings.
func toNumber(value any) (float64, bool) {
	if s, ok := stringValue(value); ok {
		return parseNumber(s)
	}
	return numberValue(value)
}

// parseNumber accepts finite decimal numbers only. The infinity and NaN
// spellings strconv understands ("inf", "Infinity", "NaN") are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stringValue unwraps string kinds, named string types included.
func stringValue(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	if _, ok := value.(json.Number); ok {
		return "", false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// stringForm renders scalars the way they would appear in a form post.
// Collections and other composite values have no string form.
func stringForm(value any) (string, bool) {
	if s, ok := stringValue(value); ok {
		return s, true
	}
	switch v := value.(type) {
	case json.Number:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	if f, ok := numberValue(value); ok {
		return formatNumber(f), true
	}
	return "", false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func runeLength(s string) int {
	return utf8.RuneCountInString(s)
}

// strictEqual compares values by dynamic type and content, so "1" never
// equals 1.
func strictEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// paramString renders a rule-object parameter.
func paramString(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case json.Number:
		return string(p)
	case float64:
		return formatNumber(p)
	case float32:
		return formatNumber(float64(p))
	}
	return fmt.Sprint(v)
}
