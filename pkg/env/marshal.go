package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// MarshalEnv reflects over one or more structs and renders .env content from
// their `env` tags. Nested structs are walked, zero values are skipped, and
// later structs win when two fields share a key.
func MarshalEnv(cfgs ...any) (string, error) {
	values := make(map[string]string)
	var order []string

	for _, c := range cfgs {
		v := reflect.ValueOf(c)
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return "", fmt.Errorf("env: expected pointer to struct, got %T", c)
		}
		collect(v.Elem(), values, &order)
	}

	var lines []string
	for _, key := range order {
		lines = append(lines, fmt.Sprintf("%s=%s", key, quote(values[key])))
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return result, nil
}

func collect(v reflect.Value, values map[string]string, order *[]string) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		val := v.Field(i)
		tag := field.Tag.Get("env")

		if tag == "" {
			if val.Kind() == reflect.Struct {
				collect(val, values, order)
			}
			continue
		}

		key := strings.Split(tag, ",")[0]
		if key == "" || isZeroValue(val) {
			continue
		}

		if _, seen := values[key]; !seen {
			*order = append(*order, key)
		}
		values[key] = formatValue(val)
	}
}

// quote wraps values godotenv would otherwise split or trim.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n#\"'=") {
		return strconv.Quote(s)
	}
	return s
}

// isZeroValue checks if a reflect.Value is the zero value for its type
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// formatValue converts a reflect.Value to its string representation
func formatValue(v reflect.Value) string {
	if d, ok := v.Interface().(interface{ String() string }); ok && v.Kind() == reflect.Int64 {
		// time.Duration and friends
		return d.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
