package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// StringAs parses content into the type T.
// Primitive targets (string, bool, ints, floats) are converted directly.
// Struct, slice, and map targets are JSON-unmarshaled; when that fails the
// content is run through jsonrepair and unmarshaling is retried, which
// recovers from the common LLM mistakes (single quotes, trailing commas,
// unquoted keys, markdown fences).
func StringAs[T any](content string) (T, error) {
	var result T
	value := reflect.ValueOf(&result).Elem()

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		value.SetString(content)
		return result, nil

	case reflect.Bool:
		parsed, err := strconv.ParseBool(strings.TrimSpace(content))
		if err != nil {
			return result, fmt.Errorf("failed to parse %q as bool: %w", content, err)
		}
		value.SetBool(parsed)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse %q as int: %w", content, err)
		}
		value.SetInt(parsed)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse %q as uint: %w", content, err)
		}
		value.SetUint(parsed)
		return result, nil

	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse %q as float: %w", content, err)
		}
		value.SetFloat(parsed)
		return result, nil

	default:
		return unmarshalWithRepair[T](content)
	}
}

// unmarshalWithRepair unmarshals content as JSON, retrying once with a
// repaired document when the first attempt fails.
func unmarshalWithRepair[T any](content string) (T, error) {
	var result T

	firstErr := json.Unmarshal([]byte(content), &result)
	if firstErr == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v",
			result, firstErr, repairErr)
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original: %s, repaired: %s)",
			result, err, content, repaired)
	}

	return result, nil
}
