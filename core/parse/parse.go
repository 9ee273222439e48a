package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/sitebrief/internal/utils"
)

// ParseStringAs attempts to parse a string into the specified type T.
// For primitive types (string, bool, int, uint, float), it performs direct
// conversion. For complex types (structs, maps, slices), it attempts JSON
// unmarshaling; if that fails, it repairs the JSON string with jsonrepair and
// retries once before giving up.
//
// Example usage:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	// Parse a valid JSON string
//	person, err := ParseStringAs[Person](`{"name":"John","age":30}`)
//
//	// Parse an invalid JSON string (will be auto-repaired)
//	person, err := ParseStringAs[Person](`{name: 'John', age: 30}`)
//
//	// Parse primitive types
//	num, err := ParseStringAs[int]("42")
//	flag, err := ParseStringAs[bool]("true")
//
// Every failure wraps [ErrUnparsable].
func ParseStringAs[T any](content string) (T, error) {
	var result T

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(content)
		if err != nil {
			return result, fmt.Errorf("%w: failed to parse content as bool: %w", ErrUnparsable, err)
		}
		reflect.ValueOf(&result).Elem().SetBool(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return result, fmt.Errorf("%w: failed to parse content as float: %w", ErrUnparsable, err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("%w: failed to parse content as int: %w", ErrUnparsable, err)
		}
		reflect.ValueOf(&result).Elem().SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("%w: failed to parse content as uint: %w", ErrUnparsable, err)
		}
		reflect.ValueOf(&result).Elem().SetUint(val)
		return result, nil

	default:
		// Structs, slices, maps, and other complex types go through JSON
		// unmarshaling with a repair fallback.
		err := json.Unmarshal([]byte(content), &result)
		if err == nil {
			return result, nil
		}

		repairedJSON, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("%w: failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %v, repair error: %v", ErrUnparsable, result, err, repairErr)
		}

		if err = json.Unmarshal([]byte(repairedJSON), &result); err != nil {
			return result, fmt.Errorf("%w: failed to unmarshal repaired JSON as %T: %v (original content: %s, repaired: %s)",
				ErrUnparsable, result, err, utils.TruncateStringDefault(content), utils.TruncateStringDefault(repairedJSON))
		}
		return result, nil
	}
}
