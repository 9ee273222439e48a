package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the structure of a JSON Schema document. It follows the
// JSON Schema standard, supporting the types, properties, and validation rules
// needed to describe structured model output.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number")
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object type, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, defines the schema of items in the array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether properties not defined in Properties are allowed
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Enum contains the list of allowed values for the parameter
	Enum []any `json:"enum,omitempty"`
	// Ref is used for JSON Schema references to avoid infinite recursion
	Ref string `json:"$ref,omitempty"`
	// Defs contains reusable schema definitions
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// GenerateJSONSchema generates a JSON schema for the type T. Pointers are
// dereferenced to their element type. Recursive struct types are expressed
// through $defs and $ref entries; everything else is inlined.
//
// Supported jsonschema struct tags:
//  1. jsonschema:"description=xxx"
//  2. jsonschema:"enum=xxx,enum=yyy" (values converted to the field's type)
//  3. jsonschema:"required"
//
// A field is required when it is a non-pointer without omitempty, or when the
// required tag is present. Unexported fields and fields tagged json:"-" are
// skipped. Struct schemas are closed (additionalProperties false), which
// strict structured output modes require.
func GenerateJSONSchema[T any]() (*Schema, error) {
	g := &generator{
		inProgress: make(map[reflect.Type]string),
		recursive:  make(map[reflect.Type]bool),
		defs:       make(map[string]*Schema),
	}

	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	schema, err := g.typeSchema(t, true)
	if err != nil {
		return nil, err
	}

	if len(g.defs) > 0 {
		schema.Defs = g.defs
	}

	return schema, nil
}

// generator tracks state across one schema generation pass.
type generator struct {
	inProgress map[reflect.Type]string // struct types currently being walked, by definition name
	recursive  map[reflect.Type]bool   // struct types that referenced themselves during the walk
	defs       map[string]*Schema      // reusable definitions for recursive types
}

// typeSchema builds the schema for an arbitrary type.
func (g *generator) typeSchema(t reflect.Type, isRoot bool) (*Schema, error) {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Slice, reflect.Array:
		items, err := g.typeSchema(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		values, err := g.typeSchema(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Ptr:
		return g.typeSchema(t.Elem(), isRoot)
	case reflect.Struct:
		return g.structSchema(t, isRoot)
	default:
		return &Schema{Type: "object"}, nil
	}
}

// structSchema builds the schema for a struct type, guarding against cycles.
// A struct that references itself (directly or through other types) is stored
// under $defs and replaced by a $ref at every nested occurrence.
func (g *generator) structSchema(t reflect.Type, isRoot bool) (*Schema, error) {
	if name, walking := g.inProgress[t]; walking {
		g.recursive[t] = true
		return &Schema{Ref: "#/$defs/" + name}, nil
	}

	name := defName(t)
	g.inProgress[t] = name
	defer delete(g.inProgress, t)

	schema := &Schema{Type: "object", Properties: map[string]*Schema{}, AdditionalProperties: false}
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				fieldName = jsonTag[:commaIdx]
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				fieldName = jsonTag
			}
		}

		fieldSchema, err := g.typeSchema(field.Type, false)
		if err != nil {
			return nil, err
		}
		schema.Properties[fieldName] = fieldSchema

		isRequiredByTag := false
		// jsonschema tags would be lost on a bare $ref node, so they only
		// apply to inlined field schemas.
		if fieldSchema.Ref == "" {
			isRequiredByTag, err = parseJSONSchemaTag(field.Type, field.Tag, fieldSchema)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t.Name(), fieldName, err)
			}
		}

		if (field.Type.Kind() != reflect.Ptr && !isOmitEmpty) || isRequiredByTag {
			required = append(required, fieldName)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}

	if g.recursive[t] {
		g.defs[name] = schema
		if isRoot {
			return schema, nil
		}
		return &Schema{Ref: "#/$defs/" + name}, nil
	}

	return schema, nil
}

// defName creates the definition name for a type.
func defName(t reflect.Type) string {
	if t.Name() != "" {
		return strings.ToLower(t.Name())
	}
	return "anonymousStruct"
}

// parseJSONSchemaTag parses the jsonschema struct tag and applies the settings
// to the field schema. It reports whether the required tag was present.
//
// Enum values are converted to the field's own type; string, integer, float,
// and bool fields are supported. A description containing commas cannot be
// expressed with this grammar.
func parseJSONSchemaTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	jsonSchemaTag := tag.Get("jsonschema")
	if len(jsonSchemaTag) == 0 {
		return false, nil
	}

	isRequiredByTag := false
	for _, tagItem := range strings.Split(jsonSchemaTag, ",") {
		kv := strings.SplitN(tagItem, "=", 2)
		if len(kv) == 1 {
			if kv[0] == "required" {
				isRequiredByTag = true
			}
			continue
		}

		key, value := kv[0], kv[1]
		switch key {
		case "description":
			schema.Description = value
		case "enum":
			if err := appendEnumValue(fieldType, schema, value); err != nil {
				return false, err
			}
		}
	}

	return isRequiredByTag, nil
}

// appendEnumValue converts value to the field's kind and appends it to the
// schema's enum list.
func appendEnumValue(fieldType reflect.Type, schema *Schema, value string) error {
	switch fieldType.Kind() {
	case reflect.String:
		schema.Enum = append(schema.Enum, value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		schema.Enum = append(schema.Enum, v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		schema.Enum = append(schema.Enum, v)
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		schema.Enum = append(schema.Enum, v)
	default:
		return fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
	return nil
}

// JsonString converts the Schema to its JSON representation.
// indent: optional bool parameter. If true, formats JSON with indentation.
// If false or omitted, returns compact JSON.
func (s *Schema) JsonString(indent ...bool) (string, error) {
	shouldIndent := false
	if len(indent) > 0 {
		shouldIndent = indent[0]
	}

	var jsonBytes []byte
	var err error

	if shouldIndent {
		jsonBytes, err = json.MarshalIndent(s, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(s)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// String returns the compact JSON representation of the schema, or an error
// message if marshalling fails.
func (s *Schema) String() string {
	jsonStr, err := s.JsonString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return jsonStr
}
