// Package jsonschema generates JSON Schema documents from Go types via
// reflection. The schemas drive the structured-output response format sent to
// the model API, so the model is steered toward replies that decode cleanly
// into the caller's types.
//
// Field names follow `json` struct tags; descriptions, enums, and required
// overrides come from `jsonschema` struct tags. The main entry point is the
// generic [GenerateJSONSchema] function.
package jsonschema
