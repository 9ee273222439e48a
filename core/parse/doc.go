// Package parse provides utilities for extracting and converting structured
// data from raw LLM text output. Because language models frequently wrap JSON
// in narrative prose or markdown code fences, complex types go through a
// layered recovery strategy: a strict decode first, then automatic JSON
// repair, and finally a clear error that previews the offending content.
//
// The main entry point is the generic [ParseStringAs] function, which handles
// both primitive types (string, bool, int, uint, float) and complex types
// (structs, maps, slices) in a single, uniform API. Failures of any kind
// wrap [ErrUnparsable].
package parse
