// Package utils provides shared low-level helpers used throughout the
// sitebrief internals. It covers the JSON-over-HTTP request helper used to
// talk to the model API, string truncation and serialisation utilities for
// log output, and a generic pointer helper.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [TruncateString] for bounded log previews, [ToString] for compact JSON
// rendering of arbitrary values, and [Ptr] for converting values to pointers.
package utils
