package parse

import "errors"

// ErrUnparsable wraps every parse failure, so callers can separate
// "the content cannot become the requested type" from transport or
// provider errors with errors.Is.
var ErrUnparsable = errors.New("content cannot be parsed into the requested type")
