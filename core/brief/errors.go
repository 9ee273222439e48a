package brief

import "errors"

// ErrInvalidLinkSelection reports a link classification reply that could
// not be used: content that does not parse as the expected JSON shape, or
// a reply missing the links field. There is no fallback; the brochure
// workflow aborts.
var ErrInvalidLinkSelection = errors.New("sitebrief: invalid link selection reply")
