package webpage

import "fmt"

// StatusError reports a fetch that answered with a non-success HTTP
// status. The page is never partially constructed alongside it.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status code: %d %s", e.URL, e.StatusCode, e.Status)
}
