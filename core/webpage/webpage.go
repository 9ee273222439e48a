package webpage

import "fmt"

// Page is one fetched web page reduced to what the generation prompts
// consume. Immutable after construction.
type Page struct {
	// URL is the normalized URL the page was fetched from.
	URL string

	// Title is the document title, or the "No title found" marker.
	Title string

	// Text is the visible body text: whitespace-trimmed blocks joined
	// with newlines. Empty when the body has no visible text.
	Text string

	// Links holds every hyperlink target in the document, in order,
	// duplicates and relative targets included.
	Links []string
}

// Contents renders the page in the layout the prompts embed it with.
func (p *Page) Contents() string {
	return fmt.Sprintf("Webpage Title:\n%s\nWebpage Contents:\n%s\n\n", p.Title, p.Text)
}
