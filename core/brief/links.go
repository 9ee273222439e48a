package brief

import "fmt"

// SelectedLink is one brochure-relevant link chosen by the model.
type SelectedLink struct {
	// Type is the model's label for the page kind.
	Type string `json:"type" jsonschema:"description=Short label for the kind of page (for example 'about page' or 'careers page'),required"`

	// URL is the full URL of the page.
	URL string `json:"url" jsonschema:"description=Full https URL of the page,required"`
}

// LinkSelection is the JSON shape the link classifier must answer with.
type LinkSelection struct {
	Links []SelectedLink `json:"links" jsonschema:"description=Links worth including in a company brochure,required"`
}

// Validate rejects replies that parsed as JSON but miss the expected
// shape. An empty list is a valid answer; an absent or null links field
// is not.
func (s *LinkSelection) Validate() error {
	if s.Links == nil {
		return fmt.Errorf("%w: missing links field", ErrInvalidLinkSelection)
	}
	return nil
}
