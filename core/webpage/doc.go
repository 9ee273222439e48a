// Package webpage fetches web pages and reduces them to the parts a
// text-generation prompt needs: title, visible body text, and the list of
// hyperlink targets.
//
// The main entry point is [New], which builds a [Fetcher]:
//
//	fetcher := webpage.New(webpage.WithTimeout(10 * time.Second))
//	page, err := fetcher.Fetch(ctx, "example.com")
//
// Script, style, image, and input elements are stripped from the body
// before text extraction, so the extracted text only contains what a
// reader would see. Links are collected as-is: relative targets stay
// relative, duplicates stay duplicated, document order is preserved.
//
// A fetch that answers with any status other than 200 fails with a
// [*StatusError] and returns no page.
package webpage
