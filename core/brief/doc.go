// Package brief turns live websites into short markdown narratives.
//
// [Generator] drives two workflows end to end:
//
//   - [Generator.Summarize] fetches one page and asks the model for a
//     short markdown summary of it.
//   - [Generator.Brochure] fetches a company's landing page, has the
//     model pick the brochure-relevant links from it, fetches those pages
//     sequentially, and asks the model for a company brochure built from
//     the combined document.
//
// Both workflows are single-shot: no retries, no streaming, no state
// between invocations. A fetch failure anywhere, including on a selected
// sub-page, aborts the whole run. A link classification reply that is not
// usable fails with [ErrInvalidLinkSelection] rather than degrading to a
// landing-page-only brochure.
//
//	generator, err := brief.New(openai.New())
//	if err != nil {
//		return err
//	}
//	summary, err := generator.Summarize(ctx, "https://example.com")
package brief
