// Package pipeline holds the text-processing stages used while assembling
// and rendering a portfolio page:
//   - Markdown to HTML fragments via Goldmark (quotes and captions)
//   - Chroma stylesheet generation for highlighted code spans
//   - CSS injection into rendered documents
//   - Relative URL rewriting inside the embedded document
//
// Page structure lives in the root folio package; this package only deals
// with strings.
package pipeline
