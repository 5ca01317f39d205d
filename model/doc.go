// Package model provides the read-only views derived from a WordprocessingML
// document during heading classification and heading-based reassembly.
//
// # Paragraphs
//
// A [Paragraph] carries everything the heading classifier looks at: the
// trimmed text, the raw style identifier, the optional zero-based outline
// level, and the ordered [Run] list with bold and half-point font size.
// It also carries its verbatim markup so it can be re-emitted unchanged.
//
// Body children that are not paragraphs (tables, section properties,
// content controls) are surfaced as [Element] values with only their markup.
//
// # Headings and blocks
//
//   - [HeadingRecord] - heading text and 1-based level
//   - [ContentBlock] - a heading plus the content up to the next heading
//   - [Partition] - title to block lookup, last occurrence wins
//
// None of these values outlive the call that produced them.
package model
