// Package headingdocx provides a fluent API for reading the heading outline
// of Word (.docx) documents and rebuilding documents from their
// heading-delimited sections.
//
// Basic usage:
//
//	headings, err := headingdocx.Open("report.docx").Headings()
//	if err != nil {
//	    // handle error
//	}
//	for _, h := range headings {
//	    fmt.Println(h)
//	}
//
// Reordering sections:
//
//	warnings, err := headingdocx.Open("report.docx").
//	    IncludeTables().
//	    Rebuild([]string{"Summary", "Introduction"}, "reordered.docx")
//
// For advanced use cases, the lower-level docx, heading and outline packages
// are also available.
package headingdocx

import (
	"errors"
	"strings"

	"github.com/tsawler/headingdocx/docx"
)

var (
	// ErrNotDOCX is returned when the input is not a WordprocessingML container.
	ErrNotDOCX = errors.New("not a Word document")

	// ErrInvalidPattern is returned when a replacement pattern does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrMalformedResult is returned when a replacement would leave the
	// document part without well-formed XML. Nothing is written in that case.
	ErrMalformedResult = errors.New("replacement produced malformed XML")
)

// Open returns a Document for fluent configuration. Nothing is read until a
// terminal operation such as Headings or Rebuild runs, and every terminal
// operation closes the file it opened.
//
// Example:
//
//	headings, err := headingdocx.Open("document.docx").Headings()
func Open(filename string) *Document {
	return &Document{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Document from an already-opened docx.Reader.
// This is useful when the container comes from memory rather than a file.
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := docx.NewReader(bytes.NewReader(data), int64(len(data)))
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	headings, err := headingdocx.FromReader(r).Headings()
func FromReader(r *docx.Reader) *Document {
	return &Document{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	headings := headingdocx.Must(headingdocx.Open("document.docx").Headings())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Warning describes a non-fatal condition found while rebuilding, such as a
// requested title that names no section.
type Warning struct {
	Message string
}

// FormatWarnings joins warning messages, one per line.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "\n")
}
