package model

import "fmt"

// HeadingRecord is a heading found in a document, in document order.
type HeadingRecord struct {
	Text string `json:"text"`
	// Level is 1-based. 0 means the paragraph was classified as a heading
	// but no level could be resolved; it is never defaulted.
	Level int `json:"level"`
}

// HasLevel reports whether the heading carries a resolved level.
func (h HeadingRecord) HasLevel() bool {
	return h.Level > 0
}

// Titles returns the text of each heading, preserving order and duplicates.
func Titles(headings []HeadingRecord) []string {
	titles := make([]string, len(headings))
	for i, h := range headings {
		titles[i] = h.Text
	}
	return titles
}

// Reversed returns a copy of the titles in reverse order.
func Reversed(titles []string) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[len(titles)-1-i] = t
	}
	return out
}

// String returns a compact "text (hN)" representation.
func (h HeadingRecord) String() string {
	if !h.HasLevel() {
		return h.Text
	}
	return fmt.Sprintf("%s (h%d)", h.Text, h.Level)
}
