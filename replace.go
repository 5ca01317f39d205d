package headingdocx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/headingdocx/docx"
	"github.com/tsawler/headingdocx/outline"
)

// compilePattern compiles a replacement pattern in Go regexp syntax.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// ReplaceInMarkup replaces every match of pattern in markup with repl.
// Inside repl, $1 or ${name} expand to capture groups as in
// regexp.Regexp.ReplaceAllString.
//
// Example:
//
//	out, err := headingdocx.ReplaceInMarkup("<p><t>hello world</t></p>", "hello", "hi")
//	// out == "<p><t>hi world</t></p>"
func ReplaceInMarkup(markup, pattern, repl string) (string, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(markup, repl), nil
}

// Replace applies ReplaceInMarkup to the serialized body of the document and
// writes the result to out. Markup outside the body, such as namespace
// declarations on the root element, is never touched, and neither are other
// parts of the container. Whitespace and comments between body children are
// carried through, so a pattern that matches nothing leaves the part
// byte-for-byte unchanged. If the substituted part is no longer well-formed
// XML, ErrMalformedResult is returned and out is not written.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	err := headingdocx.Open("in.docx").Replace(`(?i)draft`, "final", "out.docx")
func (d *Document) Replace(pattern, repl, out string) error {
	re, err := compilePattern(pattern)
	if err != nil {
		return err
	}

	defer d.Close()
	s, err := d.scan()
	if err != nil {
		return err
	}
	defer s.Close()

	var body strings.Builder
	elements := 0
	for s.Scan() {
		el := s.Element()
		body.WriteString(el.Leading)
		body.WriteString(el.Markup)
		elements++
	}
	if err := s.Err(); err != nil {
		return err
	}
	body.WriteString(s.Tail())

	replaced := re.ReplaceAllString(body.String(), repl)
	data := outline.Compose(s.Prolog(), []string{replaced}, "", s.Epilog())
	if _, err := xmlquery.Parse(strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	if err := d.reader.WriteFileReplacing(out, docx.DocumentPart, data); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	d.options.log().Info("replaced body markup",
		"source", d.filename,
		"out", out,
		"pattern", pattern,
		"elements", elements,
		"changed", replaced != body.String())
	return nil
}
