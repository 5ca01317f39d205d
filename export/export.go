// Package export renders heading outlines for people and other programs.
//
// HTML output is built as an x/net/html node tree. Markdown is derived from
// the same tree with html-to-markdown, so both formats escape heading text
// the same way.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/headingdocx/model"
)

// Format selects an output representation.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{Text, JSON, Markdown, HTML}

// ParseFormat maps a name such as "md" or "JSON" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	}
	return "", fmt.Errorf("unknown export format %q", name)
}

// Write renders headings to w in the given format.
func Write(w io.Writer, headings []model.HeadingRecord, f Format) error {
	switch f {
	case Text:
		return writeText(w, headings)
	case JSON:
		return writeJSON(w, headings)
	case Markdown:
		return writeMarkdown(w, headings)
	case HTML:
		return writeHTML(w, headings)
	}
	return fmt.Errorf("unknown export format %q", string(f))
}

// writeText prints an indented outline with the levels aligned in a right
// hand column. Widths are display widths, so CJK titles line up.
func writeText(w io.Writer, headings []model.HeadingRecord) error {
	lines := make([]string, len(headings))
	widest := 0
	for i, h := range headings {
		lines[i] = strings.Repeat("  ", indent(h.Level)) + h.Text
		if width := runewidth.StringWidth(lines[i]); width > widest {
			widest = width
		}
	}

	var sb strings.Builder
	for i, h := range headings {
		sb.WriteString(runewidth.FillRight(lines[i], widest))
		sb.WriteString("  ")
		sb.WriteString(levelLabel(h.Level))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func indent(level int) int {
	if level < 1 {
		return 0
	}
	return level - 1
}

func levelLabel(level int) string {
	if level < 1 {
		return "h?"
	}
	return fmt.Sprintf("h%d", level)
}

func writeJSON(w io.Writer, headings []model.HeadingRecord) error {
	if headings == nil {
		headings = []model.HeadingRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(headings)
}

// headingAtoms maps levels 1-6 to their HTML elements. Deeper levels share h6.
var headingAtoms = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func headingElement(level int) *html.Node {
	a := atom.P
	switch {
	case level > len(headingAtoms):
		a = atom.H6
	case level >= 1:
		a = headingAtoms[level-1]
	}
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// headingFlow returns one heading element per record, in order.
func headingFlow(headings []model.HeadingRecord) *html.Node {
	root := element(atom.Div)
	for _, h := range headings {
		n := headingElement(h.Level)
		n.AppendChild(textNode(h.Text))
		root.AppendChild(n)
	}
	return root
}

func writeMarkdown(w io.Writer, headings []model.HeadingRecord) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, headingFlow(headings)); err != nil {
		return fmt.Errorf("rendering outline: %w", err)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	md, err := conv.ConvertString(buf.String())
	if err != nil {
		return fmt.Errorf("converting outline to markdown: %w", err)
	}
	_, err = io.WriteString(w, strings.TrimSpace(md)+"\n")
	return err
}

// outlineTree nests headings as ordered lists. A heading deeper than the
// one before it opens a list inside the previous item; skipped levels get
// an empty item so depth always matches level.
func outlineTree(headings []model.HeadingRecord) *html.Node {
	nav := element(atom.Nav, html.Attribute{Key: "class", Val: "outline"})
	top := element(atom.Ol)
	nav.AppendChild(top)

	stack := []*html.Node{top}
	for _, h := range headings {
		depth := h.Level
		if depth < 1 {
			depth = 1
		}

		for len(stack) > depth {
			stack = stack[:len(stack)-1]
		}
		for len(stack) < depth {
			parent := stack[len(stack)-1]
			item := parent.LastChild
			if item == nil {
				item = element(atom.Li)
				parent.AppendChild(item)
			}
			list := element(atom.Ol)
			item.AppendChild(list)
			stack = append(stack, list)
		}

		li := element(atom.Li)
		li.AppendChild(textNode(h.Text))
		stack[len(stack)-1].AppendChild(li)
	}
	return nav
}

func writeHTML(w io.Writer, headings []model.HeadingRecord) error {
	if err := html.Render(w, outlineTree(headings)); err != nil {
		return fmt.Errorf("rendering outline: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
