package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/tsawler/headingdocx/model"
)

var sample = []model.HeadingRecord{
	{Text: "Intro", Level: 1},
	{Text: "Details", Level: 2},
	{Text: "Intro2", Level: 1},
}

func render(t *testing.T, headings []model.HeadingRecord, f Format) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, headings, f); err != nil {
		t.Fatalf("Write(%s) error = %v", f, err)
	}
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"", Text, false},
		{"text", Text, false},
		{"JSON", JSON, false},
		{"md", Markdown, false},
		{"markdown", Markdown, false},
		{" html ", HTML, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sample, Format("pdf")); err == nil {
		t.Error("Write() should reject an unknown format")
	}
}

func TestWriteText(t *testing.T) {
	got := render(t, sample, Text)
	want := "Intro      h1\n" +
		"  Details  h2\n" +
		"Intro2     h1\n"
	if got != want {
		t.Errorf("text output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteText_WideCharacters(t *testing.T) {
	got := render(t, []model.HeadingRecord{
		{Text: "第一章", Level: 1},
		{Text: "Scope", Level: 1},
	}, Text)

	// 第一章 is six columns wide, so "Scope" needs one extra space
	want := "第一章  h1\n" +
		"Scope   h1\n"
	if got != want {
		t.Errorf("text output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteText_UnresolvedLevel(t *testing.T) {
	got := render(t, []model.HeadingRecord{{Text: "Odd"}}, Text)
	if got != "Odd  h?\n" {
		t.Errorf("text output = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var got []model.HeadingRecord
	if err := json.Unmarshal([]byte(render(t, sample, JSON)), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Errorf("JSON round trip = %v, want %v", got, sample)
	}

	if out := strings.TrimSpace(render(t, nil, JSON)); out != "[]" {
		t.Errorf("empty outline = %q, want []", out)
	}
	if out := render(t, []model.HeadingRecord{{Text: "A & B", Level: 1}}, JSON); !strings.Contains(out, `"A & B"`) {
		t.Errorf("ampersand should not be escaped: %s", out)
	}
}

func TestWriteMarkdown(t *testing.T) {
	got := render(t, []model.HeadingRecord{
		{Text: "Intro", Level: 1},
		{Text: "Details", Level: 2},
		{Text: "Deep", Level: 8},
	}, Markdown)

	for _, line := range []string{"# Intro", "## Details", "###### Deep"} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("markdown missing %q:\n%s", line, got)
		}
	}
	if strings.Contains(got, "<") {
		t.Errorf("markdown should not contain HTML:\n%s", got)
	}
}

// listTexts walks the rendered outline and returns each item's direct text
// with its list depth.
func listTexts(n *html.Node, depth int, out *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d := depth
		if c.Type == html.ElementNode && c.Data == "ol" {
			d++
		}
		if c.Type == html.ElementNode && c.Data == "li" {
			var text string
			for t := c.FirstChild; t != nil; t = t.NextSibling {
				if t.Type == html.TextNode {
					text += t.Data
				}
			}
			*out = append(*out, strings.Repeat(">", depth)+text)
		}
		listTexts(c, d, out)
	}
}

func TestWriteHTML(t *testing.T) {
	out := render(t, []model.HeadingRecord{
		{Text: "Intro", Level: 1},
		{Text: "Details", Level: 2},
		{Text: "Deep", Level: 4},
		{Text: "<Back>", Level: 1},
	}, HTML)

	if !strings.HasPrefix(out, `<nav class="outline">`) {
		t.Errorf("unexpected HTML:\n%s", out)
	}
	if !strings.Contains(out, "&lt;Back&gt;") {
		t.Error("heading text should be escaped")
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	var got []string
	listTexts(doc, 0, &got)

	want := []string{">Intro", ">>Details", ">>>", ">>>>Deep", "><Back>"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outline = %q, want %q", got, want)
	}
}
