package headingdocx_test

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tsawler/headingdocx"
	"github.com/tsawler/headingdocx/export"
	"github.com/tsawler/headingdocx/model"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_headings() {
	headings, err := headingdocx.Open("document.docx").Headings()
	if err != nil {
		log.Fatal(err)
	}

	for _, h := range headings {
		fmt.Printf("[h%d] %s\n", h.Level, h.Text)
	}
}

func Example_exportOutline() {
	headings := headingdocx.Must(headingdocx.Open("document.docx").Headings())

	// text, json, markdown or html
	if err := export.Write(os.Stdout, headings, export.Markdown); err != nil {
		log.Fatal(err)
	}
}

func Example_paragraphMarkup() {
	// Paragraphs are streamed one at a time
	err := headingdocx.Open("document.docx").ParagraphMarkup(func(markup string) error {
		fmt.Println(markup)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}

func Example_rebuild() {
	warnings, err := headingdocx.Open("document.docx").
		IncludeTables(). // Keep tables inside their sections
		Rebuild([]string{"Summary", "Introduction"}, "reordered.docx")
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range warnings {
		log.Println("Warning:", w.Message) // Non-fatal issues
	}
}

func Example_reverseSections() {
	doc := headingdocx.Open("document.docx")
	titles := model.Titles(headingdocx.Must(doc.Headings()))

	_, err := doc.Rebuild(model.Reversed(titles), "reversed.docx")
	_ = err
}

func Example_replace() {
	out, err := headingdocx.ReplaceInMarkup("<p><t>hello world</t></p>", "hello", "hi")
	_ = out // "<p><t>hi world</t></p>"
	_ = err

	// Whole document body
	err = headingdocx.Open("document.docx").
		WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))).
		Replace(`(?i)\bdraft\b`, "Final", "final.docx")
	_ = err
}
