package headingdocx

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/headingdocx/docx"
	"github.com/tsawler/headingdocx/format"
	"github.com/tsawler/headingdocx/model"
	"github.com/tsawler/headingdocx/outline"
)

// Document provides a fluent interface over one Word document.
// Each configuration method returns a new Document instance, so a configured
// Document can be shared as a template and methods can be chained. Terminal
// operations open and close the reader on the receiver; do not run them
// concurrently on the same Document.
type Document struct {
	// Source
	filename string
	format   format.Format

	reader *docx.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Document with a copy of its options.
func (d *Document) clone() *Document {
	return &Document{
		filename:     d.filename,
		format:       d.format,
		reader:       d.reader,
		ownsReader:   d.ownsReader,
		readerOpened: d.readerOpened,
		options:      d.options.clone(),
		err:          d.err,
	}
}

// ensureReader opens the reader if not already open. The container is
// inspected first so a renamed spreadsheet or a corrupt archive is reported
// as such rather than as a missing part.
func (d *Document) ensureReader() error {
	if d.readerOpened {
		return nil
	}
	if d.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f, err := format.DetectFile(d.filename)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", d.filename, err)
	}
	if !f.IsWord() {
		return fmt.Errorf("%w: %s (%s)", ErrNotDOCX, d.filename, f)
	}
	d.format = f

	r, err := docx.Open(d.filename)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	d.reader = r
	d.ownsReader = true
	d.readerOpened = true
	return nil
}

// Close releases resources associated with the Document.
// It is safe to call Close multiple times.
func (d *Document) Close() error {
	if d.ownsReader && d.reader != nil {
		err := d.reader.Close()
		d.reader = nil
		d.ownsReader = false
		d.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Document instance)
// ============================================================================

// IncludeTables keeps tables and other non-paragraph body elements in the
// section that is open when they appear. By default sections hold
// paragraphs only.
//
// Example:
//
//	_, err := headingdocx.Open("doc.docx").IncludeTables().Rebuild(titles, "out.docx")
func (d *Document) IncludeTables() *Document {
	newDoc := d.clone()
	newDoc.options.includeTables = true
	return newDoc
}

// WithLogger sends debug and progress records to logger instead of
// slog.Default().
func (d *Document) WithLogger(logger *slog.Logger) *Document {
	newDoc := d.clone()
	newDoc.options.logger = logger
	return newDoc
}

// Format returns the detected container format once a terminal operation
// has opened the file, or format.Unknown before that or for FromReader.
func (d *Document) Format() format.Format {
	return d.format
}

func (d *Document) outlineOptions() outline.Options {
	return outline.Options{
		IncludeTables: d.options.includeTables,
		Logger:        d.options.log(),
	}
}

// scan opens the reader and starts a pass over the body.
func (d *Document) scan() (*docx.Scanner, error) {
	if d.err != nil {
		return nil, d.err
	}
	if err := d.ensureReader(); err != nil {
		return nil, err
	}
	s, err := d.reader.Elements()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Headings returns every heading paragraph in document order, duplicates
// included. This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	headings, err := headingdocx.Open("document.docx").Headings()
//	for _, h := range headings {
//	    fmt.Printf("[h%d] %s\n", h.Level, h.Text)
//	}
func (d *Document) Headings() ([]model.HeadingRecord, error) {
	defer d.Close()
	s, err := d.scan()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	headings, err := outline.Headings(s, d.outlineOptions())
	if err != nil {
		return nil, fmt.Errorf("extracting headings: %w", err)
	}
	return headings, nil
}

// ParagraphMarkup calls fn with the verbatim markup of each paragraph in
// document order. Paragraphs are read one at a time; returning an error
// from fn stops the pass and returns that error.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	err := headingdocx.Open("document.docx").ParagraphMarkup(func(m string) error {
//	    fmt.Println(m)
//	    return nil
//	})
func (d *Document) ParagraphMarkup(fn func(markup string) error) error {
	defer d.Close()
	s, err := d.scan()
	if err != nil {
		return err
	}
	defer s.Close()

	for s.Scan() {
		el := s.Element()
		if el.Kind != model.ElementKindParagraph {
			continue
		}
		if err := fn(el.Markup); err != nil {
			return err
		}
	}
	return s.Err()
}

// ParagraphMarkupList collects the output of ParagraphMarkup.
func (d *Document) ParagraphMarkupList() ([]string, error) {
	var markup []string
	err := d.ParagraphMarkup(func(m string) error {
		markup = append(markup, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return markup, nil
}

// Partition splits the body into heading-keyed sections.
// This is a terminal operation that closes the underlying reader.
func (d *Document) Partition() (*model.Partition, error) {
	defer d.Close()
	s, err := d.scan()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	p, err := outline.Partition(s, d.outlineOptions())
	if err != nil {
		return nil, fmt.Errorf("partitioning: %w", err)
	}
	return p, nil
}

// Rebuild writes a copy of the document to out whose body holds the section
// of each title, in the order given, followed by the original section
// properties. Every other part of the container is copied unchanged.
//
// When two headings share the same text, the later section is used. Titles
// that name no section contribute nothing and are reported as warnings, as is
// content before the first heading, which belongs to no section.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	warnings, err := headingdocx.Open("in.docx").Rebuild([]string{"Intro2", "Intro"}, "out.docx")
func (d *Document) Rebuild(titles []string, out string) ([]Warning, error) {
	defer d.Close()
	s, err := d.scan()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	log := d.options.log()
	p, err := outline.Partition(s, d.outlineOptions())
	if err != nil {
		return nil, fmt.Errorf("partitioning: %w", err)
	}

	var warnings []Warning
	for _, title := range outline.Missing(p, titles) {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("no section titled %q", title)})
	}
	if p.Dropped > 0 {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("%d body elements before the first heading were omitted", p.Dropped),
		})
	}

	fragments := outline.Assemble(p, titles)
	data := outline.Compose(s.Prolog(), fragments, p.Trailer, s.Epilog())
	if err := d.reader.WriteFileReplacing(out, docx.DocumentPart, data); err != nil {
		return warnings, fmt.Errorf("writing %s: %w", out, err)
	}

	log.Info("rebuilt document",
		"source", d.filename,
		"out", out,
		"sections", len(titles),
		"fragments", len(fragments),
		"warnings", len(warnings))
	return warnings, nil
}
