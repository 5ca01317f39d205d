// Package outline derives the heading outline of a document body and
// reassembles bodies from heading-delimited blocks.
//
// Every function here consumes a [Source] once, in document order, and
// decides what is a heading with [heading.Classify] only.
package outline

import (
	"log/slog"
	"strings"

	"github.com/tsawler/headingdocx/heading"
	"github.com/tsawler/headingdocx/model"
)

// Source is a single-pass stream of body elements. *docx.Scanner implements it.
type Source interface {
	Scan() bool
	Element() model.Element
	Err() error
}

// Options controls partitioning.
type Options struct {
	// IncludeTables keeps tables and other non-paragraph body elements in the
	// block that is open when they appear. By default only paragraphs are kept.
	IncludeTables bool

	// Logger receives a debug record per heading. Nil disables logging.
	Logger *slog.Logger
}

func (o Options) debug(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}

// Headings returns every heading in document order, duplicates included.
func Headings(src Source, opts Options) ([]model.HeadingRecord, error) {
	var headings []model.HeadingRecord
	for src.Scan() {
		el := src.Element()
		if el.Kind != model.ElementKindParagraph {
			continue
		}
		res := heading.Classify(el.Paragraph)
		if !res.IsHeading {
			continue
		}
		opts.debug("heading", "text", el.Paragraph.Text, "level", res.Level, "rule", res.Rule, "index", el.Paragraph.Index)
		headings = append(headings, model.HeadingRecord{Text: el.Paragraph.Text, Level: res.Level})
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return headings, nil
}

// partitioner is the fold state threaded through one pass over the body.
type partitioner struct {
	opts    Options
	result  *model.Partition
	current *model.ContentBlock
}

func (s *partitioner) step(el model.Element) {
	switch el.Kind {
	case model.ElementKindParagraph:
		if res := heading.Classify(el.Paragraph); res.IsHeading {
			s.close()
			s.opts.debug("block opened", "title", el.Paragraph.Text, "level", res.Level, "rule", res.Rule)
			s.current = &model.ContentBlock{
				Title:     el.Paragraph.Text,
				Fragments: []string{el.Markup},
			}
			return
		}
		s.add(el.Markup)

	case model.ElementKindSectionProperties:
		s.result.Trailer = el.Markup

	default:
		if s.opts.IncludeTables {
			s.add(el.Markup)
		}
	}
}

// add appends to the open block. Content before the first heading belongs
// to no block and is dropped.
func (s *partitioner) add(markup string) {
	if s.current == nil {
		s.result.Dropped++
		return
	}
	s.current.Fragments = append(s.current.Fragments, markup)
}

// close stores the open block, replacing any earlier block with the same title.
func (s *partitioner) close() {
	if s.current == nil {
		return
	}
	s.result.Put(s.current)
	s.current = nil
}

// Partition splits the body into heading-keyed content blocks.
func Partition(src Source, opts Options) (*model.Partition, error) {
	s := &partitioner{opts: opts, result: model.NewPartition()}
	for src.Scan() {
		s.step(src.Element())
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	s.close()
	return s.result, nil
}

// Assemble returns the fragments of each title's block in titles order.
// Unknown titles contribute nothing; repeated titles repeat their block.
func Assemble(p *model.Partition, titles []string) []string {
	var fragments []string
	for _, title := range titles {
		if b, ok := p.Get(title); ok {
			fragments = append(fragments, b.Fragments...)
		}
	}
	return fragments
}

// Missing returns the titles that have no block in p, in the order given.
func Missing(p *model.Partition, titles []string) []string {
	var missing []string
	for _, title := range titles {
		if _, ok := p.Get(title); !ok {
			missing = append(missing, title)
		}
	}
	return missing
}

// Compose builds a document part from the original part's prolog and
// epilog, the assembled fragments, and the body's trailing section
// properties.
func Compose(prolog string, fragments []string, trailer, epilog string) []byte {
	size := len(prolog) + len(trailer) + len(epilog)
	for _, f := range fragments {
		size += len(f)
	}

	var sb strings.Builder
	sb.Grow(size)
	sb.WriteString(prolog)
	for _, f := range fragments {
		sb.WriteString(f)
	}
	sb.WriteString(trailer)
	sb.WriteString(epilog)
	return []byte(sb.String())
}
