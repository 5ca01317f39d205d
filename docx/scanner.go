package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/headingdocx/model"
)

// recorder keeps the raw bytes the XML decoder has read so element markup
// can be sliced out verbatim by input offset. Bytes before the last
// discarded offset are released.
type recorder struct {
	r    io.Reader
	buf  []byte
	base int64 // absolute offset of buf[0]
}

func (rec *recorder) Read(p []byte) (int, error) {
	n, err := rec.r.Read(p)
	rec.buf = append(rec.buf, p[:n]...)
	return n, err
}

// slice returns a copy of the bytes in [start, end).
func (rec *recorder) slice(start, end int64) string {
	return string(rec.buf[start-rec.base : end-rec.base])
}

// discard releases everything before offset.
func (rec *recorder) discard(offset int64) {
	n := offset - rec.base
	if n <= 0 {
		return
	}
	rec.buf = append(rec.buf[:0], rec.buf[n:]...)
	rec.base = offset
}

// rest returns every byte from offset to the end of the underlying stream.
func (rec *recorder) rest(offset int64) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(rec.buf[offset-rec.base:]))
	remaining, err := io.ReadAll(rec.r)
	if err != nil {
		return "", err
	}
	sb.Write(remaining)
	return sb.String(), nil
}

// Scanner streams the direct children of <w:body> in document order. It is
// single-pass and not restartable; use it like bufio.Scanner:
//
//	s, err := r.Elements()
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	for s.Scan() {
//	    el := s.Element()
//	    ...
//	}
//	if err := s.Err(); err != nil {
//	    return err
//	}
type Scanner struct {
	rc     io.ReadCloser
	rec    *recorder
	dec    *xml.Decoder
	styles styleTable

	depth   int
	inBody  bool
	sawBody bool
	done    bool

	element   model.Element
	paraIndex int
	err       error

	prolog string
	tail   string
	epilog string
}

func newScanner(rc io.ReadCloser, styles styleTable) *Scanner {
	rec := &recorder{r: rc}
	return &Scanner{
		rc:     rc,
		rec:    rec,
		dec:    xml.NewDecoder(rec),
		styles: styles,
	}
}

// Scan advances to the next body element. It returns false at the end of the
// body or on error.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}

	for {
		offset := s.dec.InputOffset()
		tok, err := s.dec.Token()
		if err == io.EOF {
			s.done = true
			if !s.sawBody {
				s.err = fmt.Errorf("%w: w:body", ErrMissingPart)
			}
			return false
		}
		if err != nil {
			s.err = fmt.Errorf("reading %s: %w", DocumentPart, err)
			return false
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !s.inBody {
				s.depth++
				if s.depth == 2 && t.Name.Space == nsW && t.Name.Local == "body" {
					s.inBody = true
					s.sawBody = true
					end := s.dec.InputOffset()
					s.prolog = s.rec.slice(0, end)
					s.rec.discard(end)
				}
				continue
			}
			if err := s.readElement(t, offset); err != nil {
				s.err = fmt.Errorf("reading %s: %w", DocumentPart, err)
				return false
			}
			return true

		case xml.EndElement:
			if !s.inBody {
				s.depth--
				continue
			}
			// Children are consumed whole, so any end tag seen here closes the body.
			s.inBody = false
			s.done = true
			s.tail = s.rec.slice(s.rec.base, offset)
			epilog, err := s.rec.rest(offset)
			if err != nil {
				s.err = fmt.Errorf("reading %s: %w", DocumentPart, err)
				return false
			}
			s.epilog = epilog
			return false
		}
	}
}

// readElement consumes one body child starting at start and records it.
func (s *Scanner) readElement(start xml.StartElement, offset int64) error {
	el := model.Element{
		Kind:    elementKind(start.Name),
		Name:    start.Name.Local,
		Leading: s.rec.slice(s.rec.base, offset),
	}

	if el.Kind == model.ElementKindParagraph {
		p, err := s.decodeParagraph(start)
		if err != nil {
			return err
		}
		el.Paragraph = p
	} else if err := s.dec.Skip(); err != nil {
		return err
	}

	end := s.dec.InputOffset()
	el.Markup = s.rec.slice(offset, end)
	s.rec.discard(end)
	if el.Paragraph != nil {
		el.Paragraph.Markup = el.Markup
	}
	s.element = el
	return nil
}

// decodeParagraph walks a <w:p> element collecting text, style, outline
// level and per-run formatting. Runs are gathered at any depth so text
// inside hyperlinks, insertions and content controls is kept in order.
func (s *Scanner) decodeParagraph(start xml.StartElement) (*model.Paragraph, error) {
	p := &model.Paragraph{Index: s.paraIndex}
	s.paraIndex++

	var text, runText strings.Builder
	var run *model.Run
	depth := 1

	for depth > 0 {
		tok, err := s.dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// drawings, mc:AlternateContent and VML carry their own
			// paragraphs and duplicate fallbacks; none of it is paragraph text
			if t.Name.Space != nsW {
				if err := s.dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			switch t.Name.Local {
			case "pPr":
				var props paragraphPropsXML
				if err := s.dec.DecodeElement(&props, &t); err != nil {
					return nil, err
				}
				p.StyleID = props.Style.Val
				p.OutlineLevel = parseOutlineLevel(props.OutlineLvl.Val)
				continue
			case "del", "drawing", "pict", "object", "txbxContent", "instrText", "delText":
				if err := s.dec.Skip(); err != nil {
					return nil, err
				}
				continue
			case "r":
				run = &model.Run{}
				runText.Reset()
			case "rPr":
				if run == nil {
					if err := s.dec.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				var props runPropsXML
				if err := s.dec.DecodeElement(&props, &t); err != nil {
					return nil, err
				}
				run.Bold = props.Bold.on()
				run.FontSize = parseHalfPoints(props.FontSize.Val)
				continue
			case "t":
				if run == nil {
					if err := s.dec.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				var tx textXML
				if err := s.dec.DecodeElement(&tx, &t); err != nil {
					return nil, err
				}
				runText.WriteString(tx.Value)
				continue
			case "tab":
				if run != nil {
					runText.WriteString("\t")
				}
			case "br", "cr":
				if run != nil {
					runText.WriteString("\n")
				}
			}
			depth++

		case xml.EndElement:
			depth--
			if depth > 0 && run != nil && t.Name.Space == nsW && t.Name.Local == "r" {
				run.Text = runText.String()
				text.WriteString(run.Text)
				p.Runs = append(p.Runs, *run)
				run = nil
			}
		}
	}

	p.Text = strings.TrimSpace(text.String())
	p.StyleName = s.styles.name(p.StyleID)
	return p, nil
}

// Element returns the most recent element produced by Scan.
func (s *Scanner) Element() model.Element {
	return s.element
}

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Prolog returns the part's bytes up to and including the <w:body> start tag.
// It is available once the body has been entered.
func (s *Scanner) Prolog() string {
	return s.prolog
}

// Tail returns the raw text between the last body child and </w:body>.
// It is available once Scan has returned false without error.
func (s *Scanner) Tail() string {
	return s.tail
}

// Epilog returns the part's bytes from the </w:body> end tag to the end of
// the part. It is available once Scan has returned false without error.
func (s *Scanner) Epilog() string {
	return s.epilog
}

// Drain consumes the remaining elements so Prolog and Epilog are complete.
func (s *Scanner) Drain() error {
	for s.Scan() {
	}
	return s.Err()
}

// Close releases the underlying part reader.
func (s *Scanner) Close() error {
	if s.rc == nil {
		return nil
	}
	err := s.rc.Close()
	s.rc = nil
	return err
}
