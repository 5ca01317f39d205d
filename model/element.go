package model

// ElementKind represents the kind of a body-level element
type ElementKind int

const (
	ElementKindUnknown ElementKind = iota
	ElementKindParagraph
	ElementKindTable
	ElementKindSectionProperties
)

func (k ElementKind) String() string {
	switch k {
	case ElementKindParagraph:
		return "Paragraph"
	case ElementKindTable:
		return "Table"
	case ElementKindSectionProperties:
		return "SectionProperties"
	default:
		return "Unknown"
	}
}

// Element is one direct child of the document body, in document order.
// Markup holds the exact bytes of the element as they appear in the source part.
type Element struct {
	Kind      ElementKind
	Name      string     // local XML name, e.g. "p", "tbl", "sdt"
	Paragraph *Paragraph // set only for ElementKindParagraph
	Markup    string

	// Leading is the raw text between the previous body child (or the body
	// start tag) and this element: whitespace, comments, processing
	// instructions.
	Leading string
}

// Run is a contiguous span of text sharing one formatting attribute set.
type Run struct {
	Text string
	Bold bool
	// FontSize is in half-points (the WordprocessingML unit); 0 when unset.
	FontSize int
}

// Paragraph is the atomic unit of classification. Identity is positional:
// Index is the paragraph's 0-based position among body paragraphs.
type Paragraph struct {
	Index int

	// Text is the trimmed concatenation of all run text.
	Text string

	// StyleID is the raw w:pStyle value, possibly empty.
	StyleID string

	// StyleName is the display name resolved from the styles part, if any.
	StyleName string

	// OutlineLevel is the zero-based w:outlineLvl value, nil when absent or malformed.
	OutlineLevel *int

	Runs []Run

	// Markup is the verbatim w:p element.
	Markup string
}

// IsBold reports whether any run in the paragraph is bold.
func (p *Paragraph) IsBold() bool {
	for _, r := range p.Runs {
		if r.Bold {
			return true
		}
	}
	return false
}

// HasFontSizeAtLeast reports whether any run has an explicit size >= halfPoints.
func (p *Paragraph) HasFontSizeAtLeast(halfPoints int) bool {
	for _, r := range p.Runs {
		if r.FontSize > 0 && r.FontSize >= halfPoints {
			return true
		}
	}
	return false
}

// MaxFontSize returns the largest explicit run size in half-points, or 0.
func (p *Paragraph) MaxFontSize() int {
	max := 0
	for _, r := range p.Runs {
		if r.FontSize > max {
			max = r.FontSize
		}
	}
	return max
}

// HasOutlineLevel reports whether an explicit outline level is present.
func (p *Paragraph) HasOutlineLevel() bool {
	return p.OutlineLevel != nil
}
