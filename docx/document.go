package docx

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/tsawler/headingdocx/model"
)

// XML namespaces and part names used in DOCX files
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// DocumentPart is the main document part holding the body.
	DocumentPart = "word/document.xml"
	// StylesPart holds style definitions.
	StylesPart = "word/styles.xml"
	// ContentTypesPart is the package content-type manifest.
	ContentTypesPart = "[Content_Types].xml"
)

// paragraphPropsXML represents the paragraph properties (<w:pPr>) the
// classifier reads.
type paragraphPropsXML struct {
	Style      styleRefXML   `xml:"pStyle"`
	OutlineLvl outlineLvlXML `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold     boolXML `xml:"b"`
	FontSize sizeXML `xml:"sz"`
}

// boolXML represents a toggle property such as <w:b/>.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// on reports whether the toggle is present and not switched off.
func (b boolXML) on() bool {
	if b.XMLName.Local == "" {
		return false
	}
	switch strings.ToLower(b.Val) {
	case "false", "0", "off":
		return false
	}
	return true
}

// sizeXML represents font size (in half-points).
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// parseOutlineLevel parses a zero-based outline level. Non-integers and
// negative values are treated as absent.
func parseOutlineLevel(s string) *int {
	if s == "" {
		return nil
	}
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 {
		return nil
	}
	return &level
}

// parseHalfPoints parses a w:sz value. Invalid values yield 0.
func parseHalfPoints(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// elementKind maps a body child's local name to its kind.
func elementKind(name xml.Name) model.ElementKind {
	if name.Space != nsW {
		return model.ElementKindUnknown
	}
	switch name.Local {
	case "p":
		return model.ElementKindParagraph
	case "tbl":
		return model.ElementKindTable
	case "sectPr":
		return model.ElementKindSectionProperties
	}
	return model.ElementKindUnknown
}
