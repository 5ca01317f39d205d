// Package format identifies WordprocessingML containers.
//
// A file counts as a Word document when it is a ZIP archive holding
// word/document.xml. The main part's content type in [Content_Types].xml
// then tells documents, templates and their macro-enabled variants apart.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Format represents a detected container kind.
type Format int

const (
	// Unknown indicates the input is not a ZIP container.
	Unknown Format = iota
	// DOCX indicates a Word document (.docx).
	DOCX
	// DOCM indicates a macro-enabled Word document (.docm).
	DOCM
	// DOTX indicates a Word template (.dotx).
	DOTX
	// DOTM indicates a macro-enabled Word template (.dotm).
	DOTM
	// OtherZIP indicates a ZIP container without a Word main part, such as
	// a spreadsheet, presentation or OpenDocument file.
	OtherZIP
)

// Main part content types, keyed to the format they identify.
var mainContentTypes = map[string]Format{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml": DOCX,
	"application/vnd.ms-word.document.macroEnabled.main+xml":                           DOCM,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml": DOTX,
	"application/vnd.ms-word.template.macroEnabledTemplate.main+xml":                   DOTM,
}

const mainPart = "word/document.xml"

var overrideExpr = xpath.MustCompile(`//*[local-name()='Override'][@PartName='/word/document.xml']`)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOCM:
		return "DOCM"
	case DOTX:
		return "DOTX"
	case DOTM:
		return "DOTM"
	case OtherZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOCM:
		return ".docm"
	case DOTX:
		return ".dotx"
	case DOTM:
		return ".dotm"
	case OtherZIP:
		return ".zip"
	default:
		return ""
	}
}

// IsWord reports whether f carries a WordprocessingML main part that the
// rest of this module can read.
func (f Format) IsWord() bool {
	switch f {
	case DOCX, DOCM, DOTX, DOTM:
		return true
	}
	return false
}

// Detect determines the format from the filename extension alone.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".docm":
		return DOCM
	case ".dotx":
		return DOTX
	case ".dotm":
		return DOTM
	case ".zip", ".xlsx", ".pptx", ".odt":
		return OtherZIP
	default:
		return Unknown
	}
}

// isZIP checks for the local file header signature PK\x03\x04.
func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// DetectFile inspects the content of the named file.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, info.Size())
}

// DetectFromReader inspects the content to determine the format. This is
// more reliable than extension-based detection: a renamed file is still
// recognised, and a .docx that is not really a Word container is not.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	if !isZIP(magic[:n]) {
		return Unknown, nil
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	return detectZIPFormat(zr), nil
}

// detectZIPFormat decides between the Word variants using the content type
// declared for the main part. A main part without a recognised declaration
// is treated as a plain document.
func detectZIPFormat(zr *zip.Reader) Format {
	var hasMain bool
	var contentTypes *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case mainPart:
			hasMain = true
		case "[Content_Types].xml":
			contentTypes = f
		}
	}

	if !hasMain {
		return OtherZIP
	}
	if contentTypes == nil {
		return DOCX
	}
	if f, ok := mainFormat(contentTypes); ok {
		return f
	}
	return DOCX
}

func mainFormat(f *zip.File) (Format, bool) {
	rc, err := f.Open()
	if err != nil {
		return Unknown, false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Unknown, false
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return Unknown, false
	}

	n := xmlquery.QuerySelector(doc, overrideExpr)
	if n == nil {
		return Unknown, false
	}
	format, ok := mainContentTypes[strings.TrimSpace(n.SelectAttr("ContentType"))]
	return format, ok
}
