// Package docx provides read access to the body of a DOCX (Office Open XML)
// document and writes copies of a container with one part replaced.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// ErrMissingPart is returned when a required container part or the document
// body is absent.
var ErrMissingPart = errors.New("docx: missing required part")

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	styles    styleTable
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads a DOCX container from ra, which has the given size.
// The caller keeps ownership of ra.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Styles are optional - a missing or unreadable styles part only means
	// style names stay unresolved.
	if data, err := r.getFileContent(StylesPart); err == nil {
		if styles, err := parseStyleTable(data); err == nil {
			r.styles = styles
		}
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		ContentTypesPart,
		DocumentPart,
	}

	for _, name := range required {
		if r.getFile(name) == nil {
			return fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}

	return nil
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.getFile(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Part returns the raw content of a container part.
func (r *Reader) Part(name string) ([]byte, error) {
	return r.getFileContent(name)
}

// Parts returns the names of all container entries in archive order.
func (r *Reader) Parts() []string {
	names := make([]string, 0, len(r.zipReader.File))
	for _, f := range r.zipReader.File {
		names = append(names, f.Name)
	}
	return names
}

// StyleName returns the display name of a paragraph style ID, or "" when the
// styles part does not define it.
func (r *Reader) StyleName(id string) string {
	return r.styles.name(id)
}

// Elements starts a single pass over the body's children. The returned
// Scanner must be closed.
func (r *Reader) Elements() (*Scanner, error) {
	f := r.getFile(DocumentPart)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, DocumentPart)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", DocumentPart, err)
	}
	return newScanner(rc, r.styles), nil
}
