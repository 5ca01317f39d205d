package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteReplacing writes a copy of the container to w in which the named part
// holds data. Every other entry is copied raw, without recompression, in its
// original archive order.
func (r *Reader) WriteReplacing(w io.Writer, part string, data []byte) error {
	zw := zip.NewWriter(w)
	replaced := false

	for _, f := range r.zipReader.File {
		if f.Name != part {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", part, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", part, err)
		}
		replaced = true
	}

	if !replaced {
		return fmt.Errorf("%w: %s", ErrMissingPart, part)
	}
	return zw.Close()
}

// WriteFileReplacing writes the container to filename with one part replaced.
// The output is written to a temporary file in the same directory and renamed
// into place, so filename may be the file the Reader was opened from.
func (r *Reader) WriteFileReplacing(filename, part string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".headingdocx-*")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := r.WriteReplacing(tmp, part, data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting output mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming output: %w", err)
	}
	return nil
}
