package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/headingdocx/model"
)

// Test helper functions

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func styled(style, text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + style + `"/></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func plain(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func createTestDOCX(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "in.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`))
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		styled("Heading1", "Intro") + plain("hello text1") +
		styled("Heading2", "Details") + plain("text2") +
		styled("Heading1", "Intro2") +
		`</w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI runs the command and returns its standard output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("output %q does not contain version", out)
	}
}

func TestHeadingsCmd(t *testing.T) {
	path := createTestDOCX(t, t.TempDir())

	out, err := runCLI(t, "headings", path, "--format", "json")
	if err != nil {
		t.Fatalf("headings failed: %v", err)
	}

	var got []model.HeadingRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := []model.HeadingRecord{{Text: "Intro", Level: 1}, {Text: "Details", Level: 2}, {Text: "Intro2", Level: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headings = %v, want %v", got, want)
	}
}

func TestHeadingsCmd_FormatFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	cfg := createTestFile(t, dir, "cfg.yaml", "headings:\n  format: markdown\n")

	out, err := runCLI(t, "--config", cfg, "headings", path)
	if err != nil {
		t.Fatalf("headings failed: %v", err)
	}
	if !strings.Contains(out, "## Details") {
		t.Errorf("expected markdown output, got:\n%s", out)
	}
}

func TestHeadingsCmd_BadFormat(t *testing.T) {
	path := createTestDOCX(t, t.TempDir())
	if _, err := runCLI(t, "headings", path, "--format", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParagraphsCmd(t *testing.T) {
	path := createTestDOCX(t, t.TempDir())

	out, err := runCLI(t, "paragraphs", path)
	if err != nil {
		t.Fatalf("paragraphs failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	if lines[0] != styled("Heading1", "Intro") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestRebuildCmd(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	outPath := filepath.Join(dir, "out.docx")

	if _, err := runCLI(t, "rebuild", path, "--out", outPath, "--title", "Intro2", "--title", "Intro"); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	out, err := runCLI(t, "headings", outPath, "--format", "json")
	if err != nil {
		t.Fatalf("headings failed: %v", err)
	}
	var got []model.HeadingRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if titles := model.Titles(got); !reflect.DeepEqual(titles, []string{"Intro2", "Intro"}) {
		t.Errorf("rebuilt titles = %v", titles)
	}
}

func TestRebuildCmd_TitlesJSON(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	outPath := filepath.Join(dir, "out.docx")

	// output of "headings --format json" is accepted as is
	headingsJSON, err := runCLI(t, "headings", path, "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "rebuild", path, "--out", outPath, "--titles-json", headingsJSON); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	again, err := runCLI(t, "headings", outPath, "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if again != headingsJSON {
		t.Errorf("rebuild with the extracted order changed headings:\n%s\nwant:\n%s", again, headingsJSON)
	}
}

func TestRebuildCmd_NoTitles(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	if _, err := runCLI(t, "rebuild", path, "--out", filepath.Join(dir, "out.docx")); err == nil {
		t.Error("expected error without titles")
	}
}

func TestParseTitles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"strings", `["B", "A"]`, []string{"B", "A"}, false},
		{"records", `[{"text": "Intro", "level": 1}, {"text": "Details"}]`, []string{"Intro", "Details"}, false},
		{"mixed", `["A", {"text": "B"}]`, []string{"A", "B"}, false},
		{"empty", `[]`, []string{}, false},
		{"not array", `{"text": "A"}`, nil, true},
		{"bad item", `[1]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTitles([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTitles() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseTitles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReplaceCmd(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	outPath := filepath.Join(dir, "out.docx")

	if _, err := runCLI(t, "replace", path, "--pattern", "hello", "--repl", "hi", "--out", outPath); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	out, err := runCLI(t, "paragraphs", outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, plain("hi text1")) {
		t.Errorf("replacement missing:\n%s", out)
	}
}

func TestReplaceCmd_InvalidPattern(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	_, err := runCLI(t, "replace", path, "--pattern", "(", "--out", filepath.Join(dir, "out.docx"))
	if err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Errorf("error = %v, want invalid pattern", err)
	}
}

func TestDetectCmd(t *testing.T) {
	dir := t.TempDir()
	path := createTestDOCX(t, dir)
	text := createTestFile(t, dir, "notes.txt", "plain")

	out, err := runCLI(t, "detect", path)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !strings.Contains(out, "DOCX") || !strings.Contains(out, "word=yes") {
		t.Errorf("detect output = %q", out)
	}

	out, err = runCLI(t, "detect", text)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !strings.Contains(out, "Unknown") || !strings.Contains(out, "word=no") {
		t.Errorf("detect output = %q", out)
	}
}

func TestGlobalFlags_BadLogLevel(t *testing.T) {
	if _, err := runCLI(t, "--log-level", "loud", "version"); err == nil {
		t.Error("expected error for unknown log level")
	}
}
