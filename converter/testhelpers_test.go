package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// assertNoErr fails the test immediately if err is non-nil.
func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertErr fails the test immediately if err is nil.
func assertErr(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

// assertContains fails if got does not contain want.
func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
}

// assertNotContains fails if got contains unwanted.
func assertNotContains(t *testing.T, got, unwanted string) {
	t.Helper()
	if strings.Contains(got, unwanted) {
		t.Errorf("output should not contain %q:\n%s", unwanted, got)
	}
}

// assertNotEmpty fails the test immediately if got is blank.
func assertNotEmpty(t *testing.T, got string) {
	t.Helper()
	if strings.TrimSpace(got) == "" {
		t.Fatal("expected non-empty output")
	}
}

// Namespace declarations shared by every fixture document part.
const ooxmlNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
	`xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" ` +
	`xmlns:w15="http://schemas.microsoft.com/office/word/2012/wordml"`

// wrapBody wraps body XML in a minimal word/document.xml envelope.
func wrapBody(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + ooxmlNS + `><w:body>` + body + `</w:body></w:document>`
}

// makeDocx builds an in-memory .docx whose main document part contains body.
func makeDocx(t *testing.T, body string) []byte {
	t.Helper()
	return makeDocxArchive(t, map[string]string{
		"word/document.xml": wrapBody(body),
	})
}

// makeDocxArchive builds an in-memory zip from part name to content.
func makeDocxArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		assertNoErr(t, err)
		_, err = w.Write([]byte(content))
		assertNoErr(t, err)
	}
	assertNoErr(t, zw.Close())
	return buf.Bytes()
}

// writeTempFile writes data to a temp file with the given name and returns
// its path.
func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assertNoErr(t, os.WriteFile(path, data, 0o644))
	return path
}

// testConverter returns a Converter whose log output is discarded.
func testConverter() *Converter {
	return New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// convert runs a full conversion of an in-memory document and returns the
// output text.
func convert(t *testing.T, data []byte, format Format) string {
	t.Helper()
	res, err := testConverter().ConvertBytes(context.Background(), data, format, Options{})
	assertNoErr(t, err)
	return res.Output
}

// convertOpts is convert with explicit Options.
func convertOpts(t *testing.T, data []byte, format Format, opts Options) *Result {
	t.Helper()
	res, err := testConverter().ConvertBytes(context.Background(), data, format, opts)
	assertNoErr(t, err)
	return res
}
