package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextFromBytesDOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := TextFromBytes(context.Background(), buildDocx(t, doc), MimeDOCX)
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if !strings.Contains(text, "First paragraph.") || !strings.Contains(text, "Second paragraph.") {
		t.Fatalf("extracted text missing paragraphs: %q", text)
	}
	first := strings.Index(text, "First paragraph.")
	second := strings.Index(text, "Second paragraph.")
	if !strings.Contains(text[first:second], "\n") {
		t.Fatalf("no paragraph break between paragraphs: %q", text)
	}
}

func TestTextFromBytesDOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	_, _ = w.Write([]byte("<styles/>"))
	_ = zw.Close()

	_, err := TextFromBytes(context.Background(), buf.Bytes(), MimeDOCX)
	if err == nil {
		t.Fatalf("expected error for docx without document.xml")
	}
}

func TestTextFromBytesPPTXPlaceholder(t *testing.T) {
	text, err := TextFromBytes(context.Background(), []byte("irrelevant"), MimePPTX)
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if text != pptxPlaceholder {
		t.Fatalf("pptx text = %q, want placeholder", text)
	}
}

func TestTextFromBytesInvalidPDF(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte("not a pdf at all"), MimePDF)
	if err == nil {
		t.Fatalf("expected error for garbage pdf data")
	}
}

func TestTextFromBytesUnsupportedType(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte("hello"), "text/plain")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestTextFromBytesNormalizesContentType(t *testing.T) {
	text, err := TextFromBytes(context.Background(), nil, MimePPTX+"; charset=utf-8")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if text != pptxPlaceholder {
		t.Fatalf("content-type parameters not stripped")
	}
}

func TestTextFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.docx")
	doc := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>On disk content here.</w:t></w:r></w:p></w:body></w:document>`
	if err := os.WriteFile(path, buildDocx(t, doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	text, err := TextFromFile(context.Background(), path, MimeDOCX)
	if err != nil {
		t.Fatalf("TextFromFile: %v", err)
	}
	if !strings.Contains(text, "On disk content here.") {
		t.Fatalf("extracted text = %q", text)
	}
}

func TestTextFromFileMissingFile(t *testing.T) {
	_, err := TextFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), MimePDF)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
