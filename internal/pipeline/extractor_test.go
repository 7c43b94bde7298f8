package pipeline

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	f, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("failed to write document.xml: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractPlainTextPassthrough(t *testing.T) {
	input := "  raw   text \n\n\n with odd   spacing "

	text, err := Extract([]byte(input), "text/plain")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != input {
		t.Errorf("plain text must pass through unchanged:\ngot  %q\nwant %q", text, input)
	}
}

func TestExtractDOCX(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph of notes.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph follows.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := Extract(buildDOCX(t, docXML), MediaTypeDOCX)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	want := "First paragraph of notes.\nSecond paragraph follows."
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestExtractDOCXIgnoresMarkupWhitespace(t *testing.T) {
	// Heavily indented markup with non-text elements interleaved; only w:t
	// content may survive, with no blank lines between paragraphs
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
    <w:body>
        <w:p>
            <w:pPr>
                <w:pStyle w:val="Heading1"/>
            </w:pPr>
            <w:r>
                <w:rPr><w:b/></w:rPr>
                <w:t>Chapter one.</w:t>
            </w:r>
        </w:p>
        <w:p>
            <w:r>
                <w:t>Body text.</w:t>
            </w:r>
        </w:p>
    </w:body>
</w:document>`

	text, err := Extract(buildDOCX(t, docXML), MediaTypeDOCX)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	want := "Chapter one.\nBody text."
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	f, _ := writer.Create("word/other.xml")
	f.Write([]byte("<x/>"))
	writer.Close()

	_, err := Extract(buf.Bytes(), MediaTypeDOCX)
	if err == nil {
		t.Fatal("expected error for archive without word/document.xml")
	}
}

func TestExtractUnsupportedMediaType(t *testing.T) {
	_, err := Extract([]byte("data"), "image/png")
	if !errors.Is(err, ErrUnsupportedMediaType) {
		t.Errorf("got %v, want ErrUnsupportedMediaType", err)
	}
}

func TestExtractMediaTypeParameterStripped(t *testing.T) {
	text, err := Extract([]byte("hello"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "hello" {
		t.Errorf("got %q, want %q", text, "hello")
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	input := "a   b\t\tc\n\n\n\nd  \n e"
	want := "a b c\n\nd\ne"
	if got := normalizeWhitespace(input); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
