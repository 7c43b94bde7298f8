package pipeline

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeText = "text/plain"
)

// ErrUnsupportedMediaType is returned for media types the extractor cannot handle.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

var (
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

// Extract converts an uploaded document into normalized plain text.
//
// PDF and DOCX output is whitespace-collapsed: runs of spaces become one
// space, runs of blank lines become exactly one blank line. Plain text is
// passed through untouched since it is treated as already normalized.
func Extract(data []byte, mediaType string) (string, error) {
	mediaType = strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))

	switch mediaType {
	case MediaTypePDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract PDF text: %w", err)
		}
		return normalizeWhitespace(text), nil
	case MediaTypeDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract DOCX text: %w", err)
		}
		return normalizeWhitespace(text), nil
	case MediaTypeText, "":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// extractPDF joins each page's text tokens with single spaces and pages with
// a blank line.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		tokens := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if s := strings.TrimSpace(text.S); s != "" {
				tokens = append(tokens, s)
			}
		}
		if len(tokens) > 0 {
			pages = append(pages, strings.Join(tokens, " "))
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// extractDOCX walks word/document.xml inside the OOXML archive and collects
// character data, emitting newlines at paragraph and break boundaries.
func extractDOCX(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zipReader.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var builder strings.Builder
	// Only character data inside w:t runs is document text; everything else
	// is markup whitespace
	inTextRun := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.CharData:
			if inTextRun {
				builder.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p", "br":
				if builder.Len() > 0 {
					builder.WriteString("\n")
				}
			}
		}
	}

	return builder.String(), nil
}

// normalizeWhitespace collapses runs of spaces to one space and runs of blank
// lines to exactly one blank line, trimming surrounding whitespace per line.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
