package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

// FromFile extracts plain text from a reference file based on its extension.
// Failures are reported inline as bracketed markers instead of errors so one
// bad upload never sinks the whole category.
func FromFile(path string) string {
	base := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		log.Error().Str("file", base).Err(err).Msg("reference file not found")
		return fmt.Sprintf("[Error: file not found: %s]", base)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return fromText(path)
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Sprintf("[Error reading HTML file: %s]", base)
		}
		return fromHTML(data)
	case ".pdf":
		return fromPDF(path)
	case ".docx":
		return fromDOCX(path)
	case ".doc":
		return fmt.Sprintf("[DOC format (pre-2007 Word) not supported. Please convert to DOCX: %s]", base)
	default:
		log.Warn().Str("file", base).Msg("unsupported reference file type")
		return fmt.Sprintf("[Unsupported file type: %s]", filepath.Ext(path))
	}
}

// fromText reads a plain-text file as UTF-8, falling back to Latin-1 for
// legacy exports.
func fromText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("[Error reading text file: %s]", filepath.Base(path))
	}
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return fmt.Sprintf("[Error decoding text file: %s]", filepath.Base(path))
	}
	return string(decoded)
}

func fromPDF(path string) string {
	f, r, err := pdf.Open(path)
	if err != nil {
		log.Error().Str("file", filepath.Base(path)).Err(err).Msg("pdf open failed")
		return fmt.Sprintf("[Error extracting text from PDF: %s]", filepath.Base(path))
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return fmt.Sprintf("[Error extracting text from PDF: %s]", filepath.Base(path))
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return fmt.Sprintf("[Error extracting text from PDF: %s]", filepath.Base(path))
	}
	return buf.String()
}

// fromDOCX pulls paragraph text out of the OOXML main document part. A DOCX
// file is a zip archive; word/document.xml carries runs of <w:t> text inside
// <w:p> paragraphs.
func fromDOCX(path string) string {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Sprintf("[Error extracting text from DOCX: %s]", filepath.Base(path))
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		text, err := docxDocumentText(rc)
		rc.Close()
		if err != nil {
			break
		}
		return text
	}
	return fmt.Sprintf("[Error extracting text from DOCX: %s]", filepath.Base(path))
}

func docxDocumentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(b.String()), nil
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br", "tab":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}
