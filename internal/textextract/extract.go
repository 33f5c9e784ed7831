package textextract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
)

const (
	// MaxFileSize is the largest upload accepted for text extraction
	MaxFileSize = 10 << 20

	// DegradedPlaceholder stands in for the body of formats without a decoder
	DegradedPlaceholder = "[content-unavailable]"

	binarySampleSize = 1000
	binaryThreshold  = 0.3
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoText            = errors.New("no text could be extracted")
)

var supported = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// Result is the text of a document plus whether it is only a stand-in
type Result struct {
	Text     string
	Degraded bool
	Warning  string
}

// Extension returns the lower-cased extension of a file name, dot included
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsSupported reports whether ext is in the upload allow-list
func IsSupported(ext string) bool {
	return supported[strings.ToLower(ext)]
}

// SupportedFormats lists the allow-list in a stable order
func SupportedFormats() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}

// Extract returns the text content of a file according to its extension
func Extract(name string, data []byte) (*Result, error) {
	ext := Extension(name)

	switch ext {
	case ".txt":
		return extractPlain(data)
	case ".pdf":
		return extractPDF(data)
	case ".doc", ".docx":
		return &Result{
			Text:     DegradedPlaceholder,
			Degraded: true,
			Warning:  fmt.Sprintf("%s files are not decoded, parsed data may be incomplete", ext),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func extractPlain(data []byte) (*Result, error) {
	if IsBinary(data) {
		return nil, fmt.Errorf("%w: plain text file looks binary", ErrNoText)
	}
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return &Result{Text: normalizeNewlines(text)}, nil
}

// extractPDF reads the text layer of every page with MuPDF
func extractPDF(data []byte) (*Result, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read text of page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimRight(text, "\n"))
	}

	text := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return nil, fmt.Errorf("%w: PDF has no text layer", ErrNoText)
	}

	return &Result{Text: normalizeNewlines(text)}, nil
}

// IsBinary checks for PDF/ZIP magic numbers or a high share of control bytes
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if strings.HasPrefix(string(data[:min(len(data), 5)]), "%PDF-") {
		return true
	}
	if len(data) >= 2 && data[0] == 'P' && data[1] == 'K' {
		return true
	}

	sampleSize := min(binarySampleSize, len(data))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := data[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > binaryThreshold
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
