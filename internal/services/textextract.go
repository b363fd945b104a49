package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextExtractor turns an uploaded resume file into plain text, picking the
// extraction strategy by file extension. Unknown extensions are read as
// UTF-8 text.
type TextExtractor interface {
	ExtractFile(filePath string) (string, error)
}

type textExtractor struct {
	pdfParser  PDFParserService
	docxParser DocxParserService
}

func NewTextExtractor(pdfParser PDFParserService, docxParser DocxParserService) TextExtractor {
	return &textExtractor{
		pdfParser:  pdfParser,
		docxParser: docxParser,
	}
}

// ExtractFile implements TextExtractor.
func (t *textExtractor) ExtractFile(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text, err := t.pdfParser.ExtractText(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to extract PDF text: %w", err)
		}
		return CleanText(text), nil
	case ".docx":
		text, err := t.docxParser.ExtractText(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to extract DOCX text: %w", err)
		}
		return text, nil
	default:
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		text := CleanText(string(data))
		if text == "" {
			return "", fmt.Errorf("no text content found in file")
		}
		return text, nil
	}
}
