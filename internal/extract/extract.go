// Package extract turns an uploaded document into ordered pages of plain text.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/olamideoke/resumerag/internal/domain"
)

// Pages reads the file at path and returns its text split into pages, each
// tagged with the source filename. Page granularity is only meaningful for
// PDFs; other formats come back as a single page. Unsupported or unreadable
// files return a *domain.ExtractionError.
func Pages(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ExtractionError{Path: path, Err: err}
	}

	name := filepath.Base(path)
	var texts []string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		texts, err = pdfPages(data)
	case ".docx":
		var text string
		text, err = docxText(data)
		texts = []string{text}
	case ".txt":
		texts = []string{string(data)}
	default:
		err = fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, &domain.ExtractionError{Path: path, Err: err}
	}

	pages := make([]domain.Page, 0, len(texts))
	for _, t := range texts {
		pages = append(pages, domain.Page{
			Text:       t,
			SourceFile: name,
			SourceType: domain.SourceTypeResume,
		})
	}
	return pages, nil
}

func pdfPages(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		pages = append(pages, text)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf has no readable pages")
	}
	return pages, nil
}

func docxText(data []byte) (string, error) {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}
