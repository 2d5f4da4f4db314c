package service

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor recovers per-page text from PDF files, which is what
// keeps citations page-accurate for the bulk of course material.
type PDFExtractor struct{}

func (PDFExtractor) Extract(ctx context.Context, r io.Reader, filename string) ([]retrieval.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var pages []retrieval.Page
	empty := true
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			empty = false
		}
		pages = append(pages, retrieval.Page{Number: i, Text: text})
	}

	if len(pages) == 0 || empty {
		return nil, util.ErrEmptyDocument
	}
	return pages, nil
}
