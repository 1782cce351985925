package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParser struct{}

func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

func (p *PDFParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read the pdf: %w", err)
	}
	if len(data) < 4 || !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, fmt.Errorf("not a PDF file: invalid header")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return nil, fmt.Errorf("failed to extract pdf text: %w", err)
	}

	content := strings.TrimSpace(b.String())
	if content == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}
	return &Document{
		Content: content,
		Metadata: map[string]string{
			"pages":    fmt.Sprintf("%d", reader.NumPage()),
			"fileType": "application/pdf",
		},
	}, nil
}

func (p *PDFParser) Extensions() []string {
	return []string{".pdf"}
}
