package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type DOCXParser struct{}

func NewDOCXParser() *DOCXParser {
	return &DOCXParser{}
}

// Parse spools the stream to a temp file; the docx library only reads
// from paths.
func (p *DOCXParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	tmp, err := os.CreateTemp("", "corpus-*.docx")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	doc, err := docx.ReadDocxFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := strings.TrimSpace(doc.Editable().GetContent())
	if content == "" {
		return nil, fmt.Errorf("no text content found in DOCX")
	}
	return &Document{
		Content:  content,
		Metadata: map[string]string{"fileType": "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	}, nil
}

func (p *DOCXParser) Extensions() []string {
	return []string{".docx"}
}
