package corpus

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return &Document{
		Content:  strings.TrimSpace(string(data)),
		Metadata: map[string]string{"fileType": "text/plain"},
	}, nil
}

func (p *TextParser) Extensions() []string {
	return []string{".txt"}
}
