package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}

	var b strings.Builder
	collectStrings(root, &b)

	content := strings.TrimSpace(b.String())
	if content == "" {
		return nil, fmt.Errorf("no text content found in JSON")
	}
	return &Document{
		Content:  content,
		Metadata: map[string]string{"fileType": "application/json"},
	}, nil
}

func (p *JSONParser) Extensions() []string {
	return []string{".json"}
}

// collectStrings gathers every string value in the decoded tree.
func collectStrings(node any, b *strings.Builder) {
	switch v := node.(type) {
	case string:
		b.WriteString(v)
		b.WriteString(" ")
	case map[string]any:
		for _, value := range v {
			collectStrings(value, b)
		}
	case []any:
		for _, item := range v {
			collectStrings(item, b)
		}
	}
}
