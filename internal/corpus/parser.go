// Package corpus extracts plain text from the file formats Kazakh
// corpora arrive in (.txt, .json, .pdf, .docx), behind a single
// extension-keyed registry.
package corpus

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser extracts text from one document format.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) (*Document, error)
	Extensions() []string
}

// Document is the extracted text plus format metadata.
type Document struct {
	Content  string
	Metadata map[string]string
}

// Registry routes files to parsers by extension.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns a registry with every built-in parser installed.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	r.Register(NewTextParser())
	r.Register(NewJSONParser())
	r.Register(NewPDFParser())
	r.Register(NewDOCXParser())
	return r
}

// Register installs a parser for its declared extensions.
func (r *Registry) Register(p Parser) {
	for _, ext := range p.Extensions() {
		r.parsers[strings.ToLower(ext)] = p
	}
}

// ParserFor returns the parser for a path's extension.
func (r *Registry) ParserFor(path string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if p, ok := r.parsers[ext]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unsupported file type: %s", path)
}

// ParseFile extracts text from reader using the parser chosen by path.
func (r *Registry) ParseFile(ctx context.Context, path string, reader io.Reader) (*Document, error) {
	p, err := r.ParserFor(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, reader)
}

// Extensions lists every registered extension.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		out = append(out, ext)
	}
	return out
}
