package corpus

import (
	"context"
	"strings"
	"testing"
)

func TestRegistryRouting(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"txt", "corpus/articles.txt", false},
		{"json", "dump.json", false},
		{"pdf", "book.PDF", false},
		{"docx", "report.docx", false},
		{"unsupported", "archive.zip", true},
		{"no extension", "README", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ParserFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParserFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestTextParser(t *testing.T) {
	doc, err := NewTextParser().Parse(context.Background(), strings.NewReader("  алма сөз \n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Content != "алма сөз" {
		t.Errorf("Content = %q, want trimmed text", doc.Content)
	}
	if doc.Metadata["fileType"] != "text/plain" {
		t.Errorf("fileType = %q", doc.Metadata["fileType"])
	}
}

func TestJSONParser(t *testing.T) {
	input := `{"title":"алма","body":["сөз","кітап"],"count":3}`
	doc, err := NewJSONParser().Parse(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, word := range []string{"алма", "сөз", "кітап"} {
		if !strings.Contains(doc.Content, word) {
			t.Errorf("Content %q misses %q", doc.Content, word)
		}
	}
}

func TestJSONParserErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid", "{"},
		{"no strings", `{"a":1,"b":[2,3]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewJSONParser().Parse(context.Background(), strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPDFParserRejectsGarbage(t *testing.T) {
	_, err := NewPDFParser().Parse(context.Background(), strings.NewReader("hello"))
	if err == nil || !strings.Contains(err.Error(), "not a PDF") {
		t.Errorf("expected invalid-header error, got %v", err)
	}
}
