package morph

import (
	"strings"
	"testing"
)

// TestMaxWordBytesEnforcement verifies the 256-byte limit is enforced
// correctly, including around multibyte Cyrillic boundaries.
func TestMaxWordBytesEnforcement(t *testing.T) {
	s := testStemmer(t)

	tests := []struct {
		name     string
		input    string
		byteLen  int
		wantKind OutcomeKind
	}{
		{
			name:     "exactly 256 bytes - gets processed",
			input:    strings.Repeat("а", 128), // Cyrillic а is 2 bytes
			byteLen:  256,
			wantKind: KindUnchanged,
		},
		{
			name:     "258 bytes - rejected",
			input:    strings.Repeat("а", 129),
			byteLen:  258,
			wantKind: KindUnchanged,
		},
		{
			name:     "257 ASCII bytes - rejected",
			input:    strings.Repeat("a", 257),
			byteLen:  257,
			wantKind: KindUnchanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.input) != tt.byteLen {
				t.Fatalf("test setup error: len = %d, want %d", len(tt.input), tt.byteLen)
			}
			got := s.Resolve(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("Resolve(%d bytes).Kind = %v, want %v", tt.byteLen, got.Kind, tt.wantKind)
			}
			if got.Form != tt.input {
				t.Errorf("Resolve(%d bytes).Form altered the input", tt.byteLen)
			}
		})
	}
}

// TestOversizeSegment: over-limit input is refused before any search.
func TestOversizeSegment(t *testing.T) {
	s := testStemmer(t)

	if ds := s.Segment(strings.Repeat("а", 200)); len(ds) != 0 {
		t.Errorf("Segment(400 bytes) = %v, want none", ds)
	}
}

// TestInvalidUTF8 never panics and passes input through.
func TestInvalidUTF8(t *testing.T) {
	s := testStemmer(t)

	for _, input := range []string{"\xff\xfe", "\x00", "алма\xffлар", "\x80"} {
		got := s.Resolve(input)
		if got.Kind == KindLemma {
			t.Errorf("Resolve(%q) produced a lemma from invalid UTF-8", input)
		}
		if got.Form != input {
			t.Errorf("Resolve(%q).Form = %q, altered invalid input", input, got.Form)
		}
	}
}
