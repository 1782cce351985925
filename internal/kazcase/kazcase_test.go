package kazcase

import "testing"

func TestComposeNFC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already composed", "йой", "йой"},
		{"decomposed small i kratkoye", "йой", "йой"},
		{"decomposed capital I kratkoye", "Йошкар", "Йошкар"},
		{"decomposed small yo", "кёлн", "кёлн"},
		{"decomposed capital Yo", "Ёлка", "Ёлка"},
		{"plain kazakh word untouched", "әліпби", "әліпби"},
		{"mixed composed and decomposed", "аймақ", "аймақ"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComposeNFC(tt.in); got != tt.want {
				t.Errorf("ComposeNFC(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"uppercase cyrillic", "АЛМА", "алма"},
		{"kazakh specific letters", "ӘЛІПБИ", "әліпби"},
		{"mixed case", "Қазақстан", "қазақстан"},
		{"ng and h", "ТАҢ ҺӘМ", "таң һәм"},
		{"decomposed then folded", "АЙМАҚ", "аймақ"},
		{"latin passthrough", "ABC", "abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
