package kazcase

import "strings"

// nfcReplacer composes the Cyrillic NFD pairs seen in Kazakh corpora.
var nfcReplacer = strings.NewReplacer(
	// Lowercase
	"й", "й", // и + breve      -> й
	"ё", "ё", // е + diaeresis  -> ё
	// Uppercase
	"Й", "Й", // И + breve      -> Й
	"Ё", "Ё", // Е + diaeresis  -> Ё
)

// ComposeNFC replaces known NFD decomposed sequences for й and ё with
// their composed forms.
// This is NOT full Unicode NFC — only the Cyrillic pairs that occur in
// Kazakh text. For full NFC, preprocess with golang.org/x/text/unicode/norm
// externally.
func ComposeNFC(s string) string {
	// Fast path: scan for combining marks U+0306 and U+0308.
	hasCombiner := false
	for _, r := range s {
		if r == 0x0306 || r == 0x0308 {
			hasCombiner = true
			break
		}
	}
	if !hasCombiner {
		return s
	}

	return nfcReplacer.Replace(s)
}
