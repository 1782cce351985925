// Package data embeds the dictionary resources for the Kazakh stemmer.
package data

import _ "embed"

//go:embed lemmas.txt
var Lemmas []byte

//go:embed stopwords.txt
var Stopwords []byte

//go:embed exclusions.txt
var Exclusions []byte

//go:embed suffixes.json
var Suffixes []byte

//go:embed phonology.json
var Phonology []byte

//go:embed golden/stemmer.json
var Golden []byte
