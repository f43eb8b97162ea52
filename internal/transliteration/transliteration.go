// Package transliteration converts romaji into hiragana or katakana.
//
// Input is consumed greedily through 4, 3, 2 and 1 character windows; the
// first table hit wins and anything that matches nothing is copied to the
// output unchanged:
//
//	Transliterate("ohayougozaimasu", Config{})                   // おはようございます
//	Transliterate("erudenringu", Config{StartWithKatakana: true}) // エルデンリング
//
// Special characters configured through SpecialChars toggle between the
// two kanas, pass raw text through, reset prolongations and insert small
// vowels or virtual glottal stops.
package transliteration

import (
	"strings"

	"github.com/jusunglee/kana/internal/glyphs"
)

type Config struct {
	StartWithKatakana bool
	ExtendedKatakana  bool
	ParsePunctuation  bool
	// ShowHiraganaProlongation emits ー for doubled vowels in hiragana too.
	ShowHiraganaProlongation bool
	SpecialChars             SpecialChars
	// Tables overrides the embedded syllable tables when set.
	Tables *glyphs.Tables
}

// Transliterate converts romaji to kana. It never fails: characters that
// match no table are passed through.
func Transliterate(romaji string, cfg Config) string {
	tables := cfg.Tables
	if tables == nil {
		tables = glyphs.MustDefault()
	}

	in := newInput(romaji, cfg, tables)
	s := initState

	var b strings.Builder
	b.Grow(len(romaji) * 3)

	for {
		out, nextIn, nextState, ok := s.next(in)
		if !ok {
			break
		}
		b.WriteString(out)
		in, s = nextIn, nextState
	}

	return b.String()
}
