package transliteration

import (
	"unicode/utf8"

	"github.com/jusunglee/kana/internal/glyphs"
)

// input is the parser cursor. It is passed by value between transitions
// and romaji is only ever re-sliced. The punctuation state is shared by
// the copies made during a single call.
type input struct {
	romaji       string
	specialChars SpecialChars
	kanas        toggle[kana]
	punctuation  *punctuation
	marks        map[string]string
}

// punctuation tracks whether the next quote of each kind opens or closes.
type punctuation struct {
	singleQuotes toggle[string]
	doubleQuotes toggle[string]
}

func newInput(romaji string, cfg Config, tables *glyphs.Tables) input {
	in := input{
		romaji:       romaji,
		specialChars: cfg.SpecialChars,
		kanas: newToggle(
			kana{script: hiragana, tables: tables, showProlongation: cfg.ShowHiraganaProlongation},
			kana{script: katakana, tables: tables, extended: cfg.ExtendedKatakana},
		),
	}
	if cfg.StartWithKatakana {
		in.kanas.flip()
	}
	if cfg.ParsePunctuation {
		p := tables.Punctuation
		in.punctuation = &punctuation{
			singleQuotes: newToggle(p.SingleQuotes[0], p.SingleQuotes[1]),
			doubleQuotes: newToggle(p.DoubleQuotes[0], p.DoubleQuotes[1]),
		}
		in.marks = p.Marks
	}
	return in
}

func (in input) special(f Feature) (rune, bool) {
	r, ok := in.specialChars[f]
	return r, ok
}

func startsWith(s string, r rune) bool {
	if s == "" {
		return false
	}
	c, _ := utf8.DecodeRuneInString(s)
	return c == r
}
