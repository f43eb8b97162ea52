package history

import (
	"encoding/json"

	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/jusunglee/kana/internal/transliteration"
)

// Options is the serializable form of a transliteration configuration.
// Special characters are keyed by feature name ("kana_toggle", ...).
type Options struct {
	Katakana                 bool              `json:"katakana"`
	ExtendedKatakana         bool              `json:"extended_katakana"`
	Punctuation              bool              `json:"punctuation"`
	ShowHiraganaProlongation bool              `json:"show_hiragana_prolongation"`
	SpecialChars             map[string]string `json:"special_chars,omitempty"`
}

// Config validates the options and converts them for the transliterator.
func (o Options) Config(tables *glyphs.Tables) (transliteration.Config, error) {
	chars, err := transliteration.ParseSpecialChars(o.SpecialChars)
	if err != nil {
		return transliteration.Config{}, err
	}
	return transliteration.Config{
		StartWithKatakana:        o.Katakana,
		ExtendedKatakana:         o.ExtendedKatakana,
		ParsePunctuation:         o.Punctuation,
		ShowHiraganaProlongation: o.ShowHiraganaProlongation,
		SpecialChars:             chars,
		Tables:                   tables,
	}, nil
}

func (o Options) encode() string {
	b, err := json.Marshal(o)
	if err != nil {
		return "{}"
	}
	return string(b)
}
