// Package glyphs holds the syllable tables the transliterator consults.
// Tables are decoded once from YAML and never mutated afterwards; every
// lookup in this package is safe for concurrent use.
package glyphs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrMalformedTable is returned when table data cannot be decoded or
// breaks one of the table invariants.
var ErrMalformedTable = errors.New("malformed table")

const (
	hiraganaFile    = "hiragana.yaml"
	katakanaFile    = "katakana.yaml"
	chouonpuFile    = "chouonpu.yaml"
	punctuationFile = "punctuation.yaml"
)

// MatchSet pairs a set of two-character romaji clusters with the glyph
// emitted when one of them is matched.
type MatchSet struct {
	Graph   string
	matches map[string]struct{}
}

func (m MatchSet) Contains(key string) bool {
	_, ok := m.matches[key]
	return ok
}

func (m MatchSet) Len() int { return len(m.matches) }

// Syllabary is one kana system.
type Syllabary struct {
	Syllables   map[string]string
	Extended    map[string]string
	SmallVowels map[string]string
	Sokuon      MatchSet
}

// Punctuation maps ASCII marks to their full-width forms. Quotes are kept
// apart because opening and closing forms share one source character.
type Punctuation struct {
	Marks        map[string]string
	SingleQuotes [2]string
	DoubleQuotes [2]string
}

type Tables struct {
	Hiragana    Syllabary
	Katakana    Syllabary
	Chouonpu    MatchSet
	Punctuation Punctuation
}

type rawMatchSet struct {
	Graph   string   `yaml:"graph"`
	Matches []string `yaml:"matches"`
}

type rawSyllabary struct {
	Syllabary   map[string]string `yaml:"syllabary"`
	Extended    map[string]string `yaml:"extended"`
	SmallVowels map[string]string `yaml:"small_vowels"`
	Sokuon      rawMatchSet       `yaml:"sokuon"`
}

type rawPunctuation struct {
	Marks  map[string]string `yaml:"marks"`
	Quotes struct {
		Single []string `yaml:"single"`
		Double []string `yaml:"double"`
	} `yaml:"quotes"`
}

var loadDefault = sync.OnceValues(func() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Default returns the compiled-in tables.
func Default() (*Tables, error) {
	return loadDefault()
}

// MustDefault is like Default but panics if the embedded tables fail to load.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("glyphs: embedded tables: %v", err))
	}
	return t
}

// Load reads hiragana.yaml, katakana.yaml, chouonpu.yaml and
// punctuation.yaml from fsys.
func Load(fsys fs.FS) (*Tables, error) {
	var hira, kata rawSyllabary
	if err := decode(fsys, hiraganaFile, &hira); err != nil {
		return nil, err
	}
	if err := decode(fsys, katakanaFile, &kata); err != nil {
		return nil, err
	}

	var ch rawMatchSet
	if err := decode(fsys, chouonpuFile, &ch); err != nil {
		return nil, err
	}

	var punct rawPunctuation
	if err := decode(fsys, punctuationFile, &punct); err != nil {
		return nil, err
	}

	t := &Tables{}
	var err error
	if t.Hiragana, err = buildSyllabary(hiraganaFile, hira); err != nil {
		return nil, err
	}
	if t.Katakana, err = buildSyllabary(katakanaFile, kata); err != nil {
		return nil, err
	}
	if t.Chouonpu, err = buildMatchSet(chouonpuFile, ch); err != nil {
		return nil, err
	}
	if t.Punctuation, err = buildPunctuation(punct); err != nil {
		return nil, err
	}
	return t, nil
}

func decode(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrMalformedTable, name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrMalformedTable, name, err)
	}
	return nil
}

func buildSyllabary(file string, raw rawSyllabary) (Syllabary, error) {
	if len(raw.Syllabary) == 0 {
		return Syllabary{}, fmt.Errorf("%w: %s: empty syllabary", ErrMalformedTable, file)
	}
	if err := checkSyllables(file, "syllabary", raw.Syllabary); err != nil {
		return Syllabary{}, err
	}
	if err := checkSyllables(file, "extended", raw.Extended); err != nil {
		return Syllabary{}, err
	}
	for k, v := range raw.SmallVowels {
		if utf8.RuneCountInString(k) != 1 || v == "" {
			return Syllabary{}, fmt.Errorf("%w: %s: small vowel %q", ErrMalformedTable, file, k)
		}
	}
	sokuon, err := buildMatchSet(file, raw.Sokuon)
	if err != nil {
		return Syllabary{}, err
	}

	return Syllabary{
		Syllables:   raw.Syllabary,
		Extended:    raw.Extended,
		SmallVowels: raw.SmallVowels,
		Sokuon:      sokuon,
	}, nil
}

func checkSyllables(file, section string, m map[string]string) error {
	for k, v := range m {
		n := utf8.RuneCountInString(k)
		if n < 1 || n > 4 {
			return fmt.Errorf("%w: %s: %s key %q must be 1-4 characters", ErrMalformedTable, file, section, k)
		}
		if !isLower(k) {
			return fmt.Errorf("%w: %s: %s key %q must be lowercase", ErrMalformedTable, file, section, k)
		}
		if v == "" {
			return fmt.Errorf("%w: %s: %s key %q has no glyph", ErrMalformedTable, file, section, k)
		}
	}
	return nil
}

func isLower(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return false
		}
	}
	return true
}

func buildMatchSet(file string, raw rawMatchSet) (MatchSet, error) {
	if raw.Graph == "" {
		return MatchSet{}, fmt.Errorf("%w: %s: match set has no graph", ErrMalformedTable, file)
	}
	set := make(map[string]struct{}, len(raw.Matches))
	for _, m := range raw.Matches {
		if utf8.RuneCountInString(m) != 2 {
			return MatchSet{}, fmt.Errorf("%w: %s: match %q must be 2 characters", ErrMalformedTable, file, m)
		}
		set[m] = struct{}{}
	}
	return MatchSet{Graph: raw.Graph, matches: set}, nil
}

func buildPunctuation(raw rawPunctuation) (Punctuation, error) {
	if len(raw.Quotes.Single) != 2 || len(raw.Quotes.Double) != 2 {
		return Punctuation{}, fmt.Errorf("%w: %s: quote pairs need an opening and a closing glyph", ErrMalformedTable, punctuationFile)
	}
	for k, v := range raw.Marks {
		if k == "" || v == "" {
			return Punctuation{}, fmt.Errorf("%w: %s: mark %q", ErrMalformedTable, punctuationFile, k)
		}
	}
	return Punctuation{
		Marks:        raw.Marks,
		SingleQuotes: [2]string{raw.Quotes.Single[0], raw.Quotes.Single[1]},
		DoubleQuotes: [2]string{raw.Quotes.Double[0], raw.Quotes.Double[1]},
	}, nil
}
