package transliteration

import (
	"strings"

	"github.com/jusunglee/kana/internal/glyphs"
)

type script uint8

const (
	hiragana script = iota
	katakana
)

func (s script) String() string {
	if s == katakana {
		return "katakana"
	}
	return "hiragana"
}

// kana answers table queries for one script. Keys are folded to lowercase
// before every lookup.
type kana struct {
	script   script
	tables   *glyphs.Tables
	extended bool
	// showProlongation enables chōonpu for hiragana. Katakana always
	// prolongs.
	showProlongation bool
}

func (k kana) syllabary() *glyphs.Syllabary {
	if k.script == katakana {
		return &k.tables.Katakana
	}
	return &k.tables.Hiragana
}

func (k kana) get(key string) (string, bool) {
	key = strings.ToLower(key)
	syl := k.syllabary()

	if k.script == katakana && k.extended {
		if glyph, ok := syl.Extended[key]; ok {
			return glyph, true
		}
	}
	glyph, ok := syl.Syllables[key]
	return glyph, ok
}

func (k kana) sokuon(key string) (string, bool) {
	syl := k.syllabary()
	if !syl.Sokuon.Contains(strings.ToLower(key)) {
		return "", false
	}
	return syl.Sokuon.Graph, true
}

func (k kana) sokuonLiteral() string {
	return k.syllabary().Sokuon.Graph
}

func (k kana) chouonpu(key string) (string, bool) {
	if k.script == hiragana && !k.showProlongation {
		return "", false
	}
	if !k.tables.Chouonpu.Contains(strings.ToLower(key)) {
		return "", false
	}
	return k.tables.Chouonpu.Graph, true
}

func (k kana) smallVowel(key string) (string, bool) {
	if k.script != katakana {
		return "", false
	}
	glyph, ok := k.tables.Katakana.SmallVowels[strings.ToLower(key)]
	return glyph, ok
}
