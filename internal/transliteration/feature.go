package transliteration

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrUnknownFeature = errors.New("unknown special character feature")
	ErrInvalidChar    = errors.New("special character must be exactly one character")
)

// Feature names a parser behavior that is triggered by a configurable
// character.
type Feature uint8

const (
	// KanaToggle switches between hiragana and katakana.
	KanaToggle Feature = iota
	// RawTextToggle starts and ends verbatim passthrough.
	RawTextToggle
	// ResetProlongation placed after a syllable stops a following vowel
	// from being merged into a prolongation mark.
	ResetProlongation
	// SmallVowel followed by a vowel emits the small katakana vowel.
	SmallVowel
	// VirtualStop emits a sokuon without a doubled consonant.
	VirtualStop
)

var featureNames = [...]string{
	KanaToggle:        "kana_toggle",
	RawTextToggle:     "raw_text_toggle",
	ResetProlongation: "reset_prolongation",
	SmallVowel:        "small_vowel",
	VirtualStop:       "virtual_stop",
}

// Features lists every feature in declaration order.
func Features() []Feature {
	return []Feature{KanaToggle, RawTextToggle, ResetProlongation, SmallVowel, VirtualStop}
}

func (f Feature) String() string {
	if int(f) < len(featureNames) {
		return featureNames[f]
	}
	return fmt.Sprintf("Feature(%d)", f)
}

func ParseFeature(name string) (Feature, error) {
	for _, f := range Features() {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

// SpecialChars maps features to their trigger characters. A feature that
// is absent is disabled.
type SpecialChars map[Feature]rune

// ParseSpecialChars builds SpecialChars from feature names to one-character
// strings. Empty values are skipped.
func ParseSpecialChars(raw map[string]string) (SpecialChars, error) {
	chars := make(SpecialChars, len(raw))
	for name, value := range raw {
		if value == "" {
			continue
		}
		f, err := ParseFeature(name)
		if err != nil {
			return nil, err
		}
		r, size := utf8.DecodeRuneInString(value)
		if r == utf8.RuneError || size != len(value) {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidChar, name, value)
		}
		chars[f] = r
	}
	return chars, nil
}
