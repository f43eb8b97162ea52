package transliteration

import (
	"testing"

	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput(t *testing.T, romaji string, cfg Config) input {
	t.Helper()
	tables, err := glyphs.Default()
	require.NoError(t, err)
	return newInput(romaji, cfg, tables)
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name       string
		state      state
		romaji     string
		cfg        Config
		wantOut    string
		wantRomaji string
		wantState  state
	}{
		{"init routes to raw toggle", initState, "ka", Config{}, "", "ka", state{kind: stateRawToggle}},
		{"raw toggle without feature", state{kind: stateRawToggle}, "#ka", Config{}, "", "#ka", state{kind: stateKanaToggle}},
		{
			"raw toggle opens raw text",
			state{kind: stateRawToggle}, "#ka",
			Config{SpecialChars: chars(RawTextToggle, '#')},
			"", "ka", state{kind: stateRawText, toggle: '#'},
		},
		{"raw text emits verbatim", state{kind: stateRawText, toggle: '#'}, "ka#", Config{}, "k", "a#", state{kind: stateRawText, toggle: '#'}},
		{"raw text closes", state{kind: stateRawText, toggle: '#'}, "#ka", Config{}, "", "ka", state{kind: stateRawToggle}},
		{"raw text last char", state{kind: stateRawText, toggle: '#'}, "a", Config{}, "a", "", initState},
		{
			"kana toggle flips",
			state{kind: stateKanaToggle}, "@ka",
			Config{SpecialChars: chars(KanaToggle, '@')},
			"", "ka", initState,
		},
		{"size router long", state{kind: stateSizeRouter}, "abcd", Config{}, "", "abcd", state{kind: stateLong}},
		{"size router medium", state{kind: stateSizeRouter}, "日本語", Config{}, "", "日本語", state{kind: stateMedium}},
		{"size router two chars", state{kind: stateSizeRouter}, "ab", Config{}, "", "ab", state{kind: stateSokuon}},
		{"size router one char", state{kind: stateSizeRouter}, "a", Config{}, "", "a", state{kind: stateTiny}},
		{"long hit keeps last char", state{kind: stateLong}, "tsyuu", extendedCfg, "ツュ", "uu", state{kind: stateChouonpu}},
		{"long miss", state{kind: stateLong}, "kyoto", Config{}, "", "kyoto", state{kind: stateMedium}},
		{"long miss probes punctuation", state{kind: stateLong}, "kyoto", punctCfg, "", "kyoto", state{kind: statePunctuation, size: 4, fallback: stateMedium}},
		{"medium hit", state{kind: stateMedium}, "kyoto", Config{}, "きょ", "oto", state{kind: stateChouonpu}},
		{"medium miss", state{kind: stateMedium}, "matte", Config{}, "", "matte", state{kind: stateSokuon}},
		{"sokuon hit", state{kind: stateSokuon}, "tte", Config{}, "っ", "te", initState},
		{"sokuon miss", state{kind: stateSokuon}, "te", Config{}, "", "te", state{kind: stateSmallVowel}},
		{
			"small vowel hit",
			state{kind: stateSmallVowel}, "_i",
			Config{StartWithKatakana: true, SpecialChars: chars(SmallVowel, '_')},
			"ィ", "i", state{kind: stateChouonpu},
		},
		{"small vowel without trigger", state{kind: stateSmallVowel}, "_i", katakanaCfg, "", "_i", state{kind: stateShort}},
		{"short hit", state{kind: stateShort}, "te", Config{}, "て", "e", state{kind: stateChouonpu}},
		{"short miss", state{kind: stateShort}, "xy", Config{}, "", "xy", state{kind: stateTiny}},
		{"tiny hit consumes nothing", state{kind: stateTiny}, "n", Config{}, "ん", "n", state{kind: stateChouonpu}},
		{"tiny miss", state{kind: stateTiny}, "x", Config{}, "", "x", state{kind: stateVirtualStop}},
		{"chouonpu hit loops", state{kind: stateChouonpu}, "oomen", katakanaCfg, "ー", "omen", state{kind: stateChouonpu}},
		{"chouonpu miss consumes one", state{kind: stateChouonpu}, "omen", katakanaCfg, "", "men", initState},
		{"chouonpu hiragana", state{kind: stateChouonpu}, "oomen", Config{}, "", "omen", initState},
		{
			"chouonpu reset",
			state{kind: stateChouonpu}, "u^u",
			Config{StartWithKatakana: true, SpecialChars: chars(ResetProlongation, '^')},
			"", "u", initState,
		},
		{"punctuation mark", state{kind: statePunctuation, size: 3, fallback: stateSokuon}, "...a", punctCfg, "…", "a", initState},
		{"punctuation miss", state{kind: statePunctuation, size: 2, fallback: stateTiny}, "ab", punctCfg, "", "ab", state{kind: stateTiny}},
		{"punctuation disabled", state{kind: statePunctuation, size: 1, fallback: stateVirtualStop}, ".", Config{}, "", ".", state{kind: stateVirtualStop}},
		{
			"virtual stop hit",
			state{kind: stateVirtualStop}, "%u",
			Config{StartWithKatakana: true, SpecialChars: chars(VirtualStop, '%')},
			"ッ", "u", initState,
		},
		{"virtual stop miss", state{kind: stateVirtualStop}, "%u", Config{}, "", "%u", state{kind: stateFallback}},
		{"fallback multibyte", state{kind: stateFallback}, "日本", Config{}, "日", "本", initState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, in, next, ok := tt.state.next(testInput(t, tt.romaji, tt.cfg))
			require.True(t, ok)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantRomaji, in.romaji)
			assert.Equal(t, tt.wantState, next)
		})
	}
}

func TestInitTerminatesOnEmpty(t *testing.T) {
	_, _, _, ok := initState.next(testInput(t, "", Config{}))
	assert.False(t, ok)
}

func TestKanaToggleSwitchesScript(t *testing.T) {
	cfg := Config{SpecialChars: chars(KanaToggle, '@')}
	in := testInput(t, "@ka", cfg)
	require.Equal(t, hiragana, in.kanas.current().script)

	_, in, _, _ = state{kind: stateKanaToggle}.next(in)
	assert.Equal(t, katakana, in.kanas.current().script)
}

func TestQuoteToggles(t *testing.T) {
	in := testInput(t, `''""`, punctCfg)
	var got []string
	s := state{kind: statePunctuation, size: 1, fallback: stateFallback}
	for in.romaji != "" {
		var out string
		out, in, _, _ = s.next(in)
		got = append(got, out)
	}
	assert.Equal(t, []string{"「", "」", "『", "』"}, got)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "Chouonpu", stateChouonpu.String())
	assert.Equal(t, "Fallback", stateFallback.String())
}
