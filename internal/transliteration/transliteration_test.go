package transliteration

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chars(pairs ...any) SpecialChars {
	s := SpecialChars{}
	for i := 0; i < len(pairs); i += 2 {
		s[pairs[i].(Feature)] = pairs[i+1].(rune)
	}
	return s
}

var (
	katakanaCfg = Config{StartWithKatakana: true}
	extendedCfg = Config{StartWithKatakana: true, ExtendedKatakana: true}
	punctCfg    = Config{ParsePunctuation: true}
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cfg   Config
		want  string
	}{
		{"empty", "", Config{}, ""},
		{"hiragana", "watashi", Config{}, "わたし"},
		{"greeting", "ohayougozaimasu", Config{}, "おはようございます"},
		{"nasal before consonant", "nihon", Config{}, "にほん"},
		{"double n", "konnichiwa", Config{}, "こんにちわ"},
		{"long sentence", "nikugazenzensukijaarimasen", Config{}, "にくがぜんぜんすきじゃありません"},
		{"gemination", "tto", Config{}, "っと"},
		{"gemination mid word", "matte", Config{}, "まって"},
		{"gemination twice", "chottomatte", Config{}, "ちょっとまって"},
		{"uppercase keys", "HELLO", Config{}, "へLLお"},
		{"lowercase unmatched", "hello", Config{}, "へllお"},
		{"unmatched letters", "wwwwwww", Config{}, "wwwwwww"},
		{"kanji passthrough", "日本", Config{}, "日本"},
		{"digits and marks", "12jinitabemasu!", Config{}, "12じにたべます!"},
		{"spaces", "123 GO!", Config{}, "123 ご!"},
		{"quotes without punctuation", "'hana'", Config{}, "'はな'"},
		{"period without punctuation", "chottomattekudasai.", Config{}, "ちょっとまってください."},

		{"katakana", "gaburieru", katakanaCfg, "ガブリエル"},
		{"katakana game", "erudenringu", katakanaCfg, "エルデンリング"},
		{"prolongation", "oomen", katakanaCfg, "オーメン"},
		{"prolongation twice", "suupaamario", katakanaCfg, "スーパーマリオ"},
		{"prolongation after digraph", "pureisuteeshon", katakanaCfg, "プレイステーション"},
		{"katakana gemination", "sandoicchi", katakanaCfg, "サンドイッチ"},
		{"katakana double gemination", "egguheddo", katakanaCfg, "エッグヘッド"},
		{"katakana unmatched", "wwwwwww", katakanaCfg, "wwwwwww"},
		{"katakana kanji", "日本", katakanaCfg, "日本"},
		{"katakana spaces", "123 GO!", katakanaCfg, "123 ゴ!"},
		{"vowel run of three", "ooo", katakanaCfg, "オーー"},
		{"vowel run of four", "oooo", katakanaCfg, "オーーー"},

		{"extended", "supagetti", extendedCfg, "スパゲッティ"},
		{"extended four chars", "tsyuu", extendedCfg, "ツュー"},
		{"extended with spaces", "monkii dii rufi", extendedCfg, "モンキー ディー ルフィ"},
		{"extended overrides base", "wi", extendedCfg, "ウィ"},
		{"base without extended", "wi", katakanaCfg, "ヰ"},

		{"single quotes", "'hana'", punctCfg, "「はな」"},
		{"double quotes", `"onamae"`, punctCfg, "『おなまえ』"},
		{"independent quote toggles", `'"'"`, punctCfg, "「『」』"},
		{"period", "chottomattekudasai.", punctCfg, "ちょっとまってください。"},
		{"ellipsis", "e...", punctCfg, "え…"},
		{"brackets", "(sushi)", punctCfg, "（すし）"},
		{"question", "nani?", punctCfg, "なに？"},

		{"hiragana prolongation off", "oomen", Config{}, "おおめん"},
		{"hiragana prolongation on", "oomen", Config{ShowHiraganaProlongation: true}, "おーめん"},

		{
			"kana toggle",
			"watashiha@gaburieru@desu",
			Config{SpecialChars: chars(KanaToggle, '@')},
			"わたしはガブリエルです",
		},
		{
			"raw text toggle",
			"watashiha#Gabriel#desu",
			Config{SpecialChars: chars(RawTextToggle, '#')},
			"わたしはGabrielです",
		},
		{
			"raw text only",
			"#hello#",
			Config{SpecialChars: chars(RawTextToggle, '#')},
			"hello",
		},
		{
			"raw text unterminated",
			"#rawtext",
			Config{SpecialChars: chars(RawTextToggle, '#')},
			"rawtext",
		},
		{
			"raw text keeps kana toggle",
			"nihon@nihon@#Japan#nihon#@nihon@#",
			Config{SpecialChars: chars(KanaToggle, '@', RawTextToggle, '#')},
			"にほんニホンJapanにほん@nihon@",
		},
		{
			"reset prolongation",
			"Pikachu^u",
			Config{StartWithKatakana: true, SpecialChars: chars(ResetProlongation, '^')},
			"ピカチュウ",
		},
		{
			"small vowel",
			"Serebi_i",
			Config{StartWithKatakana: true, SpecialChars: chars(SmallVowel, '_')},
			"セレビィ",
		},
		{
			"small vowel then prolongation",
			"Me_eekuru",
			Config{StartWithKatakana: true, SpecialChars: chars(SmallVowel, '_')},
			"メェークル",
		},
		{
			"virtual stop",
			"U%u",
			Config{StartWithKatakana: true, SpecialChars: chars(VirtualStop, '%')},
			"ウッウ",
		},
		{
			"virtual stop in hiragana",
			"a%a",
			Config{SpecialChars: chars(VirtualStop, '%')},
			"あっあ",
		},
		{
			"small vowel ignored in hiragana",
			"a_i",
			Config{SpecialChars: chars(SmallVowel, '_')},
			"あ_い",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transliterate(tt.input, tt.cfg), "input %q", tt.input)
		})
	}
}

func TestTransliterateEmptyForAnyConfig(t *testing.T) {
	cfgs := []Config{
		{},
		katakanaCfg,
		extendedCfg,
		punctCfg,
		{SpecialChars: chars(KanaToggle, '@', RawTextToggle, '#', VirtualStop, '%')},
	}
	for _, cfg := range cfgs {
		assert.Empty(t, Transliterate("", cfg))
	}
}

func TestTransliterateUntranslatable(t *testing.T) {
	inputs := []string{"12345", "!?.,;", "日本語", " \t ", "xxx", "42 + 7 = 49"}
	for _, in := range inputs {
		assert.Equal(t, in, Transliterate(in, Config{}), "hiragana %q", in)
		assert.Equal(t, in, Transliterate(in, katakanaCfg), "katakana %q", in)
	}
}

func hiraganaToKatakana(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'ぁ' && r <= 'ゖ' {
			out[i] = r + 0x60
		}
	}
	return string(out)
}

func TestTransliterateKanaSymmetry(t *testing.T) {
	words := []string{
		"sakura", "konnichiwa", "tokyo", "kyoto", "sushi", "nihon",
		"shinkansen", "chottomatte", "ramen", "gyoza", "wasabi", "djo",
	}
	for _, w := range words {
		hira := Transliterate(w, Config{})
		kata := Transliterate(w, katakanaCfg)
		assert.Equal(t, hiraganaToKatakana(hira), kata, "word %q", w)
	}
}

func TestTransliterateToggleDoesNotRewriteOutput(t *testing.T) {
	cfg := Config{SpecialChars: chars(KanaToggle, '@')}
	assert.Equal(t, "さくら", Transliterate("sakura@", cfg))
	assert.Equal(t, "さくらサクラさくら", Transliterate("sakura@sakura@sakura", cfg))
}

func TestTransliterateUsesDefaultTables(t *testing.T) {
	cfg := Config{}
	require.Nil(t, cfg.Tables)
	assert.Equal(t, "かな", Transliterate("kana", cfg))
}

func FuzzTransliterate(f *testing.F) {
	seeds := []string{"", "kana", "matte", "oooo", "#a#b", "@ka@", "'\"'", "日本", "n", "tsyuu", "_a%^"}
	for _, s := range seeds {
		f.Add(s)
	}
	cfg := Config{
		StartWithKatakana: true,
		ExtendedKatakana:  true,
		ParsePunctuation:  true,
		SpecialChars: chars(
			KanaToggle, '@',
			RawTextToggle, '#',
			ResetProlongation, '^',
			SmallVowel, '_',
			VirtualStop, '%',
		),
	}
	f.Fuzz(func(t *testing.T, in string) {
		out := Transliterate(in, cfg)
		if utf8.ValidString(in) && !utf8.ValidString(out) {
			t.Errorf("Transliterate(%q) produced invalid UTF-8 %q", in, out)
		}
	})
}
