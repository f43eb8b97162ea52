package transliteration

import (
	"testing"

	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKanaLookups(t *testing.T) {
	tables, err := glyphs.Default()
	require.NoError(t, err)

	hira := kana{script: hiragana, tables: tables}
	kata := kana{script: katakana, tables: tables}
	ext := kana{script: katakana, tables: tables, extended: true}

	got, ok := hira.get("KA")
	require.True(t, ok)
	assert.Equal(t, "か", got)

	got, ok = kata.get("we")
	require.True(t, ok)
	assert.Equal(t, "ヱ", got)

	got, ok = ext.get("we")
	require.True(t, ok)
	assert.Equal(t, "ウェ", got)

	got, ok = ext.get("ka")
	require.True(t, ok, "extended falls back to the base table")
	assert.Equal(t, "カ", got)

	_, ok = hira.get("fa")
	assert.False(t, ok)

	got, ok = hira.sokuon("KK")
	require.True(t, ok)
	assert.Equal(t, "っ", got)
	assert.Equal(t, "ッ", kata.sokuonLiteral())

	_, ok = hira.chouonpu("aa")
	assert.False(t, ok)
	got, ok = kana{script: hiragana, tables: tables, showProlongation: true}.chouonpu("aa")
	require.True(t, ok)
	assert.Equal(t, "ー", got)
	got, ok = kata.chouonpu("Oo")
	require.True(t, ok)
	assert.Equal(t, "ー", got)

	_, ok = hira.smallVowel("a")
	assert.False(t, ok)
	got, ok = kata.smallVowel("E")
	require.True(t, ok)
	assert.Equal(t, "ェ", got)
}

func TestToggle(t *testing.T) {
	tg := newToggle("open", "close")
	assert.Equal(t, "open", tg.current())
	tg.flip()
	assert.Equal(t, "close", tg.current())
	tg.flip()
	assert.Equal(t, "open", tg.current())
}
