package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jusunglee/kana/internal/history"
	"github.com/jusunglee/kana/internal/logger"
	"github.com/jusunglee/kana/internal/transliteration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, opts history.Options) Model {
	t.Helper()
	m, err := New(context.Background(), history.NewService(nil, nil, logger.Discard()), opts, nil)
	require.NoError(t, err)
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestPreview(t *testing.T) {
	m := typeText(newModel(t, history.Options{}), "sakura")
	assert.Equal(t, "さくら", m.Preview())
	assert.Contains(t, m.View(), "さくら")
	assert.Contains(t, m.View(), "hiragana")
}

func TestTabTogglesKana(t *testing.T) {
	m := typeText(newModel(t, history.Options{}), "sakura")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "サクラ", m.Preview())
	assert.Contains(t, m.View(), "katakana")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "さくら", m.Preview())
}

func TestEnterCommits(t *testing.T) {
	m := typeText(newModel(t, history.Options{Katakana: true}), "ramen")
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Empty(t, m.Preview())

	msg := cmd()
	m, _ = send(m, msg)
	require.Len(t, m.lines, 1)
	assert.Equal(t, line{input: "ramen", output: "ラメン"}, m.lines[0])
	assert.Contains(t, m.View(), "ラメン")
}

func TestEnterOnEmptyLine(t *testing.T) {
	m := newModel(t, history.Options{})
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestScrollbackIsBounded(t *testing.T) {
	m := newModel(t, history.Options{})
	for i := 0; i < maxScrollback+5; i++ {
		m, _ = send(m, committedMsg{line: line{input: "a", output: "あ"}})
	}
	assert.Len(t, m.lines, maxScrollback)
}

func TestCommitErrorIsShown(t *testing.T) {
	m := newModel(t, history.Options{})
	m, _ = send(m, committedMsg{err: errors.New("store offline")})
	assert.Empty(t, m.lines)
	assert.Contains(t, m.View(), "store offline")
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := send(newModel(t, history.Options{}), tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(context.Background(), nil, history.Options{
		SpecialChars: map[string]string{"kana_toggle": "ab"},
	}, nil)
	assert.ErrorIs(t, err, transliteration.ErrInvalidChar)
}
