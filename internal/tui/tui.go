// Package tui is the interactive transliteration prompt: a text input
// with a live kana preview and a scroll-back of committed lines.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/kana/internal/glyphs"
	"github.com/jusunglee/kana/internal/history"
	"github.com/jusunglee/kana/internal/transliteration"
)

const maxScrollback = 50

// Transliterator commits a line. *history.Service satisfies it.
type Transliterator interface {
	Transliterate(ctx context.Context, text string, opts history.Options, source string) (string, error)
}

type line struct {
	input  string
	output string
}

type committedMsg struct {
	line line
	err  error
}

type Model struct {
	ctx       context.Context
	svc       Transliterator
	opts      history.Options
	tables    *glyphs.Tables
	cfg       transliteration.Config
	textInput textinput.Model
	lines     []line
	err       error
	width     int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	scriptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// New builds the prompt model. opts must already be valid.
func New(ctx context.Context, svc Transliterator, opts history.Options, tables *glyphs.Tables) (Model, error) {
	cfg, err := opts.Config(tables)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "romaji"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	return Model{
		ctx:       ctx,
		svc:       svc,
		opts:      opts,
		tables:    tables,
		cfg:       cfg,
		textInput: ti,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.opts.Katakana = !m.opts.Katakana
			m.cfg.StartWithKatakana = m.opts.Katakana
			return m, nil
		case tea.KeyEnter:
			text := m.textInput.Value()
			m.textInput.Reset()
			if text == "" {
				return m, nil
			}
			return m, m.commit(text)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textInput.Width = max(msg.Width-4, 10)

	case committedMsg:
		m.err = msg.err
		if msg.err == nil && msg.line.output != "" {
			m.lines = append(m.lines, msg.line)
			if len(m.lines) > maxScrollback {
				m.lines = m.lines[len(m.lines)-maxScrollback:]
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) commit(text string) tea.Cmd {
	ctx, svc, opts := m.ctx, m.svc, m.opts
	return func() tea.Msg {
		out, err := svc.Transliterate(ctx, text, opts, history.SourceInteractive)
		return committedMsg{line: line{input: text, output: out}, err: err}
	}
}

// Preview is the transliteration of the line being typed.
func (m Model) Preview() string {
	return transliteration.Transliterate(m.textInput.Value(), m.cfg)
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("kana"))
	s.WriteString("\n")

	for _, l := range m.lines {
		s.WriteString(inputStyle.Render(l.input))
		s.WriteString("  ")
		s.WriteString(outputStyle.Render(l.output))
		s.WriteString("\n")
	}
	if len(m.lines) > 0 {
		s.WriteString("\n")
	}

	script := "hiragana"
	if m.opts.Katakana {
		script = "katakana"
	}
	s.WriteString(scriptStyle.Render(script))
	s.WriteString("\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n")

	preview := m.Preview()
	if preview == "" {
		preview = " "
	}
	s.WriteString(previewStyle.Render(preview))
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	}

	s.WriteString(subtleStyle.Render("enter commit • tab toggle kana • esc quit"))
	s.WriteString("\n")
	return s.String()
}

// Run starts the prompt on in/out and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, svc Transliterator, opts history.Options, tables *glyphs.Tables, in io.Reader, out io.Writer) error {
	m, err := New(ctx, svc, opts, tables)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running prompt: %w", err)
	}
	return nil
}
