package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a single yes/no question.
type ConfirmModel struct {
	question string
	detail   string
	help     help.Model
	keys     keyMap
	answer   bool
}

// NewConfirmModel creates the dialog. detail is shown under the question when not empty.
func NewConfirmModel(question, detail string) *ConfirmModel {
	return &ConfirmModel{question: question, detail: detail, help: help.New(), keys: newKeyMap()}
}

func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.yes):
		m.answer = true
		return m, tea.Quit
	case key.Matches(km, m.keys.no), key.Matches(km, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *ConfirmModel) View() string {
	body := styles.title.Render(m.question)
	if m.detail != "" {
		body = fmt.Sprintf("%s\n%s", body, styles.help.Render(m.detail))
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return styles.dialog.Render(fmt.Sprintf("%s\n\n%s", body, helpView))
}

// Answer reports whether the user said yes.
func (m *ConfirmModel) Answer() bool {
	return m.answer
}

// Confirm shows a yes/no dialog. Errors count as no.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, question, detail string) bool {
	final, err := run(ctx, NewConfirmModel(question, detail), in, out)
	if err != nil {
		return false
	}
	m, ok := final.(*ConfirmModel)
	return ok && m.Answer()
}
