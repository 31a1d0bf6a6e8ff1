package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytfolder/internal/matcher"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// ChooserModel is a modal list of candidates for one low-confidence song.
type ChooserModel struct {
	req    matcher.ChoiceRequest
	list   list.Model
	help   help.Model
	keys   keyMap
	choice int
	quit   bool
}

// NewChooserModel creates the dialog for req.
func NewChooserModel(req matcher.ChoiceRequest) *ChooserModel {
	l := list.New(newCandidateItems(req), list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	l.Title = "Select video"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return &ChooserModel{req: req, list: l, help: help.New(), keys: newKeyMap()}
}

func (m *ChooserModel) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *ChooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.skip):
			return m, tea.Quit
		case key.Matches(msg, m.keys.enter):
			if m.list.SelectedItem() != nil {
				m.choice = m.list.Index() + 1
			}
			return m, tea.Quit
		}

		if n, ok := digit(msg); ok && n <= len(m.req.Candidates) {
			m.choice = n
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the question, the candidate list and the key help.
func (m *ChooserModel) View() string {
	header := styles.title.Render(fmt.Sprintf("Best match score (%d) is low for '%s'", m.req.BestScore, m.req.Display))
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return styles.dialog.Render(fmt.Sprintf("%s\n%s\n\n%s", header, m.list.View(), helpView))
}

// Choice returns the selected 1-based index, or false when the song was skipped.
func (m *ChooserModel) Choice() (int, bool) {
	return m.choice, m.choice > 0
}

// Quit reports whether the user asked to quit rather than skip.
func (m *ChooserModel) Quit() bool {
	return m.quit
}

// digit parses a single 1-9 key press.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// DialogChooser implements matcher.Chooser with a modal terminal dialog per request.
type DialogChooser struct {
	in  io.Reader
	out io.Writer
	// OnQuit runs when the user quits the dialog instead of skipping, typically cancelling the run.
	OnQuit func()
}

// NewDialogChooser creates a chooser reading keys from in and drawing to out. Nil selects the terminal.
func NewDialogChooser(in io.Reader, out io.Writer) *DialogChooser {
	return &DialogChooser{in: in, out: out}
}

func (d *DialogChooser) Choose(ctx context.Context, req matcher.ChoiceRequest) (int, bool) {
	final, err := run(ctx, NewChooserModel(req), d.in, d.out)
	if err != nil {
		return 0, false
	}

	m, ok := final.(*ChooserModel)
	if !ok {
		return 0, false
	}
	if m.Quit() && d.OnQuit != nil {
		d.OnQuit()
	}
	return m.Choice()
}

// run executes model as a full screen program and returns its final state.
func run(ctx context.Context, model tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return tea.NewProgram(model, opts...).Run()
}
