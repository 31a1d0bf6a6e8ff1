package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// PickerModel browses the filesystem for an OAuth client secret file.
type PickerModel struct {
	picker   filepicker.Model
	keys     keyMap
	selected string
	warning  string
}

// NewPickerModel starts browsing at dir (the working directory when empty).
func NewPickerModel(dir string) *PickerModel {
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = []string{".json"}

	return &PickerModel{picker: fp, keys: newKeyMap()}
}

func (m *PickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.quit) {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.warning = fmt.Sprintf("%s is not a JSON file", path)
	}

	return m, cmd
}

func (m *PickerModel) View() string {
	header := styles.title.Render("Select the OAuth client secret (client_secret*.json)")
	if m.warning != "" {
		header = fmt.Sprintf("%s\n%s", header, styles.warn.Render(m.warning))
	}
	return fmt.Sprintf("%s\n%s\n\n%s", header, m.picker.View(), styles.help.Render("enter: select • q: cancel"))
}

// Selected returns the chosen path, empty when the picker was cancelled.
func (m *PickerModel) Selected() string {
	return m.selected
}

// PickFile runs the picker starting at dir and returns the chosen path, or "" when cancelled.
func PickFile(ctx context.Context, in io.Reader, out io.Writer, dir string) (string, error) {
	final, err := run(ctx, NewPickerModel(dir), in, out)
	if err != nil {
		return "", fmt.Errorf("file picker: %w", err)
	}
	m, ok := final.(*PickerModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
