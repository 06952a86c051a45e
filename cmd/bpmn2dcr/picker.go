package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type bpmnFileItem struct {
	path string
}

func (i bpmnFileItem) Title() string       { return i.path }
func (i bpmnFileItem) Description() string { return "" }
func (i bpmnFileItem) FilterValue() string { return i.path }

type pickerModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func newPickerModel(files []string) pickerModel {
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = bpmnFileItem{path: f}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a BPMN file to translate"
	l.SetShowStatusBar(false)
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.list.SelectedItem().(bpmnFileItem); ok {
				m.choice = i.path
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// pickBPMNFile scans dir for .bpmn files. With none found it errors,
// with exactly one it auto-selects it, and otherwise it launches an
// interactive bubbletea picker over the candidates. Leaving the picker
// without choosing a file exits the process with status 0.
func pickBPMNFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".bpmn") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return "", fmt.Errorf("no .bpmn files found in %s", dir)
	}
	if len(files) == 1 {
		return files[0], nil
	}

	p := tea.NewProgram(newPickerModel(files))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running file picker: %w", err)
	}
	fm := final.(pickerModel)
	if fm.choice == "" {
		fmt.Fprintln(os.Stderr, "no file selected")
		os.Exit(0)
	}
	return fm.choice, nil
}
