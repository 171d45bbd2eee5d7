// Package ui provides the free-form text-box editor front end.
//
// The editor shows one task description per line in a textarea. Every
// keystroke re-derives the entire list from the visible text and writes
// it back to disk: each non-blank line becomes a fresh pending task.
// Completion state is neither shown nor preserved across an edit; this
// mirrors the reference behavior and is a known data-loss quirk, not an
// accident of this implementation.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"godo/internal/store"
	"godo/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Padding(0, 1)
)

// RunEditor opens the text-box editor over the given store.
func RunEditor(ctx context.Context, st *store.Store, tasks task.List) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("editor requires a TTY")
	}

	model := newEditorModel(st, tasks)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type editorModel struct {
	store    *store.Store
	textarea textarea.Model
	status   string
	saveErr  error
}

func newEditorModel(st *store.Store, tasks task.List) *editorModel {
	ta := textarea.New()
	ta.Placeholder = "One task per line"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(TextFromTasks(tasks))
	ta.Focus()

	return &editorModel{
		store:    st,
		textarea: ta,
		status:   fmt.Sprintf("%d tasks", len(tasks)),
	}
}

func (m *editorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textarea.SetWidth(msg.Width - 2)
		m.textarea.SetHeight(msg.Height - 4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		m.sync()
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// sync re-derives the full list from the visible text and persists it.
func (m *editorModel) sync() {
	tasks := TasksFromText(m.textarea.Value())
	if err := m.store.Save(tasks); err != nil {
		m.saveErr = err
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.saveErr = nil
	m.status = fmt.Sprintf("%d tasks", len(tasks))
}

func (m *editorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	if m.saveErr != nil {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status + " | esc to quit"))
	}
	return b.String()
}

// TasksFromText splits the editor text into one pending task per
// non-blank line. Lines are kept verbatim; only the surrounding
// whitespace of the whole text and fully blank lines are dropped.
func TasksFromText(text string) task.List {
	tasks := task.List{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tasks = append(tasks, task.Task{Desc: line, Done: false})
	}
	return tasks
}

// TextFromTasks renders one description per line, without a trailing
// newline so the cursor starts at the end of the last task. Done flags
// are not represented in the editor.
func TextFromTasks(tasks task.List) string {
	descs := make([]string, len(tasks))
	for i, t := range tasks {
		descs[i] = t.Desc
	}
	return strings.Join(descs, "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
