package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldFolder = iota
	fieldWorkers
	fieldCount
)

// Form collects the source folder and designer count
type Form struct {
	inputs     []textinput.Model
	focus      int
	minWorkers int
	maxWorkers int
	err        string
	width      int
}

// NewForm creates a form prefilled with the last used values
func NewForm(folder string, workers, minWorkers, maxWorkers int) Form {
	folderInput := textinput.New()
	folderInput.Placeholder = "/path/to/images"
	folderInput.Prompt = ""
	folderInput.SetValue(folder)
	folderInput.Focus()

	workersInput := textinput.New()
	workersInput.Placeholder = fmt.Sprintf("%d-%d", minWorkers, maxWorkers)
	workersInput.Prompt = ""
	workersInput.CharLimit = 2
	if workers > 0 {
		workersInput.SetValue(strconv.Itoa(workers))
	}

	return Form{
		inputs:     []textinput.Model{folderInput, workersInput},
		minWorkers: minWorkers,
		maxWorkers: maxWorkers,
	}
}

// SetWidth sets the input width
func (f *Form) SetWidth(w int) {
	f.width = w
	for i := range f.inputs {
		f.inputs[i].Width = w - 20
	}
}

// NextField moves focus to the other input
func (f *Form) NextField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

// Folder returns the trimmed folder input
func (f Form) Folder() string {
	return strings.TrimSpace(f.inputs[fieldFolder].Value())
}

// Workers returns the designer count, or 0 if the input is not a number
func (f Form) Workers() int {
	n, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldWorkers].Value()))
	if err != nil {
		return 0
	}
	return n
}

// Valid reports whether Start may be pressed
func (f Form) Valid() bool {
	n := f.Workers()
	return f.Folder() != "" && n >= f.minWorkers && n <= f.maxWorkers
}

// SetError shows a validation message under the inputs
func (f *Form) SetError(msg string) {
	f.err = msg
}

// Update forwards key input to the focused field
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return f, cmd
}

// View renders the form
func (f Form) View() string {
	var b strings.Builder

	b.WriteString(PanelTitle.Render("Split images between designers"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Source folder") + f.inputs[fieldFolder].View())
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Designers") + f.inputs[fieldWorkers].View())
	b.WriteString("\n\n")

	if f.Valid() {
		b.WriteString(ButtonActive.Render("Start"))
	} else {
		b.WriteString(ButtonDisabled.Render("Start"))
		hint := fmt.Sprintf("  choose a folder and %d-%d designers", f.minWorkers, f.maxWorkers)
		b.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Render(hint))
	}

	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(LogError.Render(f.err))
	}

	return PanelStyle.Width(f.width).Render(b.String())
}
