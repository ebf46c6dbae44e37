package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a column of labelled single-line inputs with one focused.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = ""
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newForm(labels []string, inputs []textinput.Model) form {
	f := form{labels: labels, inputs: inputs}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			_ = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) value(i int) string { return f.inputs[i].Value() }

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(0)
}

// update feeds a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := styleLabel.Render(f.labels[i])
		if i == f.focus {
			label = styleFocused.Render("› " + f.labels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	return b.String()
}
