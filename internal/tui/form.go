package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/travelhub/internal/tui/theme"
)

// newInput creates a text input styled for the booking forms.
func newInput(placeholder string) textinput.Model {
	t := theme.Current()
	s := t.S()

	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "› "
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        s.InputText,
			Placeholder: s.Placeholder,
			Prompt:      s.Prompt,
		},
		Blurred: textinput.StyleState{
			Text:        s.Placeholder,
			Placeholder: s.Placeholder,
			Prompt:      s.PromptBlur,
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(40)
	return input
}

// field is one labelled input of a form.
type field struct {
	label  string
	input  textinput.Model
	hidden bool
}

// form is an ordered list of inputs with a single focus. focus is -1 when no
// input is focused.
type form struct {
	fields []*field
	focus  int
}

func newForm(fields ...*field) *form {
	return &form{fields: fields, focus: -1}
}

// Focus focuses field i, blurring the rest.
func (f *form) Focus(i int) tea.Cmd {
	f.Blur()
	if i < 0 || i >= len(f.fields) || f.fields[i].hidden {
		return nil
	}
	f.focus = i
	return f.fields[i].input.Focus()
}

// Blur removes focus from every field.
func (f *form) Blur() {
	for _, fl := range f.fields {
		fl.input.Blur()
	}
	f.focus = -1
}

// Focused returns the focused field index, or -1.
func (f *form) Focused() int {
	return f.focus
}

// Next moves focus to the next visible field. wrapped reports that focus ran
// off the end; the form is then left unfocused.
func (f *form) Next() (cmd tea.Cmd, wrapped bool) {
	for i := f.focus + 1; i < len(f.fields); i++ {
		if !f.fields[i].hidden {
			return f.Focus(i), false
		}
	}
	f.Blur()
	return nil, true
}

// Prev moves focus to the previous visible field. wrapped reports that focus
// ran off the start; the form is then left unfocused.
func (f *form) Prev() (cmd tea.Cmd, wrapped bool) {
	start := f.focus - 1
	if f.focus < 0 {
		start = len(f.fields) - 1
	}
	for i := start; i >= 0; i-- {
		if !f.fields[i].hidden {
			return f.Focus(i), false
		}
	}
	f.Blur()
	return nil, true
}

// FocusFirst focuses the first visible field.
func (f *form) FocusFirst() tea.Cmd {
	f.focus = -1
	cmd, _ := f.Next()
	return cmd
}

// FocusLast focuses the last visible field.
func (f *form) FocusLast() tea.Cmd {
	f.focus = -1
	cmd, _ := f.Prev()
	return cmd
}

// Cycle moves focus forward or backward, wrapping around.
func (f *form) Cycle(forward bool) tea.Cmd {
	if forward {
		if cmd, wrapped := f.Next(); !wrapped {
			return cmd
		}
		return f.FocusFirst()
	}
	if cmd, wrapped := f.Prev(); !wrapped {
		return cmd
	}
	return f.FocusLast()
}

// Update forwards a message to the focused input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// Value returns the trimmed value of field i.
func (f *form) Value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// Raw returns the value of field i exactly as typed. The booking gates see
// raw values, so surrounding spaces count.
func (f *form) Raw(i int) string {
	return f.fields[i].input.Value()
}

// SetValue replaces the value of field i.
func (f *form) SetValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

// SetHidden hides or shows field i. A hidden field loses focus.
func (f *form) SetHidden(i int, hidden bool) {
	f.fields[i].hidden = hidden
	if hidden && f.focus == i {
		f.Blur()
	}
}

// SetLabel renames field i.
func (f *form) SetLabel(i int, label string) {
	f.fields[i].label = label
}

// SetWidth resizes every input.
func (f *form) SetWidth(width int) {
	for _, fl := range f.fields {
		fl.input.SetWidth(width)
	}
}

// Render draws each visible field as a label line above its input.
func (f *form) Render() string {
	s := theme.Current().S()
	var lines []string
	for i, fl := range f.fields {
		if fl.hidden {
			continue
		}
		label := s.Label.Render(fl.label)
		if i == f.focus {
			label = s.LabelFocused.Render(fl.label)
		}
		lines = append(lines, label, fl.input.View(), "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
