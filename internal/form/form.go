// Package form binds the selected plot to a column of editable fields.
package form

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ploteditor/internal/plot"
	"ploteditor/internal/style"
)

type Field int

const (
	ID Field = iota
	Name
	Status
	Area
	AreaValue
	Price
	PriceValue
	VRI
	Purpose
	ProjectDescription
	Comment
	Zone
	fieldCount
)

var labels = [fieldCount]string{
	ID:                 "id",
	Name:               "name",
	Status:             "status",
	Area:               "area",
	AreaValue:          "area value",
	Price:              "price",
	PriceValue:         "price value",
	VRI:                "vri",
	Purpose:            "purpose",
	ProjectDescription: "project",
	Comment:            "comment",
	Zone:               "zone",
}

func (f Field) String() string { return labels[f] }

const (
	labelWidth   = 12
	defaultWidth = 28
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6"))
)

// Form holds one text input per field plus a status select. The status field has no text
// input; it cycles through the known statuses.
type Form struct {
	inputs        [fieldCount]textinput.Model
	focus         Field
	focused       bool
	options       []string
	status        int
	defaultStatus string
}

// New builds an empty form. defaultStatus is preselected on blank records.
func New(defaultStatus string) *Form {
	if defaultStatus == "" {
		defaultStatus = style.DefaultStatus
	}
	f := &Form{defaultStatus: defaultStatus}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = defaultWidth
		f.inputs[i] = ti
	}
	f.inputs[AreaValue].Placeholder = "number"
	f.inputs[PriceValue].Placeholder = "number"
	f.Reset()
	return f
}

// Fill copies every field of p into the form.
func (f *Form) Fill(p *plot.Plot) {
	f.inputs[ID].SetValue(p.ID)
	f.inputs[Name].SetValue(p.Name)
	f.setStatus(p.Status)
	f.inputs[Area].SetValue(p.Area)
	f.inputs[AreaValue].SetValue(formatNumber(p.AreaValue))
	f.inputs[Price].SetValue(p.Price)
	f.inputs[PriceValue].SetValue(formatNumber(p.PriceValue))
	f.inputs[VRI].SetValue(p.VRI)
	f.inputs[Purpose].SetValue(p.Purpose)
	f.inputs[ProjectDescription].SetValue(p.ProjectDescription)
	f.inputs[Comment].SetValue(p.Comment)
	f.inputs[Zone].SetValue(p.Zone)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
}

// Read writes the form back into p. Text is trimmed; numbers that do not parse become nil.
func (f *Form) Read(p *plot.Plot) {
	p.ID = f.Value(ID)
	p.Name = f.Value(Name)
	p.Status = f.Value(Status)
	p.Area = f.Value(Area)
	p.AreaValue = plot.ParseNumber(f.Value(AreaValue))
	p.Price = f.Value(Price)
	p.PriceValue = plot.ParseNumber(f.Value(PriceValue))
	p.VRI = f.Value(VRI)
	p.Purpose = f.Value(Purpose)
	p.ProjectDescription = f.Value(ProjectDescription)
	p.Comment = f.Value(Comment)
	p.Zone = f.Value(Zone)
}

// Reset blanks every field and selects the default status.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setStatus("")
}

// setStatus selects s, adding it as an extra option when it is not a known status so that
// reading the form back does not lose it.
func (f *Form) setStatus(s string) {
	if s == "" {
		s = f.defaultStatus
	}
	f.options = append([]string(nil), style.Options()...)
	if !contains(f.options, f.defaultStatus) {
		f.options = append(f.options, f.defaultStatus)
	}
	for i, o := range f.options {
		if o == s {
			f.status = i
			return
		}
	}
	f.options = append(f.options, s)
	f.status = len(f.options) - 1
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Value returns the trimmed content of a field.
func (f *Form) Value(fl Field) string {
	if fl == Status {
		return f.options[f.status]
	}
	return strings.TrimSpace(f.inputs[fl].Value())
}

// SetValue replaces the raw content of a field.
func (f *Form) SetValue(fl Field, v string) {
	if fl == Status {
		f.setStatus(v)
		return
	}
	f.inputs[fl].SetValue(v)
}

// Options lists the statuses the select cycles through.
func (f *Form) Options() []string { return append([]string(nil), f.options...) }

// CycleStatus moves the status select by delta, wrapping.
func (f *Form) CycleStatus(delta int) {
	n := len(f.options)
	f.status = ((f.status+delta)%n + n) % n
}

func (f *Form) Focused() bool { return f.focused }

func (f *Form) Current() Field { return f.focus }

// Focus gives keyboard input to the current field.
func (f *Form) Focus() tea.Cmd {
	f.focused = true
	return f.focusCurrent()
}

func (f *Form) Blur() {
	f.focused = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Goto focuses field fl.
func (f *Form) Goto(fl Field) tea.Cmd {
	if fl < 0 || fl >= fieldCount {
		return nil
	}
	f.focus = fl
	return f.Focus()
}

func (f *Form) Next() tea.Cmd { return f.move(1) }
func (f *Form) Prev() tea.Cmd { return f.move(-1) }

func (f *Form) move(delta int) tea.Cmd {
	f.focus = Field((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
	if !f.focused {
		return nil
	}
	return f.focusCurrent()
}

func (f *Form) focusCurrent() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if Field(i) == f.focus && f.focus != Status {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

// Update routes a message to the focused field. up/down move between fields; on the status
// select left/right/space cycle the value.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if !f.focused {
		return nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "up", "shift+tab":
			return f.Prev()
		case "down", "enter":
			return f.Next()
		}
		if f.focus == Status {
			switch km.String() {
			case "left":
				f.CycleStatus(-1)
			case "right", " ":
				f.CycleStatus(1)
			}
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the fields one per line inside width cells.
func (f *Form) View(width int) string {
	w := max(8, width-labelWidth-1)
	lines := make([]string, 0, fieldCount)
	for i := Field(0); i < fieldCount; i++ {
		ls := labelStyle
		if f.focused && i == f.focus {
			ls = focusStyle
		}
		label := ls.Width(labelWidth).Render(i.String())
		var value string
		if i == Status {
			value = selectStyle.Render("‹ " + f.options[f.status] + " ›")
		} else {
			f.inputs[i].Width = w - 1
			value = f.inputs[i].View()
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", lipgloss.NewStyle().MaxWidth(w).Render(value)))
	}
	return strings.Join(lines, "\n")
}
