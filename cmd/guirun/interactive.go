package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/engine"
	"github.com/uiforge/gui-runtime/guictx"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	suspendedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// slot is one inspector entry. Exactly one of ctx and susp is set,
// mirroring the two lifecycle representations.
type slot struct {
	ctx  *guictx.Context
	susp *guictx.SuspendedContext
}

type inspectorModel struct {
	err      error
	eng      guiruntime.Engine
	engDesc  string
	slots    []*slot
	target   *guictx.Context
	settings string
	status   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	purpose  pathPurpose
	state    modelState
}

type modelState int

const (
	stateList modelState = iota
	stateEditFields
	statePromptPath
	stateViewSettings
)

type pathPurpose int

const (
	purposeLoad pathPurpose = iota
	purposeSave
)

func newInspectorModel(eng guiruntime.Engine, desc string) *inspectorModel {
	return &inspectorModel{
		eng:     eng,
		engDesc: desc,
		state:   stateList,
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.closeAll()
			return m, tea.Quit

		case "q":
			if m.state == stateList || m.state == stateViewSettings {
				m.closeAll()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.slots)-1 {
				m.selected++
			}

		case "a":
			if m.state == stateList {
				m.addContext()
			}

		case "s":
			if m.state == stateList {
				m.addSuspended()
			}

		case "u":
			if m.state == stateList {
				m.suspendSelected()
			}

		case "t":
			if m.state == stateList {
				m.activateSelected()
			}

		case "x":
			if m.state == stateList {
				m.destroySelected()
			}

		case "e":
			if m.state == stateList {
				return m, m.startFieldEdit()
			}

		case "l":
			if m.state == stateList {
				return m, m.startPathPrompt(purposeLoad)
			}

		case "w":
			if m.state == stateList {
				return m, m.startPathPrompt(purposeSave)
			}

		case "v":
			if m.state == stateList {
				m.showSettings()
			}

		case "tab":
			if m.state == stateEditFields && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "enter":
			switch m.state {
			case stateEditFields:
				m.applyFieldInputs()
				m.state = stateList
			case statePromptPath:
				m.runPathAction()
				m.state = stateList
			case stateViewSettings:
				m.state = stateList
			}

		case "esc":
			switch m.state {
			case stateEditFields, statePromptPath:
				m.inputs = nil
				m.target = nil
				m.state = stateList
			case stateViewSettings:
				m.state = stateList
			}
		}
	}

	if m.state == stateEditFields || m.state == statePromptPath {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *inspectorModel) selectedSlot() *slot {
	if m.selected < 0 || m.selected >= len(m.slots) {
		return nil
	}
	return m.slots[m.selected]
}

func (m *inspectorModel) clearNotice() {
	m.err = nil
	m.status = ""
}

func (m *inspectorModel) addContext() {
	m.clearNotice()
	ctx, err := guictx.Create(m.eng)
	if err != nil {
		m.err = err
		return
	}
	m.slots = append(m.slots, &slot{ctx: ctx})
	m.selected = len(m.slots) - 1
	m.status = "created " + formatRaw(ctx.Raw())
}

func (m *inspectorModel) addSuspended() {
	m.clearNotice()
	m.slots = append(m.slots, &slot{susp: guictx.CreateSuspended(m.eng)})
	m.selected = len(m.slots) - 1
	m.status = "created suspended context"
}

func (m *inspectorModel) suspendSelected() {
	m.clearNotice()
	s := m.selectedSlot()
	if s == nil || s.ctx == nil {
		m.err = fmt.Errorf("select an active context to suspend")
		return
	}
	raw := s.ctx.Raw()
	s.susp = s.ctx.Suspend()
	s.ctx = nil
	m.status = "suspended " + formatRaw(raw)
}

func (m *inspectorModel) activateSelected() {
	m.clearNotice()
	s := m.selectedSlot()
	if s == nil || s.susp == nil {
		m.err = fmt.Errorf("select a suspended context to activate")
		return
	}
	ctx, err := s.susp.Activate()
	if err != nil {
		m.err = err
		return
	}
	s.ctx = ctx
	s.susp = nil
	m.status = "activated " + formatRaw(ctx.Raw())
}

func (m *inspectorModel) destroySelected() {
	m.clearNotice()
	s := m.selectedSlot()
	if s == nil {
		m.err = fmt.Errorf("no context selected")
		return
	}
	if s.ctx != nil {
		s.ctx.Close()
	} else {
		s.susp.Close()
	}
	m.slots = append(m.slots[:m.selected], m.slots[m.selected+1:]...)
	if m.selected >= len(m.slots) && m.selected > 0 {
		m.selected--
	}
	m.status = "destroyed"
}

func (m *inspectorModel) startFieldEdit() tea.Cmd {
	m.clearNotice()
	s := m.selectedSlot()
	if s == nil || s.ctx == nil {
		m.err = fmt.Errorf("select an active context to edit")
		return nil
	}
	m.prepareFieldInputs(s.ctx)
	m.state = stateEditFields
	return textinput.Blink
}

func (m *inspectorModel) prepareFieldInputs(ctx *guictx.Context) {
	fields := []struct {
		field guiruntime.StringField
		get   func() (string, bool)
	}{
		{guiruntime.FieldIniFilename, ctx.IniFilename},
		{guiruntime.FieldLogFilename, ctx.LogFilename},
		{guiruntime.FieldPlatformName, ctx.PlatformName},
		{guiruntime.FieldRendererName, ctx.RendererName},
	}
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.field.String() + ": "
		ti.Placeholder = "(unset)"
		ti.Width = 40
		if v, ok := f.get(); ok {
			ti.SetValue(v)
		}
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
	m.target = ctx
}

func (m *inspectorModel) applyFieldInputs() {
	ops := []struct {
		set   func(string)
		clear func()
	}{
		{m.target.SetIniFilename, m.target.ClearIniFilename},
		{m.target.SetLogFilename, m.target.ClearLogFilename},
		{m.target.SetPlatformName, m.target.ClearPlatformName},
		{m.target.SetRendererName, m.target.ClearRendererName},
	}
	for i, op := range ops {
		if v := m.inputs[i].Value(); v == "" {
			op.clear()
		} else {
			op.set(v)
		}
	}
	m.inputs = nil
	m.target = nil
	m.status = "fields updated"
}

func (m *inspectorModel) startPathPrompt(purpose pathPurpose) tea.Cmd {
	m.clearNotice()
	s := m.selectedSlot()
	if s == nil || s.ctx == nil {
		m.err = fmt.Errorf("select an active context first")
		return nil
	}
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.Placeholder = "layout.ini"
	ti.Width = 40
	ti.Focus()
	m.inputs = []textinput.Model{ti}
	m.focusIdx = 0
	m.purpose = purpose
	m.target = s.ctx
	m.state = statePromptPath
	return textinput.Blink
}

func (m *inspectorModel) runPathAction() {
	path := strings.TrimSpace(m.inputs[0].Value())
	target := m.target
	m.inputs = nil
	m.target = nil
	if path == "" {
		m.err = fmt.Errorf("no path given")
		return
	}

	switch m.purpose {
	case purposeLoad:
		data, err := os.ReadFile(path)
		if err != nil {
			m.err = err
			return
		}
		target.LoadIniSettings(string(data))
		m.status = fmt.Sprintf("loaded %d bytes from %s", len(data), path)

	case purposeSave:
		text := target.SaveIniSettings()
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			m.err = err
			return
		}
		m.status = fmt.Sprintf("saved %d bytes to %s", len(text), path)
	}
}

func (m *inspectorModel) showSettings() {
	m.clearNotice()
	s := m.selectedSlot()
	if s == nil || s.ctx == nil {
		m.err = fmt.Errorf("select an active context to view settings")
		return
	}
	m.settings = s.ctx.SaveIniSettings()
	m.state = stateViewSettings
}

func (m *inspectorModel) closeAll() {
	for _, s := range m.slots {
		if s.ctx != nil {
			s.ctx.Close()
		} else if s.susp != nil {
			s.susp.Close()
		}
	}
	m.slots = nil
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GUI Context Inspector"))
	b.WriteString(" ")
	b.WriteString(m.engDesc)
	b.WriteString("\n\n")
	b.WriteString(m.engineLine())
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		if len(m.slots) == 0 {
			b.WriteString("No contexts. Press a to create one.\n")
		} else {
			for i, s := range m.slots {
				cursor := "  "
				if i == m.selected {
					cursor = "> "
					b.WriteString(selectedStyle.Render(cursor + m.describeSlot(i, s)))
				} else {
					b.WriteString(cursor + m.describeSlot(i, s))
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(m.noticeLine())
		b.WriteString(helpStyle.Render("↑/↓ select • a new • s new suspended • u suspend • t activate • x destroy"))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("e edit fields • l load ini • w write ini • v view settings • q quit"))

	case stateEditFields:
		b.WriteString("Edit string fields (empty clears):\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter apply • esc cancel"))

	case statePromptPath:
		if m.purpose == purposeLoad {
			b.WriteString("Load settings from file:\n\n")
		} else {
			b.WriteString("Write settings to file:\n\n")
		}
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter run • esc cancel"))

	case stateViewSettings:
		b.WriteString("Serialized settings:\n\n")
		if m.settings == "" {
			b.WriteString(helpStyle.Render("(empty)"))
		} else {
			b.WriteString(suspendedStyle.Render(m.settings))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	return b.String()
}

func (m *inspectorModel) describeSlot(i int, s *slot) string {
	if s.ctx != nil {
		desc := activeStyle.Render("active " + formatRaw(s.ctx.Raw()))
		if s.ctx.IsCurrent() {
			desc += " (current)"
		}
		return fmt.Sprintf("slot %d  %s", i+1, desc)
	}
	return fmt.Sprintf("slot %d  %s", i+1, suspendedStyle.Render("suspended"))
}

func (m *inspectorModel) engineLine() string {
	line := "current: " + formatRaw(m.eng.Current())
	if ne, ok := m.eng.(*engine.NativeEngine); ok {
		line += fmt.Sprintf(" • contexts: %d", ne.ContextCount())
	}
	return line
}

func (m *inspectorModel) noticeLine() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\n"
	}
	if m.status != "" {
		return statusStyle.Render(m.status) + "\n\n"
	}
	return ""
}

func runInteractive(cfg *Config) error {
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	m := newInspectorModel(eng, engineDesc(cfg))
	if ctx, err := guictx.CreateWithConfig(eng, cfg.contextConfig()); err == nil {
		m.slots = append(m.slots, &slot{ctx: ctx})
	} else {
		m.err = err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
