package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jamesprial/gameshelf/internal/view"
)

// AppTitle is the banner above every screen.
const AppTitle = "GraphQL Client"

const helpText = "tab: focus • ↑/↓: select • d: delete • enter: add game • q: quit"

// Controller is the part of view.Controller the model drives.
type Controller interface {
	State() view.State
	SetDraft(title, platformRaw string)
	SubmitDraft() error
	SubmitDelete(id string) error
}

type focus int

const (
	focusList focus = iota
	focusTitle
	focusPlatform
	focusSubmit
	focusCount
)

// Model is the bubbletea model for the games view. Every screen is derived
// from the latest controller snapshot through view.Render.
type Model struct {
	ctrl    Controller
	updates *Updates
	styles  Styles

	state  view.State
	screen view.Screen

	spinner  spinner.Model
	title    textinput.Model
	platform textinput.Model
	focus    focus
	cursor   int
	notice   string
	width    int
}

// NewModel returns a model reading snapshots from updates.
func NewModel(ctrl Controller, updates *Updates, styles Styles) Model {
	title := textinput.New()
	title.Placeholder = "Chrono Trigger"
	title.Prompt = "> "

	platform := textinput.New()
	platform.Placeholder = "SNES,PC"
	platform.Prompt = "> "

	m := Model{
		ctrl:     ctrl,
		updates:  updates,
		styles:   styles,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		title:    title,
		platform: platform,
	}
	m.apply(ctrl.State())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.updates.wait())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		if view.State(msg).Seq > m.state.Seq {
			m.apply(view.State(msg))
		}
		return m, m.updates.wait()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen.Kind != view.ScreenList {
		if key == "q" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusList:
		switch key {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.screen.Rows)-1 {
				m.cursor++
			}
		case "d", "delete", "x":
			if len(m.screen.Rows) > 0 {
				m.report(m.ctrl.SubmitDelete(m.screen.Rows[m.cursor].ID))
			}
		case "enter":
			return m, m.setFocus(focusTitle)
		}
		return m, nil

	case focusSubmit:
		if key == "enter" || key == " " {
			m.report(m.ctrl.SubmitDraft())
		}
		return m, nil
	}

	if key == "enter" {
		m.report(m.ctrl.SubmitDraft())
		return m, nil
	}
	if key == "esc" {
		return m, m.setFocus(focusList)
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.platform, cmd = m.platform.Update(msg)
	}
	m.ctrl.SetDraft(m.title.Value(), m.platform.Value())
	m.apply(m.ctrl.State())
	return m, cmd
}

// report shows err, if any, and resyncs with the controller. Snapshots
// queued before the call are then older than m.state and get ignored.
func (m *Model) report(err error) {
	m.notice = ""
	if err != nil {
		m.notice = err.Error()
	}
	m.apply(m.ctrl.State())
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.platform.Blur()
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusPlatform:
		return m.platform.Focus()
	}
	return nil
}

// apply adopts s and keeps the inputs in line with the controller's draft.
func (m *Model) apply(s view.State) {
	m.state = s
	m.screen = view.Render(s)
	if m.cursor >= len(m.screen.Rows) {
		m.cursor = max(len(m.screen.Rows)-1, 0)
	}
	if m.title.Value() != s.Draft.Title {
		m.title.SetValue(s.Draft.Title)
	}
	if m.platform.Value() != s.Draft.PlatformRaw {
		m.platform.SetValue(s.Draft.PlatformRaw)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.AppTitle.Render(AppTitle))
	b.WriteByte('\n')

	switch m.screen.Kind {
	case view.ScreenLoading:
		b.WriteString(m.spinner.View() + " " + m.screen.Message)
		b.WriteByte('\n')
		return b.String()
	case view.ScreenError:
		b.WriteString(m.styles.Error.Render(m.screen.Message))
		b.WriteByte('\n')
		return b.String()
	}

	b.WriteString(m.styles.Heading.Render(m.screen.Heading))
	b.WriteByte('\n')
	b.WriteString(m.styles.Panel.Render(m.listView()))
	b.WriteByte('\n')
	if f := m.screen.Form; f != nil {
		b.WriteString(m.styles.Panel.Render(m.formView(f)))
		b.WriteByte('\n')
	}
	if m.notice != "" {
		b.WriteString(m.styles.Error.Render(m.notice))
		b.WriteByte('\n')
	}
	b.WriteString(m.styles.Help.Render(helpText))
	return b.String()
}

func (m Model) listView() string {
	if len(m.screen.Rows) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.screen.Rows)*2)
	for i, r := range m.screen.Rows {
		style, marker := m.styles.Row, "  "
		if i == m.cursor && m.focus == focusList {
			style, marker = m.styles.Selected, "> "
		}
		lines = append(lines,
			style.Render(marker+r.Title)+"  "+m.styles.Delete.Render("["+r.DeleteLabel+"]"),
			m.styles.Platform.Render(r.Platform),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) formView(f *view.Form) string {
	button := m.styles.Button
	if m.focus == focusSubmit {
		button = m.styles.Focused
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Heading.Render(f.Heading),
		m.styles.Label.Render(f.TitleLabel),
		m.title.View(),
		m.styles.Label.Render(f.PlatformLabel),
		m.platform.View(),
		button.Render(f.SubmitLabel),
	)
}
