// Package settings is the interactive profile picker. It lists stored
// profiles, applies the selected one to the running slideshow, and lets
// the user create or delete profiles without restarting.
package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/profile"
	"github.com/driftwall/driftwall/internal/util"
)

// Applier applies a profile to the running slideshow. The app layer
// implements it; tests stub it.
type Applier interface {
	Apply(name string) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(name string) error

// Apply implements Applier.
func (f ApplierFunc) Apply(name string) error {
	return f(name)
}

type mode int

const (
	modeList mode = iota
	modeCreate
)

// Model is the bubbletea model for the settings screen.
type Model struct {
	manager *profile.Manager
	applier Applier

	mode     mode
	profiles []string
	cursor   int
	active   string
	input    textinput.Model
	status   string
	err      error
	width    int
	height   int
	styles   styles
}

// Option configures the settings model.
type Option func(*Model)

// WithTheme selects the color theme by its configured name.
func WithTheme(name string) Option {
	return func(m *Model) {
		m.styles = newStyles(name)
	}
}

// NewModel creates the settings model.
func NewModel(manager *profile.Manager, applier Applier, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "profile name"
	input.CharLimit = 64

	m := Model{
		manager: manager,
		applier: applier,
		input:   input,
		styles:  newStyles("default"),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// profilesLoadedMsg carries the result of listing profiles.
type profilesLoadedMsg struct {
	names []string
	err   error
}

func (m Model) loadProfiles() tea.Msg {
	names, err := m.manager.List()
	return profilesLoadedMsg{names: names, err: err}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadProfiles
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profilesLoadedMsg:
		m.err = msg.err
		m.profiles = msg.names
		if m.cursor >= len(m.profiles) {
			m.cursor = max(0, len(m.profiles)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeCreate {
			return m.updateCreate(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.profiles) == 0 {
			break
		}
		name := m.profiles[m.cursor]
		if err := m.applier.Apply(name); err != nil {
			m.err = err
			break
		}
		m.err = nil
		m.active = name
		m.status = fmt.Sprintf("applied %q", name)

	case "n":
		m.mode = modeCreate
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "d":
		if len(m.profiles) == 0 {
			break
		}
		name := m.profiles[m.cursor]
		if name == m.active {
			m.err = fmt.Errorf("profile %q is active", name)
			break
		}
		if err := m.manager.Delete(name); err != nil {
			m.err = err
			break
		}
		m.err = nil
		m.status = fmt.Sprintf("deleted %q", name)
		return m, m.loadProfiles

	case "r":
		return m, m.loadProfiles
	}
	return m, nil
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.err = fmt.Errorf("profile name is empty")
			return m, nil
		}
		src := &profile.Profile{Name: name}
		if m.active != "" {
			if cur, err := m.manager.Load(m.active); err == nil {
				src.Panels = cur.Panels
			}
		}
		if err := m.manager.Create(src); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.mode = modeList
		m.input.Blur()
		m.status = fmt.Sprintf("created %q", name)
		return m, m.loadProfiles
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("driftwall profiles"))
	b.WriteString("\n")

	if m.mode == modeCreate {
		b.WriteString("New profile (esc to cancel):\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else {
		if len(m.profiles) == 0 {
			b.WriteString(m.styles.muted.Render("no profiles yet; press n to create one"))
			b.WriteString("\n")
		}
		maxWidth := m.width - 8
		if maxWidth <= 0 {
			maxWidth = 40
		}
		for i, name := range m.profiles {
			label := util.TruncateANSI(name, maxWidth)
			if name == m.active {
				label = m.styles.active.Render("* ") + label
			}
			if i == m.cursor {
				b.WriteString(m.styles.selected.Render(label))
			} else {
				b.WriteString(m.styles.item.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString(m.styles.failure.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.muted.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.muted.Render("enter apply · n new · d delete · r reload · q quit"))
	b.WriteString("\n")

	return m.styles.box.Render(b.String())
}

// Run starts the settings screen on the terminal.
func Run(manager *profile.Manager, applier Applier, opts ...Option) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("settings require an interactive terminal")
	}

	p := tea.NewProgram(NewModel(manager, applier, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
