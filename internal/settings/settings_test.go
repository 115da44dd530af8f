package settings

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/panel"
	"github.com/driftwall/driftwall/internal/profile"
)

func newTestManager(t *testing.T, names ...string) *profile.Manager {
	t.Helper()
	m, err := profile.NewManager(afero.NewMemMapFs(), "/profiles")
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}
	for _, name := range names {
		p := &profile.Profile{
			Name: name,
			Panels: []panel.Panel{{
				Geometry: panel.Geometry{Width: 100, Height: 100},
				State:    panel.State{Duration: 10, FadePoint: 8},
				Playlist: "nature",
			}},
		}
		if err := m.Save(p); err != nil {
			t.Fatalf("Save(%q) failed: %v", name, err)
		}
	}
	return m
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadProfiles()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestThemeSelectsPalette(t *testing.T) {
	def := paletteByName("default")
	for _, name := range []string{"dark", "light"} {
		if paletteByName(name) == def {
			t.Errorf("theme %q uses the default palette", name)
		}
	}
	if paletteByName("neon") != def {
		t.Error("unknown theme should fall back to the default palette")
	}

	m := NewModel(newTestManager(t), nil, WithTheme("light"))
	want := paletteByName("light").primary
	if got := m.styles.title.GetForeground(); got != want {
		t.Errorf("title foreground = %v, want %v", got, want)
	}
}

func TestListsProfilesSorted(t *testing.T) {
	m := loaded(t, NewModel(newTestManager(t, "work", "home"), ApplierFunc(func(string) error { return nil })))

	if len(m.profiles) != 2 {
		t.Fatalf("profiles = %v, want 2", m.profiles)
	}
	if m.profiles[0] != "home" || m.profiles[1] != "work" {
		t.Errorf("profiles = %v, want sorted [home work]", m.profiles)
	}

	view := m.View()
	if !strings.Contains(view, "home") || !strings.Contains(view, "work") {
		t.Errorf("view does not list profiles:\n%s", view)
	}
}

func TestEnterAppliesSelectedProfile(t *testing.T) {
	var applied []string
	applier := ApplierFunc(func(name string) error {
		applied = append(applied, name)
		return nil
	})
	m := loaded(t, NewModel(newTestManager(t, "home", "work"), applier))

	m = press(m, "down", "enter")

	if len(applied) != 1 || applied[0] != "work" {
		t.Errorf("applied = %v, want [work]", applied)
	}
	if m.active != "work" {
		t.Errorf("active = %q, want %q", m.active, "work")
	}
}

func TestApplyFailureShown(t *testing.T) {
	applier := ApplierFunc(func(name string) error {
		return fmt.Errorf("playlist %q missing", "nature")
	})
	m := loaded(t, NewModel(newTestManager(t, "home"), applier))

	m = press(m, "enter")

	if m.err == nil {
		t.Fatal("apply failure not recorded")
	}
	if m.active != "" {
		t.Errorf("active = %q after failed apply, want empty", m.active)
	}
	if !strings.Contains(m.View(), "missing") {
		t.Error("view does not show the error")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := loaded(t, NewModel(newTestManager(t, "a", "b"), ApplierFunc(func(string) error { return nil })))

	m = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}
	m = press(m, "down", "down", "down")
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down at bottom, want 1", m.cursor)
	}
}

func TestCreateProfile(t *testing.T) {
	mgr := newTestManager(t, "home")
	m := loaded(t, NewModel(mgr, ApplierFunc(func(string) error { return nil })))

	// Applying first makes the new profile inherit the active layout.
	m = press(m, "enter", "n")
	if m.mode != modeCreate {
		t.Fatalf("mode = %v after n, want create", m.mode)
	}

	m = press(m, "getaway")
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if m.err != nil {
		t.Fatalf("create failed: %v", m.err)
	}
	if cmd == nil {
		t.Fatal("create did not trigger a reload")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)

	if len(m.profiles) != 2 {
		t.Errorf("profiles = %v, want [getaway home]", m.profiles)
	}

	created, err := mgr.Load("getaway")
	if err != nil {
		t.Fatalf("Load(getaway) failed: %v", err)
	}
	if len(created.Panels) != 1 {
		t.Errorf("new profile has %d panels, want the active layout's 1", len(created.Panels))
	}
}

func TestCreateEmptyNameRejected(t *testing.T) {
	m := loaded(t, NewModel(newTestManager(t), ApplierFunc(func(string) error { return nil })))

	m = press(m, "n")
	next, _ := m.Update(key("enter"))
	m = next.(Model)

	if m.err == nil {
		t.Error("empty profile name accepted")
	}
	if m.mode != modeCreate {
		t.Error("left create mode despite the error")
	}
}

func TestDeleteRefusesActiveProfile(t *testing.T) {
	m := loaded(t, NewModel(newTestManager(t, "home"), ApplierFunc(func(string) error { return nil })))

	m = press(m, "enter", "d")

	if m.err == nil {
		t.Fatal("deleting the active profile succeeded")
	}
	if len(m.profiles) != 1 {
		t.Errorf("profiles = %v, want the active one kept", m.profiles)
	}
}

func TestDeleteProfile(t *testing.T) {
	mgr := newTestManager(t, "home", "work")
	m := loaded(t, NewModel(mgr, ApplierFunc(func(string) error { return nil })))

	next, cmd := m.Update(key("d"))
	m = next.(Model)
	if m.err != nil {
		t.Fatalf("delete failed: %v", m.err)
	}
	if cmd == nil {
		t.Fatal("delete did not trigger a reload")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)

	if len(m.profiles) != 1 || m.profiles[0] != "work" {
		t.Errorf("profiles = %v, want [work]", m.profiles)
	}

	if _, err := mgr.Load("home"); err == nil {
		t.Error("deleted profile still loads")
	}
}

func TestQuitKeys(t *testing.T) {
	m := loaded(t, NewModel(newTestManager(t), ApplierFunc(func(string) error { return nil })))

	for _, k := range []string{"q", "esc"} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Errorf("key %q did not quit", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q returned %T, want tea.QuitMsg", k, cmd())
		}
	}
}
