package util

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string unchanged", input: "home", maxLen: 10, want: "home"},
		{name: "exact length unchanged", input: "home", maxLen: 4, want: "home"},
		{name: "long string truncated", input: "a very long profile name", maxLen: 10, want: "a very ..."},
		{name: "tiny budget", input: "home", maxLen: 3, want: "..."},
		{name: "unicode counted in runes", input: "héllö wörld", maxLen: 8, want: "héllö..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateANSIPlainText(t *testing.T) {
	if got := TruncateANSI("short", 10); got != "short" {
		t.Errorf("TruncateANSI(short) = %q, want unchanged", got)
	}
	got := TruncateANSI("a very long profile name", 10)
	if lipgloss.Width(got) > 10 {
		t.Errorf("truncated width = %d, want <= 10", lipgloss.Width(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("TruncateANSI result %q missing ellipsis", got)
	}
}

func TestTruncateANSIPreservesStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Render("a very long styled profile name")

	got := TruncateANSI(styled, 12)
	if lipgloss.Width(got) > 12 {
		t.Errorf("truncated width = %d, want <= 12", lipgloss.Width(got))
	}
}
