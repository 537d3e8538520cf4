package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasperwreed/ai-usage/internal/models"
)

func ptr(s string) *string { return &s }

func sampleConversations() []models.Conversation {
	return []models.Conversation{
		{
			ID:             "session-a",
			Model:          "opus",
			TotalTokens:    1500,
			Status:         models.StatusRecent,
			ProjectContext: "python",
			LastActivity:   ptr("2024-01-01T10:00:00Z"),
			Messages: []models.Message{
				{Role: "user", Content: "write a parser", Tokens: 4},
				{Role: "assistant", Content: "[Tool: Bash]", Tokens: 1496},
			},
		},
		{ID: "session-b", Model: "unknown", Status: models.StatusUnknown},
	}
}

func TestListItem(t *testing.T) {
	convs := sampleConversations()
	item := listItem{conversation: convs[0]}

	if item.Title() != "session-a" {
		t.Errorf("Title() = %q", item.Title())
	}
	desc := item.Description()
	for _, want := range []string{"recent", "opus", "1,500 tokens", "2024-01-01T10:00:00Z"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Description() = %q, missing %q", desc, want)
		}
	}
	if !strings.Contains(listItem{conversation: convs[1]}.Description(), "no timestamp") {
		t.Error("untimed conversation should say so")
	}
	if !strings.Contains(item.FilterValue(), "python") {
		t.Errorf("FilterValue() = %q", item.FilterValue())
	}
}

func TestRenderConversation(t *testing.T) {
	out := renderConversation(sampleConversations()[0])
	for _, want := range []string{"session-a", "Model: opus", "Tokens: 1,500", "write a parser", "[Tool: Bash]", "(1496 tokens)"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderConversation() missing %q", want)
		}
	}
}

func TestModelSelectAndQuit(t *testing.T) {
	m := newModel(sampleConversations(), models.UsageStats{TotalConversations: 2})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(model)
	if !m.ready {
		t.Fatal("model should be ready after a window size message")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)
	if m.selected == nil || m.selected.ID != "session-a" {
		t.Fatalf("enter should select the first conversation, got %+v", m.selected)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = updated.(model)
	if m.selected != nil {
		t.Error("s should return to the stats view")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	if !strings.Contains(m.View(), "Conversations (2)") {
		t.Error("View() should show the list title")
	}
}
