package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jasperwreed/ai-usage/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF"))
	otherStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AAAAAA"))
)

// Browser shows reconstructed conversations in a two-pane terminal UI.
type Browser struct {
	conversations []models.Conversation
	stats         models.UsageStats
}

func NewBrowser(conversations []models.Conversation, stats models.UsageStats) *Browser {
	return &Browser{conversations: conversations, stats: stats}
}

func (b *Browser) Run() error {
	p := tea.NewProgram(newModel(b.conversations, b.stats), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type listItem struct {
	conversation models.Conversation
}

func (i listItem) FilterValue() string {
	return i.conversation.ID + " " + i.conversation.Model + " " + i.conversation.ProjectContext
}

func (i listItem) Title() string {
	return i.conversation.ID
}

func (i listItem) Description() string {
	last := "no timestamp"
	if i.conversation.LastActivity != nil {
		last = *i.conversation.LastActivity
	}
	return fmt.Sprintf("%s | %s | %s tokens | %s",
		i.conversation.Status, i.conversation.Model,
		humanize.Comma(int64(i.conversation.TotalTokens)), last)
}

type model struct {
	list     list.Model
	viewport viewport.Model
	stats    models.UsageStats
	selected *models.Conversation
	width    int
	height   int
	ready    bool
}

func newModel(conversations []models.Conversation, stats models.UsageStats) model {
	items := make([]list.Item, len(conversations))
	for i, conv := range conversations {
		items[i] = listItem{conversation: conv}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("Conversations (%d)", len(conversations))
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	m := model{
		list:     l,
		viewport: viewport.New(0, 0),
		stats:    stats,
	}
	m.viewport.SetContent(renderStats(stats))
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		listWidth := m.width / 3
		m.list.SetSize(listWidth, m.height-2)

		m.viewport.Width = m.width - listWidth - 4
		m.viewport.Height = m.height - 4

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(listItem); ok {
				conv := item.conversation
				m.selected = &conv
				m.viewport.SetContent(renderConversation(conv))
				m.viewport.GotoTop()
			}
			return m, nil

		case "s":
			m.selected = nil
			m.viewport.SetContent(renderStats(m.stats))
			m.viewport.GotoTop()
			return m, nil

		case "pgdown", "pgup", "ctrl+d", "ctrl+u":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func renderConversation(conv models.Conversation) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(conv.ID))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Model: %s\n", conv.Model)
	fmt.Fprintf(&b, "Status: %s\n", conv.Status)
	fmt.Fprintf(&b, "Context: %s\n", conv.ProjectContext)
	fmt.Fprintf(&b, "Tokens: %s\n", humanize.Comma(int64(conv.TotalTokens)))
	if conv.CreatedAt != nil {
		fmt.Fprintf(&b, "Created: %s\n", *conv.CreatedAt)
	}
	if conv.LastActivity != nil {
		fmt.Fprintf(&b, "Last activity: %s\n", *conv.LastActivity)
	}
	if conv.FilePath != "" {
		fmt.Fprintf(&b, "File: %s\n", conv.FilePath)
	}
	b.WriteString("\n" + strings.Repeat("─", 40) + "\n\n")

	for _, msg := range conv.Messages {
		style := otherStyle
		switch msg.Role {
		case "user":
			style = userStyle
		case "assistant":
			style = assistantStyle
		}
		b.WriteString(style.Render(msg.Role))
		fmt.Fprintf(&b, " (%d tokens)\n", msg.Tokens)
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderStats(stats models.UsageStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Usage"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Conversations: %s\n", humanize.Comma(int64(stats.TotalConversations)))
	fmt.Fprintf(&b, "Messages: %s\n", humanize.Comma(int64(stats.TotalMessages)))
	fmt.Fprintf(&b, "Tokens: %s\n", humanize.Comma(int64(stats.TotalTokens)))
	fmt.Fprintf(&b, "Avg tokens/conversation: %.1f\n", stats.AvgTokensPerConversation)
	b.WriteString("\nStatus\n")
	for _, s := range []models.Status{models.StatusActive, models.StatusRecent, models.StatusInactive, models.StatusUnknown} {
		fmt.Fprintf(&b, "  %-9s %d\n", s, stats.Statuses[s])
	}
	b.WriteString("\nSelect a conversation and press enter to view it.\n")
	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	listView := paneStyle.
		Width(m.width/3 - 2).
		Height(m.height - 2).
		Render(m.list.View())

	contentView := paneStyle.
		Width(m.width - m.width/3 - 2).
		Height(m.height - 2).
		Render(m.viewport.View())

	help := helpStyle.Render("  j/k: navigate • enter: open • s: stats • pgup/pgdn: scroll • /: filter • q: quit")

	return lipgloss.JoinHorizontal(lipgloss.Top, listView, contentView) + "\n" + help
}
