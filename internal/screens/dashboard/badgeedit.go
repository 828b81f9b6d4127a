package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/achievements"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type badgeStateMsg struct {
	All      []achievements.Achievement
	Unlocked map[string]bool
	Err      error
}

// badgeEditScreen lets the teacher grant or revoke any badge for one
// student, built-in or custom.
type badgeEditScreen struct {
	st       *store.Store
	student  *store.User
	all      []achievements.Achievement
	unlocked map[string]bool
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*badgeEditScreen)(nil)
var _ screen.KeyHintProvider = (*badgeEditScreen)(nil)

func newBadgeEditScreen(st *store.Store, student *store.User) *badgeEditScreen {
	return &badgeEditScreen{st: st, student: student}
}

func (s *badgeEditScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *badgeEditScreen) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		custom, err := s.st.CustomAchievements(ctx)
		if err != nil {
			return badgeStateMsg{Err: err}
		}
		ids, err := s.st.UnlockedAchievements(ctx, s.student.ID)
		if err != nil {
			return badgeStateMsg{Err: err}
		}
		unlocked := make(map[string]bool, len(ids))
		for _, id := range ids {
			unlocked[id] = true
		}
		all := append(append([]achievements.Achievement{}, achievements.Catalog...), custom...)
		return badgeStateMsg{All: all, Unlocked: unlocked}
	}
}

func (s *badgeEditScreen) Title() string {
	return s.student.Name + "'s Badges"
}

func (s *badgeEditScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Grant/Revoke"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *badgeEditScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgeStateMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.all = msg.All
		s.unlocked = msg.Unlocked
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.all)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.all) {
				return s, s.toggle(s.all[s.selected].ID)
			}
		}
	}
	return s, nil
}

func (s *badgeEditScreen) toggle(id string) tea.Cmd {
	has := s.unlocked[id]
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if has {
			err = s.st.RevokeAchievement(ctx, s.student.ID, id)
		} else {
			err = s.st.UnlockAchievements(ctx, s.student.ID, []string{id})
		}
		if err != nil {
			return badgeStateMsg{Err: err}
		}
		ids, err := s.st.UnlockedAchievements(ctx, s.student.ID)
		if err != nil {
			return badgeStateMsg{Err: err}
		}
		unlocked := make(map[string]bool, len(ids))
		for _, u := range ids {
			unlocked[u] = true
		}
		return badgeStateMsg{All: s.all, Unlocked: unlocked}
	}
}

func (s *badgeEditScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Opening the trophy case...")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.all {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mark := "[ ]"
		if s.unlocked[a.ID] {
			mark = "[✦]"
		}
		line := fmt.Sprintf("%s%s %s  %-18s %s", prefix, mark, a.Icon.Glyph(), a.Title, a.Description)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.unlocked[a.ID] {
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
