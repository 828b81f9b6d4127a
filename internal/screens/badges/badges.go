package badges

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

type badgesLoadedMsg struct {
	Unlocked map[string]bool
	Custom   []achievements.Achievement
	Err      error
}

// BadgesScreen shows every badge, earned ones lit up, the rest dimmed
// with their unlock condition as a goad.
type BadgesScreen struct {
	st       *store.Store
	user     *store.User
	unlocked map[string]bool
	custom   []achievements.Achievement
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a badge gallery for the given player.
func New(st *store.Store, user *store.User) *BadgesScreen {
	return &BadgesScreen{st: st, user: user}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		ids, err := s.st.UnlockedAchievements(ctx, s.user.ID)
		if err != nil {
			return badgesLoadedMsg{Err: err}
		}
		custom, err := s.st.CustomAchievements(ctx)
		if err != nil {
			return badgesLoadedMsg{Err: err}
		}
		unlocked := make(map[string]bool, len(ids))
		for _, id := range ids {
			unlocked[id] = true
		}
		return badgesLoadedMsg{Unlocked: unlocked, Custom: custom}
	}
}

func (s *BadgesScreen) Title() string {
	return "Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.unlocked = msg.Unlocked
			s.custom = msg.Custom
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *BadgesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Polishing the trophy shelf...")
	}

	var b strings.Builder
	b.WriteString("\n")

	earned := 0
	all := append(append([]achievements.Achievement{}, achievements.Catalog...), s.custom...)
	for _, a := range all {
		if s.unlocked[a.ID] {
			earned++
		}
	}
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d of %d earned", earned, len(all))))
	b.WriteString("\n\n")

	for _, a := range all {
		line := fmt.Sprintf("%s  %-18s %s", a.Icon.Glyph(), a.Title, a.Description)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.unlocked[a.ID] {
			style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
