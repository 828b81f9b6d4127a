package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type resultsLoadedMsg struct {
	Sessions []*game.Session
	Err      error
}

// ResultsScreen lists a player's past runs, newest first, with an
// expandable per-room review.
type ResultsScreen struct {
	st       *store.Store
	user     *store.User
	sessions []*game.Session
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen for the given player.
func New(st *store.Store, user *store.User) *ResultsScreen {
	return &ResultsScreen{
		st:       st,
		user:     user,
		expanded: make(map[int]bool),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.st.SessionsForUser(context.Background(), s.user.ID)
		return resultsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return s.user.Name + "'s Runs"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
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
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Digging up old maps...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No runs yet. Enter the dungeon!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.PlayedAt.Format("Jan 02, 2006")
		durationStr := fmt.Sprintf("%d:%02d", sess.ElapsedSeconds/60, sess.ElapsedSeconds%60)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s  %d/%d rooms  %s",
			prefix, dateStr, sess.SetName, sess.Mode, sess.Score, sess.TotalRooms, durationStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, r := range sess.Results {
				mark := theme.Correct.Render("✓")
				detail := fmt.Sprintf("    %s %s  %s", mark, r.Question.Prompt, r.UserAnswer)
				if !r.Correct {
					mark = theme.Incorrect.Render("✗")
					detail = fmt.Sprintf("    %s %s  %s  (answer: %s)",
						mark, r.Question.Prompt, r.UserAnswer, r.Question.Answer)
				}
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
