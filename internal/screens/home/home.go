package home

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/narrate"
	"github.com/dmaze/dungeonmaze/internal/quiz"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	badgescreen "github.com/dmaze/dungeonmaze/internal/screens/badges"
	mazescreen "github.com/dmaze/dungeonmaze/internal/screens/game"
	"github.com/dmaze/dungeonmaze/internal/screens/results"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type setsLoadedMsg struct {
	Sets []quiz.QuestionSet
	Err  error
}

// LoginFactory builds a fresh login screen for the logout flow.
type LoginFactory func() screen.Screen

// HomeScreen is the student landing screen: one maze per question set,
// plus runs, badges, and the way out.
type HomeScreen struct {
	st       *store.Store
	narrator *narrate.Narrator
	rng      *rand.Rand
	user     *store.User
	login    LoginFactory

	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for a signed-in student. narrator may be
// nil when no audio device is available.
func New(st *store.Store, narrator *narrate.Narrator, rng *rand.Rand, user *store.User, login LoginFactory) *HomeScreen {
	return &HomeScreen{
		st:       st,
		narrator: narrator,
		rng:      rng,
		user:     user,
		login:    login,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sets, err := h.st.QuestionSets(context.Background())
		return setsLoadedMsg{Sets: sets, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "The Dungeon Gate"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.menu = components.NewMenu(h.buildMenu(msg.Sets))
		h.loaded = true
		return h, nil

	case tea.KeyMsg:
		if !h.loaded {
			return h, nil
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) buildMenu(sets []quiz.QuestionSet) []components.MenuItem {
	var items []components.MenuItem
	for i := range sets {
		set := sets[i]
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("Enter: %s (%s)", set.Name, set.Mode),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: mazescreen.New(h.st, h.narrator, h.user, &set, h.rng),
					}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "My Runs", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: results.New(h.st, h.user)}
			}
		}},
		components.MenuItem{Label: "My Badges", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: badgescreen.New(h.st, h.user)}
			}
		}},
		components.MenuItem{Label: "Switch Explorer", Action: func() tea.Cmd {
			return h.logout()
		}},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

// logout clears the saved player and swaps back to the login screen.
func (h *HomeScreen) logout() tea.Cmd {
	st := h.st
	next := h.login()
	return tea.Batch(
		func() tea.Msg {
			_ = st.ClearCurrentUser(context.Background())
			return screen.SignedOutMsg{}
		},
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		},
	)
}

func (h *HomeScreen) View(width, height int) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", h.errMsg))
	}
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Lighting the torches...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Welcome back, %s!", h.user.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Ten rooms stand between you and the exit."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	return b.String()
}
