package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/screens/setup"
	"github.com/dmaze/dungeonmaze/internal/spelling"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

// LoginFactory builds a fresh login screen for the logout flow.
type LoginFactory func() screen.Screen

// DashboardScreen is the teacher landing screen.
type DashboardScreen struct {
	st    *store.Store
	spell *spelling.Service
	user  *store.User
	login LoginFactory
	menu  components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the teacher dashboard.
func New(st *store.Store, spell *spelling.Service, user *store.User, login LoginFactory) *DashboardScreen {
	d := &DashboardScreen{
		st:    st,
		spell: spell,
		user:  user,
		login: login,
	}
	d.menu = components.NewMenu([]components.MenuItem{
		{Label: "Explorers", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newStudentsScreen(d.st)}
			}
		}},
		{Label: "Question Sets", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(d.st, d.spell)}
			}
		}},
		{Label: "Custom Badges", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newCustomBadgesScreen(d.st)}
			}
		}},
		{Label: "Switch User", Action: func() tea.Cmd {
			return d.logout()
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dungeon Keeper"
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) logout() tea.Cmd {
	st := d.st
	next := d.login()
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

func (d *DashboardScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Keeper of the Dungeon: %s", d.user.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Manage explorers, mazes and badges."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.menu.View()))
	return b.String()
}
