// Package app wires the screen stack into the root Bubble Tea model:
// header with the signed-in explorer, footer key hints, and the login
// flow that routes students and teachers to their landing screens.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/narrate"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/screens/dashboard"
	"github.com/dmaze/dungeonmaze/internal/screens/home"
	"github.com/dmaze/dungeonmaze/internal/screens/login"
	"github.com/dmaze/dungeonmaze/internal/spelling"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
)

// Options carries the services the screens need.
type Options struct {
	Store    *store.Store
	Narrator *narrate.Narrator // nil when audio is unavailable
	Spell    *spelling.Service
	RNG      *rand.Rand
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	player  string
	teacher bool
	badges  int
}

// screenFactories returns the landing-screen builders for each role plus a
// login factory the logout flow can call. The factories reference each other,
// so they are built together.
func screenFactories(o Options) (loginFactory func() screen.Screen, forStudent, forTeacher login.NextScreen) {
	forStudent = func(u *store.User) screen.Screen {
		return home.New(o.Store, o.Narrator, o.RNG, u, func() screen.Screen { return loginFactory() })
	}
	forTeacher = func(u *store.User) screen.Screen {
		return dashboard.New(o.Store, o.Spell, u, func() screen.Screen { return loginFactory() })
	}
	loginFactory = func() screen.Screen {
		return login.New(o.Store, forStudent, forTeacher)
	}
	return loginFactory, forStudent, forTeacher
}

// newAppModel builds the root model. A remembered current user skips the
// login screen and lands directly on their home or dashboard.
func newAppModel(ctx context.Context, o Options) AppModel {
	loginFactory, forStudent, forTeacher := screenFactories(o)

	m := AppModel{}

	if u, err := o.Store.CurrentUser(ctx); err == nil {
		badges, _ := o.Store.UnlockedAchievements(ctx, u.ID)
		m.player = u.Name
		m.teacher = u.Role == store.RoleTeacher
		m.badges = len(badges)
		if m.teacher {
			m.router = router.New(forTeacher(u))
		} else {
			m.router = router.New(forStudent(u))
		}
		return m
	}

	m.router = router.New(loginFactory())
	return m
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SignedInMsg:
		m.player = msg.Name
		m.teacher = msg.Teacher
		m.badges = msg.Badges
		return m, nil

	case screen.SignedOutMsg:
		m.player = ""
		m.teacher = false
		m.badges = 0
		return m, nil

	case screen.BadgeCountMsg:
		m.badges = msg.Count
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.player, m.badges, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, o Options) error {
	p := tea.NewProgram(newAppModel(ctx, o))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
