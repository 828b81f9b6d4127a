package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type mode int

const (
	modePick mode = iota
	modeNewName
	modePassword
)

type usersLoadedMsg struct {
	Users []*store.User
	Err   error
}

type signedInMsg struct {
	User   *store.User
	Badges int
	Err    error
}

// NextScreen builds the screen a signed-in user lands on.
type NextScreen func(user *store.User) screen.Screen

// LoginScreen picks or creates the active player. Students sign in by
// name (plus password when one is set); the teacher account always
// requires its passcode.
type LoginScreen struct {
	st         *store.Store
	forStudent NextScreen
	forTeacher NextScreen

	users    []*store.User
	loaded   bool
	mode     mode
	selected int
	pending  *store.User
	name     components.TextInput
	password components.TextInput
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen. forStudent and forTeacher build the
// destination screen for the signed-in user.
func New(st *store.Store, forStudent, forTeacher NextScreen) *LoginScreen {
	return &LoginScreen{
		st:         st,
		forStudent: forStudent,
		forTeacher: forTeacher,
		name:       components.NewTextInput("Your name...", false, 30),
		password:   components.NewTextInput("Password...", false, 64),
	}
}

func (s *LoginScreen) Title() string {
	return "Who goes there?"
}

func (s *LoginScreen) Init() tea.Cmd {
	return func() tea.Msg {
		users, err := s.st.Users(context.Background())
		return usersLoadedMsg{Users: users, Err: err}
	}
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modePick:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Sign in"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.users = msg.Users
		s.loaded = true
		return s, nil

	case signedInMsg:
		if msg.Err != nil {
			s.errMsg = friendlyAuthError(msg.Err)
			s.password.Model.SetValue("")
			return s, nil
		}
		return s, s.enter(msg.User, msg.Badges)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modePick:
		switch key {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.users) {
				s.selected++
			}
		case "enter":
			s.errMsg = ""
			if s.selected == len(s.users) {
				s.mode = modeNewName
				s.name = components.NewTextInput("Your name...", false, 30)
				return s, s.name.Init()
			}
			u := s.users[s.selected]
			if u.Role == store.RoleTeacher || u.HasPassword() {
				s.pending = u
				s.mode = modePassword
				s.password = components.NewTextInput(passwordPrompt(u), false, 64)
				s.password.Model.EchoMode = textinput.EchoPassword
				return s, s.password.Init()
			}
			return s, s.signIn(u.Name, "")
		}
		return s, nil

	case modeNewName:
		switch key {
		case "esc":
			s.mode = modePick
			s.errMsg = ""
			return s, nil
		case "enter":
			name := strings.TrimSpace(s.name.Value())
			if name == "" {
				s.errMsg = "Every explorer needs a name."
				return s, nil
			}
			return s, s.createStudent(name)
		}

	case modePassword:
		switch key {
		case "esc":
			s.mode = modePick
			s.pending = nil
			s.errMsg = ""
			return s, nil
		case "enter":
			if s.pending == nil {
				s.mode = modePick
				return s, nil
			}
			return s, s.signIn(s.pending.Name, s.password.Value())
		}
	}

	return s.forward(msg)
}

func (s *LoginScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.mode {
	case modeNewName:
		s.name, cmd = s.name.Update(msg)
	case modePassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

// signIn authenticates and loads the badge count for the header.
func (s *LoginScreen) signIn(name, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		u, err := s.st.Authenticate(ctx, name, password)
		if err != nil {
			return signedInMsg{Err: err}
		}
		if err := s.st.SetCurrentUser(ctx, u.ID); err != nil {
			return signedInMsg{Err: err}
		}
		unlocked, _ := s.st.UnlockedAchievements(ctx, u.ID)
		return signedInMsg{User: u, Badges: len(unlocked)}
	}
}

// createStudent registers a new passwordless student and signs them in.
func (s *LoginScreen) createStudent(name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		u, err := s.st.CreateUser(ctx, name, store.RoleStudent, "")
		if err != nil {
			return signedInMsg{Err: err}
		}
		if err := s.st.SetCurrentUser(ctx, u.ID); err != nil {
			return signedInMsg{Err: err}
		}
		return signedInMsg{User: u}
	}
}

func (s *LoginScreen) enter(u *store.User, badges int) tea.Cmd {
	var next screen.Screen
	if u.Role == store.RoleTeacher {
		next = s.forTeacher(u)
	} else {
		next = s.forStudent(u)
	}
	return tea.Batch(
		func() tea.Msg {
			return screen.SignedInMsg{Name: u.Name, Teacher: u.Role == store.RoleTeacher, Badges: badges}
		},
		func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		},
	)
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("⚔ DUNGEON MAZE ⚔"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Answer well, and the doors will open."))
	b.WriteString("\n\n")

	switch s.mode {
	case modeNewName:
		b.WriteString(centered(width, theme.Body.Render("What shall we call you?")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, s.name.View()))

	case modePassword:
		prompt := "Password for " + s.pending.Name
		if s.pending.Role == store.RoleTeacher {
			prompt = "Teacher passcode"
		}
		b.WriteString(centered(width, theme.Body.Render(prompt)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, s.password.View()))

	default:
		if !s.loaded {
			b.WriteString(centered(width, theme.Hint.Render("Opening the gate...")))
			break
		}
		for i, u := range s.users {
			label := u.Name
			if u.Role == store.RoleTeacher {
				label += "  (teacher)"
			}
			b.WriteString(centered(width, menuLine(label, i == s.selected)))
			b.WriteString("\n")
		}
		b.WriteString(centered(width, menuLine("+ New explorer", s.selected == len(s.users))))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

func menuLine(label string, selected bool) string {
	if selected {
		return theme.Selected.Render("▸ " + label)
	}
	return theme.Unselected.Render("  " + label)
}

func centered(width int, content string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func passwordPrompt(u *store.User) string {
	if u.Role == store.RoleTeacher {
		return "Passcode..."
	}
	return "Password..."
}

func friendlyAuthError(err error) string {
	switch {
	case errors.Is(err, store.ErrBadCredentials):
		return "That password doesn't open this door."
	case errors.Is(err, store.ErrNotFound):
		return "No explorer by that name."
	default:
		return fmt.Sprintf("Sign-in failed: %v", err)
	}
}
