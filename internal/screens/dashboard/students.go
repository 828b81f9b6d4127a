package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"charm.land/bubbles/v2/textinput"

	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/screens/results"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type studentsLoadedMsg struct {
	Students []*store.User
	Err      error
}

type studentEditedMsg struct {
	Err error
}

type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputNewName
	inputRename
	inputPassword
)

// studentsScreen manages the roster: create, rename, delete, set a
// password, and jump into a student's run history or badges.
type studentsScreen struct {
	st       *store.Store
	students []*store.User
	selected int
	loaded   bool
	errMsg   string

	purpose       inputPurpose
	input         components.TextInput
	confirmDelete bool
}

var _ screen.Screen = (*studentsScreen)(nil)
var _ screen.KeyHintProvider = (*studentsScreen)(nil)

func newStudentsScreen(st *store.Store) *studentsScreen {
	return &studentsScreen{st: st}
}

func (s *studentsScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *studentsScreen) loadCmd() tea.Cmd {
	return func() tea.Msg {
		users, err := s.st.Users(context.Background())
		if err != nil {
			return studentsLoadedMsg{Err: err}
		}
		var students []*store.User
		for _, u := range users {
			if u.Role == store.RoleStudent {
				students = append(students, u)
			}
		}
		return studentsLoadedMsg{Students: students}
	}
}

func (s *studentsScreen) Title() string {
	return "Explorers"
}

func (s *studentsScreen) KeyHints() []layout.KeyHint {
	if s.purpose != inputNone {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Runs"},
		{Key: "B", Description: "Badges"},
		{Key: "N", Description: "New"},
		{Key: "R", Description: "Rename"},
		{Key: "P", Description: "Password"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *studentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studentsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.students = msg.Students
		s.loaded = true
		if s.selected >= len(s.students) && s.selected > 0 {
			s.selected = len(s.students) - 1
		}
		return s, nil

	case studentEditedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, s.loadCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.purpose != inputNone {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *studentsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.purpose != inputNone {
		switch key {
		case "esc":
			s.purpose = inputNone
			return s, nil
		case "enter":
			return s.applyInput()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.confirmDelete {
		switch key {
		case "y", "Y":
			s.confirmDelete = false
			id := s.students[s.selected].ID
			return s, func() tea.Msg {
				return studentEditedMsg{Err: s.st.DeleteUser(context.Background(), id)}
			}
		case "n", "N", "esc":
			s.confirmDelete = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.students)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(s.students) {
			student := s.students[s.selected]
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: results.New(s.st, student)}
			}
		}
	case "b", "B":
		if s.selected < len(s.students) {
			student := s.students[s.selected]
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: newBadgeEditScreen(s.st, student)}
			}
		}
	case "n", "N":
		s.purpose = inputNewName
		s.input = components.NewTextInput("New explorer's name...", false, 30)
		return s, s.input.Init()
	case "r", "R":
		if s.selected < len(s.students) {
			s.purpose = inputRename
			s.input = components.NewTextInput("New name...", false, 30)
			s.input.Model.SetValue(s.students[s.selected].Name)
			return s, s.input.Init()
		}
	case "p", "P":
		if s.selected < len(s.students) {
			s.purpose = inputPassword
			s.input = components.NewTextInput("New password (empty removes it)...", false, 64)
			s.input.Model.EchoMode = textinput.EchoPassword
			return s, s.input.Init()
		}
	case "d", "D":
		if s.selected < len(s.students) {
			s.confirmDelete = true
		}
	}
	return s, nil
}

func (s *studentsScreen) applyInput() (screen.Screen, tea.Cmd) {
	value := strings.TrimSpace(s.input.Value())
	purpose := s.purpose
	s.purpose = inputNone

	if purpose != inputPassword && value == "" {
		return s, nil
	}

	var target *store.User
	if purpose != inputNewName && s.selected < len(s.students) {
		target = s.students[s.selected]
	}

	return s, func() tea.Msg {
		ctx := context.Background()
		switch purpose {
		case inputNewName:
			_, err := s.st.CreateUser(ctx, value, store.RoleStudent, "")
			return studentEditedMsg{Err: err}
		case inputRename:
			return studentEditedMsg{Err: s.st.RenameUser(ctx, target.ID, value)}
		case inputPassword:
			return studentEditedMsg{Err: s.st.SetUserPassword(ctx, target.ID, value)}
		}
		return studentEditedMsg{}
	}
}

func (s *studentsScreen) View(width, height int) string {
	if s.errMsg != "" && !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Calling the roll...")
	}
	if s.confirmDelete {
		name := s.students[s.selected].Name
		content := theme.Body.Bold(true).Render(fmt.Sprintf("Delete %s?", name)) + "\n\n" +
			theme.Hint.Render("Their runs and badges go too.") + "\n\n" +
			theme.Correct.Render("[Y] Yes, delete") + "\n" +
			theme.Selected.Render("[N] Keep them")
		return components.CenterOverlay(content, width, height)
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.students) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No explorers yet. Press N to add one."))
	}

	for i, u := range s.students {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		lock := ""
		if u.HasPassword() {
			lock = "  🔒"
		}
		line := fmt.Sprintf("%s%s%s", prefix, u.Name, lock)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.purpose != inputNone {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}
