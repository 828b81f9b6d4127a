package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/dmaze/dungeonmaze/internal/achievements"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type customLoadedMsg struct {
	Badges []achievements.Achievement
	Err    error
}

type customSavedMsg struct {
	Err error
}

// customBadgesScreen lets the teacher define extra badges that are
// granted by hand from the badge editor, never by the evaluator.
type customBadgesScreen struct {
	st       *store.Store
	badges   []achievements.Achievement
	selected int
	loaded   bool
	errMsg   string

	editing       bool
	title         components.TextInput
	description   components.TextInput
	iconIdx       int
	focusDesc     bool
	formErr       string
	confirmDelete bool
}

var _ screen.Screen = (*customBadgesScreen)(nil)
var _ screen.KeyHintProvider = (*customBadgesScreen)(nil)

func newCustomBadgesScreen(st *store.Store) *customBadgesScreen {
	return &customBadgesScreen{st: st}
}

func (s *customBadgesScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *customBadgesScreen) loadCmd() tea.Cmd {
	return func() tea.Msg {
		badges, err := s.st.CustomAchievements(context.Background())
		return customLoadedMsg{Badges: badges, Err: err}
	}
}

func (s *customBadgesScreen) Title() string {
	return "Custom Badges"
}

func (s *customBadgesScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next Field"},
			{Key: "←→", Description: "Icon"},
			{Key: "Enter", Description: "Save"},
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
		{Key: "N", Description: "New"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *customBadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case customLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.badges = msg.Badges
		s.loaded = true
		if s.selected >= len(s.badges) && s.selected > 0 {
			s.selected = len(s.badges) - 1
		}
		return s, nil

	case customSavedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, s.loadCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editing {
		return s, s.updateFocused(msg)
	}
	return s, nil
}

func (s *customBadgesScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.focusDesc {
		s.description, cmd = s.description.Update(msg)
	} else {
		s.title, cmd = s.title.Update(msg)
	}
	return cmd
}

func (s *customBadgesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.editing {
		switch key {
		case "esc":
			s.editing = false
			s.formErr = ""
			return s, nil
		case "tab", "shift+tab":
			s.focusDesc = !s.focusDesc
			if s.focusDesc {
				s.title.Model.Blur()
				return s, s.description.Model.Focus()
			}
			s.description.Model.Blur()
			return s, s.title.Model.Focus()
		case "left":
			icons := achievements.Icons()
			s.iconIdx = (s.iconIdx + len(icons) - 1) % len(icons)
			return s, nil
		case "right":
			icons := achievements.Icons()
			s.iconIdx = (s.iconIdx + 1) % len(icons)
			return s, nil
		case "enter":
			return s.save()
		}
		return s, s.updateFocused(msg)
	}

	if s.confirmDelete {
		switch key {
		case "y", "Y":
			s.confirmDelete = false
			id := s.badges[s.selected].ID
			return s, func() tea.Msg {
				return customSavedMsg{Err: s.st.DeleteCustomAchievement(context.Background(), id)}
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
		if s.selected < len(s.badges)-1 {
			s.selected++
		}
	case "n", "N":
		s.editing = true
		s.focusDesc = false
		s.iconIdx = 0
		s.formErr = ""
		s.title = components.NewTextInput("Badge title...", false, 40)
		s.description = components.NewTextInput("What it is for...", false, 80)
		s.description.Model.Blur()
		return s, s.title.Init()
	case "d", "D":
		if s.selected < len(s.badges) {
			s.confirmDelete = true
		}
	}
	return s, nil
}

func (s *customBadgesScreen) save() (screen.Screen, tea.Cmd) {
	title := strings.TrimSpace(s.title.Value())
	if title == "" {
		s.formErr = "The badge needs a title."
		return s, nil
	}
	badge := achievements.Achievement{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(s.description.Value()),
		Icon:        achievements.Icons()[s.iconIdx],
	}
	s.editing = false
	s.formErr = ""
	return s, func() tea.Msg {
		return customSavedMsg{Err: s.st.SaveCustomAchievement(context.Background(), badge)}
	}
}

func (s *customBadgesScreen) View(width, height int) string {
	if s.errMsg != "" && !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Polishing the trophies...")
	}
	if s.editing {
		return s.viewForm(width, height)
	}
	if s.confirmDelete {
		title := s.badges[s.selected].Title
		content := theme.Body.Bold(true).Render(fmt.Sprintf("Delete %q?", title)) + "\n\n" +
			theme.Hint.Render("Students who earned it lose it.") + "\n\n" +
			theme.Correct.Render("[Y] Yes, delete") + "\n" +
			theme.Selected.Render("[N] Keep it")
		return components.CenterOverlay(content, width, height)
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.badges) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No custom badges yet. Press N to forge one."))
		b.WriteString("\n")
	}

	for i, a := range s.badges {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-18s %s", prefix, a.Icon.Glyph(), a.Title, a.Description)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

func (s *customBadgesScreen) viewForm(width, height int) string {
	icons := achievements.Icons()
	icon := icons[s.iconIdx]

	var rows []string
	rows = append(rows, theme.Body.Bold(true).Render("Forge a new badge"))
	rows = append(rows, "")
	rows = append(rows, theme.Hint.Render("Title")+"\n"+s.title.View())
	rows = append(rows, theme.Hint.Render("Description")+"\n"+s.description.View())
	rows = append(rows, theme.Hint.Render("Icon")+"\n"+
		fmt.Sprintf("← %s %s →", icon.Glyph(), icon))
	if s.formErr != "" {
		rows = append(rows, theme.Incorrect.Render(s.formErr))
	}

	return components.CenterOverlay(strings.Join(rows, "\n"), width, height)
}
