package setup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/google/uuid"

	"github.com/dmaze/dungeonmaze/internal/quiz"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/spelling"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeEdit
	modeConfirmDelete
	modeSaving
)

type setsLoadedMsg struct {
	Sets []quiz.QuestionSet
	Err  error
}

type setSavedMsg struct {
	Err error
}

// field indexes into the edit form. The tail differs by mode.
const (
	fieldName = iota
	fieldCountdown
	fieldRequire
	fieldFirstModal // tables / words
)

// SetupScreen is the teacher's question-set editor: list, create, edit
// and delete sets of either mode.
type SetupScreen struct {
	st    *store.Store
	spell *spelling.Service

	mode     mode
	sets     []quiz.QuestionSet
	selected int
	loaded   bool
	errMsg   string

	// edit state
	editing   *quiz.QuestionSet
	focus     int
	require   bool
	name      components.TextInput
	countdown components.TextInput
	tables    components.TextInput
	ops       components.TextInput
	equations components.TextInput
	words     components.TextInput
	formErr   string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the question-set editor.
func New(st *store.Store, spell *spelling.Service) *SetupScreen {
	return &SetupScreen{st: st, spell: spell}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *SetupScreen) loadCmd() tea.Cmd {
	return func() tea.Msg {
		sets, err := s.st.QuestionSets(context.Background())
		return setsLoadedMsg{Sets: sets, Err: err}
	}
}

func (s *SetupScreen) Title() string {
	return "Question Sets"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeEdit:
		return []layout.KeyHint{
			{Key: "Tab/↓", Description: "Next field"},
			{Key: "Ctrl+S", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Edit"},
			{Key: "M", Description: "New math set"},
			{Key: "S", Description: "New spelling set"},
			{Key: "D", Description: "Delete"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sets = msg.Sets
		s.loaded = true
		if s.selected >= len(s.sets) && s.selected > 0 {
			s.selected = len(s.sets) - 1
		}
		return s, nil

	case setSavedMsg:
		if msg.Err != nil {
			s.mode = modeEdit
			s.formErr = msg.Err.Error()
			return s, nil
		}
		s.mode = modeList
		s.editing = nil
		return s, s.loadCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeList:
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sets)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.sets) {
				set := s.sets[s.selected]
				s.startEdit(&set)
				return s, s.name.Init()
			}
		case "m", "M":
			s.startEdit(&quiz.QuestionSet{Mode: quiz.ModeMath})
			return s, s.name.Init()
		case "s", "S":
			s.startEdit(&quiz.QuestionSet{Mode: quiz.ModeSpelling})
			return s, s.name.Init()
		case "d", "D":
			if s.selected < len(s.sets) {
				s.mode = modeConfirmDelete
			}
		}
		return s, nil

	case modeConfirmDelete:
		switch key {
		case "y", "Y":
			s.mode = modeList
			id := s.sets[s.selected].ID
			return s, func() tea.Msg {
				if err := s.st.DeleteQuestionSet(context.Background(), id); err != nil {
					return setsLoadedMsg{Err: err}
				}
				sets, err := s.st.QuestionSets(context.Background())
				return setsLoadedMsg{Sets: sets, Err: err}
			}
		case "n", "N", "esc":
			s.mode = modeList
		}
		return s, nil

	case modeEdit:
		switch key {
		case "esc":
			s.mode = modeList
			s.editing = nil
			s.formErr = ""
			return s, nil
		case "tab", "down":
			s.moveFocus(1)
			return s, s.focusCmd()
		case "shift+tab", "up":
			s.moveFocus(-1)
			return s, s.focusCmd()
		case "ctrl+s":
			return s.save()
		case "enter":
			if s.focus == fieldRequire {
				s.require = !s.require
				return s, nil
			}
			if s.focus == s.lastField() {
				return s.save()
			}
			s.moveFocus(1)
			return s, s.focusCmd()
		}
		return s.forward(msg)

	case modeSaving:
		return s, nil
	}

	return s, nil
}

// startEdit populates the form from a set (zero-valued for a new one).
func (s *SetupScreen) startEdit(set *quiz.QuestionSet) {
	s.mode = modeEdit
	s.editing = set
	s.focus = fieldName
	s.formErr = ""
	s.require = set.MustAnswerCorrectly()

	s.name = components.NewTextInput("Set name...", false, 40)
	s.name.Model.SetValue(set.Name)
	s.countdown = components.NewTextInput("0 = no timer", true, 3)
	if set.CountdownSeconds > 0 {
		s.countdown.Model.SetValue(strconv.Itoa(set.CountdownSeconds))
	}
	s.tables = components.NewTextInput("e.g. 2, 5, 10", false, 40)
	s.tables.Model.SetValue(tablesString(set.TimesTables))
	s.ops = components.NewTextInput("e.g. +, -, x, ÷, ^, √", false, 40)
	s.ops.Model.SetValue(operationsString(set.Operations))
	s.equations = components.NewTextInput("e.g. 7 + 3 = 10; 6 x 4 = 24", false, 200)
	s.equations.Model.SetValue(equationsString(set.CustomEquations))
	s.words = components.NewTextInput("e.g. beautiful, because", false, 200)
	s.words.Model.SetValue(wordsString(set.Words))
}

func (s *SetupScreen) lastField() int {
	if s.editing.Mode == quiz.ModeSpelling {
		return fieldFirstModal // words
	}
	return fieldFirstModal + 2 // tables, ops, equations
}

func (s *SetupScreen) moveFocus(delta int) {
	s.focus += delta
	if s.focus < 0 {
		s.focus = s.lastField()
	}
	if s.focus > s.lastField() {
		s.focus = 0
	}
}

func (s *SetupScreen) focusCmd() tea.Cmd {
	if in := s.focusedInput(); in != nil {
		return in.Init()
	}
	return nil
}

func (s *SetupScreen) focusedInput() *components.TextInput {
	switch s.focus {
	case fieldName:
		return &s.name
	case fieldCountdown:
		return &s.countdown
	case fieldRequire:
		return nil
	}
	if s.editing.Mode == quiz.ModeSpelling {
		return &s.words
	}
	switch s.focus {
	case fieldFirstModal:
		return &s.tables
	case fieldFirstModal + 1:
		return &s.ops
	default:
		return &s.equations
	}
}

func (s *SetupScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.mode != modeEdit {
		return s, nil
	}
	in := s.focusedInput()
	if in == nil {
		return s, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return s, cmd
}

// save validates the form and persists the set, generating misspellings
// for any new words first.
func (s *SetupScreen) save() (screen.Screen, tea.Cmd) {
	set, err := s.buildSet()
	if err != nil {
		s.formErr = err.Error()
		return s, nil
	}

	s.mode = modeSaving
	s.formErr = ""
	return s, func() tea.Msg {
		ctx := context.Background()
		if set.Mode == quiz.ModeSpelling {
			s.fillMisspellings(ctx, set)
		}
		return setSavedMsg{Err: s.st.SaveQuestionSet(ctx, set)}
	}
}

func (s *SetupScreen) buildSet() (*quiz.QuestionSet, error) {
	name := strings.TrimSpace(s.name.Value())
	if name == "" {
		return nil, fmt.Errorf("the set needs a name")
	}

	countdown := 0
	if v := strings.TrimSpace(s.countdown.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("countdown must be a number of seconds")
		}
		countdown = n
	}

	set := &quiz.QuestionSet{
		ID:               s.editing.ID,
		Name:             name,
		Mode:             s.editing.Mode,
		CountdownSeconds: countdown,
	}
	if set.ID == "" {
		set.ID = uuid.NewString()
	}
	require := s.require
	set.RequireCorrect = &require

	if set.Mode == quiz.ModeSpelling {
		words := parseWords(s.words.Value())
		if len(words) == 0 {
			return nil, fmt.Errorf("add at least one word")
		}
		for _, w := range words {
			set.Words = append(set.Words, s.existingWord(w))
		}
		return set, nil
	}

	var err error
	if set.TimesTables, err = parseTables(s.tables.Value()); err != nil {
		return nil, err
	}
	if set.Operations, err = parseOperations(s.ops.Value()); err != nil {
		return nil, err
	}
	if set.CustomEquations, err = parseEquations(s.equations.Value()); err != nil {
		return nil, err
	}
	return set, nil
}

// existingWord reuses the stored misspellings when a word was already in
// the set, so editing a set doesn't regenerate everything.
func (s *SetupScreen) existingWord(correct string) quiz.Word {
	for _, w := range s.editing.Words {
		if strings.EqualFold(w.Correct, correct) {
			return w
		}
	}
	return quiz.Word{Correct: correct}
}

// fillMisspellings generates options for words that don't have any yet.
func (s *SetupScreen) fillMisspellings(ctx context.Context, set *quiz.QuestionSet) {
	if s.spell == nil {
		return
	}
	for i, w := range set.Words {
		if len(w.Incorrect) == 0 {
			set.Words[i].Incorrect = s.spell.Misspellings(ctx, w.Correct)
		}
	}
}

func (s *SetupScreen) View(width, height int) string {
	switch s.mode {
	case modeEdit:
		return s.viewEdit(width)
	case modeSaving:
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Conjuring misspellings and saving...")
	case modeConfirmDelete:
		name := s.sets[s.selected].Name
		content := theme.Body.Bold(true).Render(fmt.Sprintf("Delete %q?", name)) + "\n\n" +
			theme.Correct.Render("[Y] Yes, delete") + "\n" +
			theme.Selected.Render("[N] Keep it")
		return components.CenterOverlay(content, width, height)
	default:
		return s.viewList(width)
	}
}

func (s *SetupScreen) viewList(width int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sets...")
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(s.sets) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No question sets yet. Press M or S to create one."))
		return b.String()
	}

	for i, set := range s.sets {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		detail := describeSet(&set)
		line := fmt.Sprintf("%s%-24s %-9s %s", prefix, set.Name, set.Mode, detail)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func describeSet(set *quiz.QuestionSet) string {
	var parts []string
	if set.Mode == quiz.ModeSpelling {
		parts = append(parts, fmt.Sprintf("%d words", len(set.Words)))
	} else {
		if len(set.TimesTables) > 0 {
			parts = append(parts, "tables "+tablesString(set.TimesTables))
		}
		if len(set.Operations) > 0 {
			parts = append(parts, operationsString(set.Operations))
		}
		if len(set.CustomEquations) > 0 {
			parts = append(parts, fmt.Sprintf("%d custom", len(set.CustomEquations)))
		}
	}
	if set.CountdownSeconds > 0 {
		parts = append(parts, fmt.Sprintf("⌛ %ds", set.CountdownSeconds))
	}
	return strings.Join(parts, "  ")
}

func (s *SetupScreen) viewEdit(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	title := "Edit " + string(s.editing.Mode) + " Set"
	if s.editing.ID == "" {
		title = "New " + string(s.editing.Mode) + " Set"
	}
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	type formRow struct {
		label string
		field int
		view  string
	}
	rows := []formRow{
		{"Name", fieldName, s.name.View()},
		{"Countdown (s)", fieldCountdown, s.countdown.View()},
		{"Must answer correctly", fieldRequire, checkbox(s.require)},
	}
	if s.editing.Mode == quiz.ModeSpelling {
		rows = append(rows, formRow{"Words", fieldFirstModal, s.words.View()})
	} else {
		rows = append(rows,
			formRow{"Times tables", fieldFirstModal, s.tables.View()},
			formRow{"Operations", fieldFirstModal + 1, s.ops.View()},
			formRow{"Custom equations", fieldFirstModal + 2, s.equations.View()},
		)
	}

	for _, row := range rows {
		label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(22).Render(row.label)
		if row.field == s.focus {
			label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(22).Render("▸ " + row.label)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, label+"  "+row.view))
		b.WriteString("\n")
	}

	if s.formErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(s.formErr)))
	}

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return theme.Correct.Render("[x]")
	}
	return theme.Body.Render("[ ]")
}
