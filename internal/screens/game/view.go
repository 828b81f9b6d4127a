package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	gamestate "github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/quiz"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	switch {
	case s.confirmQuit:
		return s.renderQuitConfirm(width, height)
	case s.state.Phase == gamestate.PhaseFinished:
		if s.reviewing {
			return s.renderReview(width)
		}
		return s.renderSummary(width, height)
	case s.state.Paused:
		return s.renderPaused(width, height)
	default:
		return s.renderRoom(width)
	}
}

// renderRoom draws the active room: status line, room progress, prompt,
// and the four doors.
func (s *GameScreen) renderRoom(width int) string {
	state := s.state
	q := state.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Room %d of %d", state.Room+1, len(state.Questions)))

	clock := fmt.Sprintf("%d:%02d", state.Elapsed/60, state.Elapsed%60)
	rightParts := fmt.Sprintf("✦ %d   %s", state.Score(), clock)
	if state.Set.CountdownSeconds > 0 {
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if state.Countdown <= 5 {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		rightParts += "   " + style.Render(fmt.Sprintf("⌛ %ds", state.Countdown))
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(rightParts)

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")

	progress := components.NewProgressBar("", float64(state.Room)/float64(len(state.Questions)), false, width-8)
	b.WriteString("    " + progress.View())
	b.WriteString("\n\n")

	prompt := q.Prompt
	if q.Mode == quiz.ModeSpelling {
		prompt = "🔊 " + prompt
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(prompt))
	b.WriteString("\n\n")

	b.WriteString(s.doors.View(width))

	if state.Phase == gamestate.PhaseFeedback {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedbackLine(width))
	}

	return b.String()
}

// renderFeedbackLine shows the verdict under the revealed doors.
func (s *GameScreen) renderFeedbackLine(width int) string {
	state := s.state
	if state.LastCorrect {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("The door swings open!")
	}

	last := state.Results[len(state.Results)-1]
	verdict := "A locked door!"
	if last.UserAnswer == quiz.TimedOutAnswer {
		verdict = "Too slow — the torch went out!"
	}
	line := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(verdict)
	if !state.Set.MustAnswerCorrectly() {
		line += lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  The answer was %s.", last.Question.Answer))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *GameScreen) renderPaused(width, height int) string {
	content := theme.Title.Render("Paused") + "\n\n" +
		theme.Body.Render("The maze waits for you.") + "\n\n" +
		theme.Hint.Render("press P to continue")
	return components.CenterOverlay(content, width, height)
}

func (s *GameScreen) renderQuitConfirm(width, height int) string {
	content := theme.Body.Bold(true).Render("Leave the maze?") + "\n\n" +
		theme.Hint.Render("This run will not be saved.") + "\n\n" +
		theme.Correct.Render("[Y] Yes, leave") + "\n" +
		theme.Selected.Render("[N] Keep exploring")
	return components.CenterOverlay(content, width, height)
}

// renderSummary shows the end-of-run card with score, time and any new
// badges.
func (s *GameScreen) renderSummary(width, height int) string {
	state := s.state
	score := state.Score()
	total := len(state.Questions)

	var b strings.Builder
	b.WriteString(theme.Title.Render("You escaped the dungeon!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score  %d / %d", score, total)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Time   %d:%02d", state.Elapsed/60, state.Elapsed%60)))
	b.WriteString("\n")

	switch {
	case s.saveErr != "":
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Couldn't save this run: " + s.saveErr))
	case s.saved == nil:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Recording your run..."))
	case len(s.newBadges) > 0:
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render("New badges!"))
		b.WriteString("\n")
		for _, a := range s.newBadges {
			b.WriteString(theme.Body.Render(fmt.Sprintf("%s %s  %s", a.Icon.Glyph(), a.Title, a.Description)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("R review answers · Esc done"))

	return components.CenterOverlay(b.String(), width, height)
}

// renderReview lists every attempt of the run.
func (s *GameScreen) renderReview(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Your journey"))
	b.WriteString("\n\n")

	for i, r := range s.state.Results {
		mark := theme.Correct.Render("✓")
		detail := r.Question.Prompt + "  " + r.UserAnswer
		if !r.Correct {
			mark = theme.Incorrect.Render("✗")
			detail += lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("  (answer: %s)", r.Question.Answer))
		}
		line := fmt.Sprintf("%2d. %s  %s", i+1, mark, detail)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}
