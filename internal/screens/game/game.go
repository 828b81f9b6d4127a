package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dmaze/dungeonmaze/internal/achievements"
	gamestate "github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/narrate"
	"github.com/dmaze/dungeonmaze/internal/quiz"
	"github.com/dmaze/dungeonmaze/internal/router"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
	"github.com/dmaze/dungeonmaze/internal/ui/layout"
)

const (
	// feedbackDelay is how long the answer reveal stays up before the
	// run moves on.
	feedbackDelay = 700 * time.Millisecond

	// narrateDelay is how long after entering a room the word is spoken,
	// so the reveal of the previous room isn't talked over.
	narrateDelay = 700 * time.Millisecond
)

// GameScreen drives one maze run: the tick loop, door picks, feedback,
// narration, pause, and the end-of-run summary.
type GameScreen struct {
	st       *store.Store
	narrator *narrate.Narrator
	user     *store.User
	state    *gamestate.State
	doors    components.Doors

	// epoch tags the tick loop; abandoning a run orphans its ticks.
	epoch int

	muted       bool
	confirmQuit bool
	reviewing   bool

	saved      *gamestate.Session
	newBadges  []achievements.Achievement
	badgeTotal int
	saveErr    string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)

// New starts a run of the given set. narrator may be nil when no audio
// device is available; the run is then silent.
func New(st *store.Store, narrator *narrate.Narrator, user *store.User, set *quiz.QuestionSet, rng *rand.Rand) *GameScreen {
	state := gamestate.Start(set, rng)
	s := &GameScreen{
		st:       st,
		narrator: narrator,
		user:     user,
		state:    state,
	}
	s.doors = doorsFor(state.Current())
	return s
}

func (s *GameScreen) Title() string {
	return s.state.Set.Name
}

func (s *GameScreen) Init() tea.Cmd {
	return tea.Batch(
		s.tickCmd(),
		s.narrateCmd(),
	)
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave the maze"},
			{Key: "N", Description: "Keep exploring"},
		}
	case s.state.Phase == gamestate.PhaseFinished:
		if s.reviewing {
			return []layout.KeyHint{
				{Key: "R", Description: "Summary"},
				{Key: "Esc", Description: "Done"},
			}
		}
		return []layout.KeyHint{
			{Key: "R", Description: "Review answers"},
			{Key: "Esc", Description: "Done"},
		}
	case s.state.Paused:
		return []layout.KeyHint{
			{Key: "P", Description: "Resume"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		hints := []layout.KeyHint{
			{Key: "↑→↓←", Description: "Walk to a door"},
			{Key: "Enter", Description: "Open it"},
			{Key: "P", Description: "Pause"},
		}
		if s.state.Set.Mode == quiz.ModeSpelling {
			hints = append(hints, layout.KeyHint{Key: "M", Description: "Mute"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)
	case feedbackDoneMsg:
		return s.handleFeedbackDone(msg)
	case narrateMsg:
		return s.handleNarrate(msg)
	case runSavedMsg:
		return s.handleSaved(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *GameScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Epoch != s.epoch || s.state.Phase == gamestate.PhaseFinished {
		return s, nil
	}
	if s.state.Tick() {
		s.stopSpeech()
		s.state.TimeOut()
		return s, tea.Batch(s.tickCmd(), s.feedbackCmd())
	}
	return s, s.tickCmd()
}

func (s *GameScreen) handleFeedbackDone(msg feedbackDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Room != s.state.Room || s.state.Phase != gamestate.PhaseFeedback {
		return s, nil
	}
	prev := s.state.Room
	s.state.ResolveFeedback()

	if s.state.Phase == gamestate.PhaseFinished {
		s.stopSpeech()
		return s, s.saveCmd()
	}

	// New room, or the same room again under the retry policy. Either
	// way the doors reset.
	s.doors = doorsFor(s.state.Current())
	if s.state.Room != prev {
		return s, s.narrateCmd()
	}
	return s, nil
}

func (s *GameScreen) handleNarrate(msg narrateMsg) (screen.Screen, tea.Cmd) {
	if msg.Room != s.state.Room || s.state.Phase == gamestate.PhaseFinished || s.muted {
		return s, nil
	}
	q := s.state.Current()
	if q == nil || q.Mode != quiz.ModeSpelling || s.narrator == nil {
		return s, nil
	}
	word := q.Answer
	n := s.narrator
	return s, func() tea.Msg {
		if err := n.Speak(context.Background(), word); err != nil {
			fmt.Fprintf(os.Stderr, "warning: narration failed: %v\n", err)
		}
		return nil
	}
}

func (s *GameScreen) handleSaved(msg runSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.saveErr = msg.Err.Error()
		return s, nil
	}
	s.saved = msg.Session
	s.newBadges = msg.badgeList()
	s.badgeTotal = msg.BadgeTotal
	return s, func() tea.Msg {
		return screen.BadgeCountMsg{Count: msg.BadgeTotal}
	}
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirmQuit = false
			if s.state.Paused {
				s.togglePause()
			}
		}
		return s, nil
	}

	if s.state.Phase == gamestate.PhaseFinished {
		switch key {
		case "r", "R":
			s.reviewing = !s.reviewing
		case "esc", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		// Pause the clock while the player decides.
		if !s.state.Paused {
			s.togglePause()
		}
		s.confirmQuit = true
		return s, nil
	case "p", "P":
		s.togglePause()
		return s, nil
	case "m", "M":
		s.toggleMute()
		return s, nil
	}

	if s.state.Paused || s.state.Phase != gamestate.PhasePlaying {
		return s, nil
	}

	var cmd tea.Cmd
	s.doors, cmd = s.doors.Update(msg)
	if s.doors.Submitted {
		s.stopSpeech()
		s.state.Submit(s.doors.Chosen())
		return s, s.feedbackCmd()
	}
	return s, cmd
}

func (s *GameScreen) togglePause() {
	if s.state.Paused {
		s.state.Resume()
	} else {
		s.state.Pause()
	}
	if s.narrator != nil {
		s.narrator.SetGamePaused(s.state.Paused)
	}
}

func (s *GameScreen) toggleMute() {
	s.muted = !s.muted
	if s.narrator == nil {
		return
	}
	if s.muted {
		s.narrator.PauseUtterance()
	} else {
		s.narrator.ResumeUtterance()
	}
}

func (s *GameScreen) stopSpeech() {
	if s.narrator != nil {
		s.narrator.Stop()
	}
}

// abandon leaves the maze without recording anything.
func (s *GameScreen) abandon() tea.Cmd {
	s.stopSpeech()
	s.epoch++
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *GameScreen) tickCmd() tea.Cmd {
	epoch := s.epoch
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Epoch: epoch}
	})
}

func (s *GameScreen) feedbackCmd() tea.Cmd {
	room := s.state.Room
	return tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{Room: room}
	})
}

func (s *GameScreen) narrateCmd() tea.Cmd {
	if s.state.Set.Mode != quiz.ModeSpelling || s.narrator == nil {
		return nil
	}
	room := s.state.Room
	return tea.Tick(narrateDelay, func(time.Time) tea.Msg {
		return narrateMsg{Room: room}
	})
}

// saveCmd persists the finished run, evaluates badges, and unlocks the
// new ones.
func (s *GameScreen) saveCmd() tea.Cmd {
	sess := s.state.Finish(s.user.ID)
	if sess == nil {
		return nil
	}
	st := s.st
	return func() tea.Msg {
		ctx := context.Background()
		if err := st.AppendSession(ctx, sess); err != nil {
			return runSavedMsg{Err: fmt.Errorf("save run: %w", err)}
		}
		history, err := st.SessionsForUser(ctx, sess.UserID)
		if err != nil {
			return runSavedMsg{Err: fmt.Errorf("load history: %w", err)}
		}
		unlocked, err := st.UnlockedAchievements(ctx, sess.UserID)
		if err != nil {
			return runSavedMsg{Err: fmt.Errorf("load badges: %w", err)}
		}
		newIDs := achievements.Evaluate(sess, history, unlocked)
		if err := st.UnlockAchievements(ctx, sess.UserID, newIDs); err != nil {
			return runSavedMsg{Err: fmt.Errorf("unlock badges: %w", err)}
		}
		return runSavedMsg{
			Session:    sess,
			NewBadges:  newIDs,
			BadgeTotal: len(unlocked) + len(newIDs),
		}
	}
}

// badgeList resolves the unlocked IDs against the built-in catalog.
func (m runSavedMsg) badgeList() []achievements.Achievement {
	var out []achievements.Achievement
	for _, id := range m.NewBadges {
		if a, ok := achievements.ByID(id, nil); ok {
			out = append(out, a)
		}
	}
	return out
}

// doorsFor builds the door grid for a question, with the correct answer's
// position resolved from the options.
func doorsFor(q *quiz.Question) components.Doors {
	if q == nil {
		return components.NewDoors(nil, -1)
	}
	correct := -1
	for i, o := range q.Options {
		if o == q.Answer {
			correct = i
			break
		}
	}
	return components.NewDoors(q.Options, correct)
}
