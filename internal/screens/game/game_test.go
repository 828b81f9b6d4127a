package game

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	gamestate "github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/quiz"
	"github.com/dmaze/dungeonmaze/internal/screen"
	"github.com/dmaze/dungeonmaze/internal/store"
	"github.com/dmaze/dungeonmaze/internal/ui/components"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testSet() *quiz.QuestionSet {
	return &quiz.QuestionSet{
		ID:          "set-1",
		Name:        "Twos",
		Mode:        quiz.ModeMath,
		TimesTables: []int{2},
	}
}

func testGameScreen(t *testing.T) (*GameScreen, *store.User) {
	t.Helper()
	st := testStore(t)
	user, err := st.CreateUser(context.Background(), "Ada", store.RoleStudent, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return New(st, nil, user, testSet(), testRNG()), user
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// openCorrectDoor walks to the correct door and opens it.
func openCorrectDoor(s *GameScreen) (screen.Screen, tea.Cmd) {
	keys := map[int]rune{
		components.DoorNorth: tea.KeyUp,
		components.DoorEast:  tea.KeyRight,
		components.DoorSouth: tea.KeyDown,
		components.DoorWest:  tea.KeyLeft,
	}
	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(keys[s.doors.CorrectIndex]))
	// Walking toward an already-selected door opens it directly.
	if scr.(*GameScreen).state.Phase == gamestate.PhaseFeedback {
		return scr, cmd
	}
	return scr.Update(specialKey(tea.KeyEnter))
}

func TestGameScreen_StartsOnRoomZero(t *testing.T) {
	s, _ := testGameScreen(t)

	if s.state.Room != 0 {
		t.Errorf("Room = %d, want 0", s.state.Room)
	}
	if len(s.state.Questions) != quiz.TotalRooms {
		t.Errorf("questions = %d, want %d", len(s.state.Questions), quiz.TotalRooms)
	}
	if s.doors.CorrectIndex < 0 || s.doors.CorrectIndex > 3 {
		t.Errorf("CorrectIndex = %d, want a door position", s.doors.CorrectIndex)
	}
}

func TestGameScreen_CorrectDoorEntersFeedback(t *testing.T) {
	s, _ := testGameScreen(t)

	scr, cmd := openCorrectDoor(s)
	gs := scr.(*GameScreen)

	if gs.state.Phase != gamestate.PhaseFeedback {
		t.Errorf("phase = %v, want feedback", gs.state.Phase)
	}
	if !gs.state.LastCorrect {
		t.Error("expected a correct attempt")
	}
	if cmd == nil {
		t.Error("expected a feedback delay command")
	}
}

func TestGameScreen_FeedbackAdvancesRoom(t *testing.T) {
	s, _ := testGameScreen(t)

	scr, _ := openCorrectDoor(s)
	gs := scr.(*GameScreen)

	scr, _ = gs.Update(feedbackDoneMsg{Room: 0})
	gs = scr.(*GameScreen)

	if gs.state.Room != 1 {
		t.Errorf("Room = %d, want 1", gs.state.Room)
	}
	if gs.state.Phase != gamestate.PhasePlaying {
		t.Errorf("phase = %v, want playing", gs.state.Phase)
	}
	if gs.doors.Submitted {
		t.Error("doors not reset for the new room")
	}
}

func TestGameScreen_StaleFeedbackDropped(t *testing.T) {
	s, _ := testGameScreen(t)

	scr, _ := openCorrectDoor(s)
	gs := scr.(*GameScreen)

	// Wrong room index: must not resolve the overlay.
	scr, _ = gs.Update(feedbackDoneMsg{Room: 5})
	gs = scr.(*GameScreen)

	if gs.state.Phase != gamestate.PhaseFeedback {
		t.Errorf("phase = %v, want feedback after stale message", gs.state.Phase)
	}
	if gs.state.Room != 0 {
		t.Errorf("Room = %d, want 0", gs.state.Room)
	}
}

func TestGameScreen_StaleTickDropped(t *testing.T) {
	s, _ := testGameScreen(t)

	scr, _ := s.Update(timerTickMsg{Epoch: s.epoch + 1})
	gs := scr.(*GameScreen)

	if gs.state.Elapsed != 0 {
		t.Errorf("Elapsed = %d, want 0 after stale tick", gs.state.Elapsed)
	}
}

func TestGameScreen_TickAdvancesClock(t *testing.T) {
	s, _ := testGameScreen(t)

	scr, cmd := s.Update(timerTickMsg{Epoch: s.epoch})
	gs := scr.(*GameScreen)

	if gs.state.Elapsed != 1 {
		t.Errorf("Elapsed = %d, want 1", gs.state.Elapsed)
	}
	if cmd == nil {
		t.Error("expected the tick loop to continue")
	}
}

func TestGameScreen_CountdownTimeout(t *testing.T) {
	st := testStore(t)
	user, err := st.CreateUser(context.Background(), "Ada", store.RoleStudent, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	set := testSet()
	set.CountdownSeconds = 2
	s := New(st, nil, user, set, testRNG())

	var scr screen.Screen = s
	scr, _ = scr.Update(timerTickMsg{Epoch: 0})
	scr, _ = scr.Update(timerTickMsg{Epoch: 0})
	gs := scr.(*GameScreen)

	if gs.state.Phase != gamestate.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback after countdown expiry", gs.state.Phase)
	}
	last := gs.state.Results[len(gs.state.Results)-1]
	if last.UserAnswer != quiz.TimedOutAnswer {
		t.Errorf("UserAnswer = %q, want %q", last.UserAnswer, quiz.TimedOutAnswer)
	}
}

func TestGameScreen_PauseBlocksDoors(t *testing.T) {
	s, _ := testGameScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('p'))
	gs := scr.(*GameScreen)
	if !gs.state.Paused {
		t.Fatal("expected paused state")
	}

	scr, _ = gs.Update(specialKey(tea.KeyEnter))
	gs = scr.(*GameScreen)
	if gs.doors.Submitted {
		t.Error("door opened while paused")
	}

	scr, _ = gs.Update(keyPress('p'))
	gs = scr.(*GameScreen)
	if gs.state.Paused {
		t.Error("expected resume")
	}
}

func TestGameScreen_QuitConfirmAbandons(t *testing.T) {
	s, _ := testGameScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	gs := scr.(*GameScreen)
	if !gs.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	if !gs.state.Paused {
		t.Error("clock should pause during the quit prompt")
	}

	epoch := gs.epoch
	scr, cmd := gs.Update(keyPress('y'))
	gs = scr.(*GameScreen)
	if cmd == nil {
		t.Error("expected a pop command")
	}
	if gs.epoch == epoch {
		t.Error("expected the tick loop to be orphaned")
	}
}

func TestGameScreen_QuitConfirmKeepsPlaying(t *testing.T) {
	s, _ := testGameScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	scr, _ = scr.Update(keyPress('n'))
	gs := scr.(*GameScreen)

	if gs.confirmQuit {
		t.Error("expected the prompt to close")
	}
	if gs.state.Paused {
		t.Error("expected the clock to resume")
	}
}

func TestGameScreen_FinishPersistsRunAndBadges(t *testing.T) {
	s, user := testGameScreen(t)

	var scr screen.Screen = s
	for room := 0; room < quiz.TotalRooms; room++ {
		gs := scr.(*GameScreen)
		scr, _ = openCorrectDoor(gs)
		scr, _ = scr.Update(feedbackDoneMsg{Room: room})
	}
	gs := scr.(*GameScreen)
	if gs.state.Phase != gamestate.PhaseFinished {
		t.Fatalf("phase = %v, want finished", gs.state.Phase)
	}

	// The save command runs asynchronously; execute it by hand.
	cmd := gs.saveCmd()
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg := cmd()
	saved, ok := msg.(runSavedMsg)
	if !ok {
		t.Fatalf("message type %T, want runSavedMsg", msg)
	}
	if saved.Err != nil {
		t.Fatalf("save: %v", saved.Err)
	}
	if saved.Session.Score != quiz.TotalRooms {
		t.Errorf("Score = %d, want %d", saved.Session.Score, quiz.TotalRooms)
	}

	history, err := gs.st.SessionsForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d sessions, want 1", len(history))
	}

	unlocked, err := gs.st.UnlockedAchievements(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("badges: %v", err)
	}
	want := map[string]bool{"first_win": true, "perfect_score": true, "speed_demon": true, "math_whiz": false}
	for id, expect := range want {
		got := false
		for _, u := range unlocked {
			if u == id {
				got = true
			}
		}
		if got != expect {
			t.Errorf("badge %s unlocked = %v, want %v", id, got, expect)
		}
	}

	// A second save command is a no-op thanks to the completion guard.
	if gs.saveCmd() != nil {
		t.Error("expected nil command for an already-recorded run")
	}
}

func TestGameScreen_View_NonEmpty(t *testing.T) {
	s, _ := testGameScreen(t)

	if s.View(100, 30) == "" {
		t.Error("expected a rendered room")
	}

	s.state.Pause()
	if s.View(100, 30) == "" {
		t.Error("expected a pause overlay")
	}
}
