package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dmaze/dungeonmaze/internal/quiz"
)

// Start generates the run's questions and returns a fresh state positioned on
// room zero with the countdown armed if the set configures one.
func Start(set *quiz.QuestionSet, rng *rand.Rand) *State {
	return &State{
		Set:       set,
		Questions: quiz.Generate(set, rng),
		Countdown: set.CountdownSeconds,
		Phase:     PhasePlaying,
		StartedAt: time.Now(),
	}
}

// Current returns the question for the room the player is in, or nil after
// the run has finished.
func (s *State) Current() *quiz.Question {
	if s.Room >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Room]
}

// Tick advances the run clock by one second. Returns true when the current
// room's countdown expired on this tick; the caller must then record the
// timeout via TimeOut. Ticks are ignored while paused or finished, and a
// countdown expiring mid-feedback never fires (the room is already answered).
func (s *State) Tick() (timedOut bool) {
	if s.Paused || s.Phase == PhaseFinished {
		return false
	}
	s.Elapsed++
	if s.Set.CountdownSeconds > 0 && s.Countdown > 0 {
		s.Countdown--
		if s.Countdown == 0 && s.Phase == PhasePlaying {
			return true
		}
	}
	return false
}

// Submit records the player's door pick for the current room and enters the
// feedback phase. Picks are ignored while paused, in feedback, or finished,
// so a double keypress cannot record two attempts.
func (s *State) Submit(pick string) {
	if s.Phase != PhasePlaying || s.Paused {
		return
	}
	q := s.Current()
	if q == nil {
		return
	}
	s.record(*q, pick, quiz.CheckAnswer(pick, q))
}

// TimeOut records a countdown expiry as a wrong attempt with the timed-out
// sentinel and enters the feedback phase.
func (s *State) TimeOut() {
	if s.Phase != PhasePlaying || s.Paused {
		return
	}
	q := s.Current()
	if q == nil {
		return
	}
	s.record(*q, quiz.TimedOutAnswer, false)
}

func (s *State) record(q quiz.Question, pick string, correct bool) {
	s.Results = append(s.Results, quiz.Result{
		Question:   q,
		UserAnswer: pick,
		Correct:    correct,
	})
	s.LastCorrect = correct
	s.Phase = PhaseFeedback
}

// ResolveFeedback ends the feedback phase. A correct attempt, or any attempt
// when the set does not require correct answers, advances to the next room;
// past the last room the run finishes. A wrong attempt under the retry policy
// stays on the same room with the countdown reset.
func (s *State) ResolveFeedback() {
	if s.Phase != PhaseFeedback {
		return
	}
	if !s.LastCorrect && s.Set.MustAnswerCorrectly() {
		s.Countdown = s.Set.CountdownSeconds
		s.Phase = PhasePlaying
		return
	}
	s.Room++
	if s.Room >= len(s.Questions) {
		s.Phase = PhaseFinished
		return
	}
	s.Countdown = s.Set.CountdownSeconds
	s.Phase = PhasePlaying
}

// Pause freezes the clock. No-op once finished.
func (s *State) Pause() {
	if s.Phase != PhaseFinished {
		s.Paused = true
	}
}

// Resume unfreezes the clock.
func (s *State) Resume() {
	s.Paused = false
}

// Score counts correct attempts. Each room contributes at most one because a
// room is only left after a correct answer (or a single attempt when retries
// are off).
func (s *State) Score() int {
	n := 0
	for _, r := range s.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

// Finish builds the persistent session record for a finished run. It returns
// nil unless the run is finished, and nil again on every call after the
// first, so a re-delivered completion message cannot record the run twice.
func (s *State) Finish(userID string) *Session {
	if s.Phase != PhaseFinished || s.finished {
		return nil
	}
	s.finished = true
	return &Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		SetID:          s.Set.ID,
		SetName:        s.Set.Name,
		Mode:           s.Set.Mode,
		Score:          s.Score(),
		TotalRooms:     len(s.Questions),
		ElapsedSeconds: s.Elapsed,
		Results:        s.Results,
		PlayedAt:       time.Now(),
	}
}
