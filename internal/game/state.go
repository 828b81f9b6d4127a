package game

import (
	"time"

	"github.com/dmaze/dungeonmaze/internal/quiz"
)

// Phase represents the current phase of a maze run.
type Phase int

const (
	PhasePlaying  Phase = iota // Waiting for a door pick
	PhaseFeedback              // Showing answer feedback
	PhaseFinished              // All rooms done, summary showing
)

// State tracks the runtime state of one maze run. It is a pure value driven
// by the game screen; nothing here touches the terminal or the store.
type State struct {
	// Set is the question set this run was started from.
	Set *quiz.QuestionSet

	// Questions holds exactly quiz.TotalRooms entries.
	Questions []quiz.Question

	// Room is the index of the current room in Questions.
	Room int

	// Elapsed is whole seconds since the run started, excluding pauses.
	Elapsed int

	// Countdown is seconds left on the current room's timer. Unused (0)
	// when the set has no countdown configured.
	Countdown int

	// Paused is true while the pause overlay is up. The clock and the
	// countdown both freeze.
	Paused bool

	// Phase is the current run phase.
	Phase Phase

	// Results accumulates one entry per answered (or timed-out) room
	// attempt. With the retry policy on, a room can contribute several.
	Results []quiz.Result

	// LastCorrect records whether the most recent attempt was correct,
	// for the feedback overlay.
	LastCorrect bool

	// StartedAt is when the run began.
	StartedAt time.Time

	// finished guards Finish so the run is recorded exactly once.
	finished bool
}

// Session is the persistent record of a completed run.
type Session struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	SetID          string        `json:"set_id"`
	SetName        string        `json:"set_name"`
	Mode           quiz.Mode     `json:"mode"`
	Score          int           `json:"score"`
	TotalRooms     int           `json:"total_rooms"`
	ElapsedSeconds int           `json:"elapsed_seconds"`
	Results        []quiz.Result `json:"results"`
	PlayedAt       time.Time     `json:"played_at"`
}
