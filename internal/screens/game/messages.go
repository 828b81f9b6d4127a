package game

import (
	gamestate "github.com/dmaze/dungeonmaze/internal/game"
)

// timerTickMsg is sent every second to advance the run clock. The epoch
// tags the tick loop that produced it; ticks from an abandoned loop are
// dropped.
type timerTickMsg struct {
	Epoch int
}

// feedbackDoneMsg ends the feedback overlay for the given room. A stale
// room index means the run already moved on.
type feedbackDoneMsg struct {
	Room int
}

// narrateMsg asks for the current room's word to be spoken. Stale room
// indexes are dropped.
type narrateMsg struct {
	Room int
}

// runSavedMsg is sent when the finished run and its new badges have been
// persisted.
type runSavedMsg struct {
	Session    *gamestate.Session
	NewBadges  []string
	BadgeTotal int
	Err        error
}
