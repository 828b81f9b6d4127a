package achievements

import (
	"github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/quiz"
)

// Icon selects the glyph shown next to a badge.
type Icon string

const (
	IconTrophy    Icon = "trophy"
	IconStar      Icon = "star"
	IconMedal     Icon = "medal"
	IconFire      Icon = "fire"
	IconLightning Icon = "lightning"
	IconScroll    Icon = "scroll"
)

// Glyph returns the display glyph for an icon.
func (i Icon) Glyph() string {
	switch i {
	case IconTrophy:
		return "🏆"
	case IconStar:
		return "⭐"
	case IconMedal:
		return "🎖"
	case IconFire:
		return "🔥"
	case IconLightning:
		return "⚡"
	case IconScroll:
		return "📜"
	default:
		return "✦"
	}
}

// Icons lists every selectable icon, for the custom badge editor.
func Icons() []Icon {
	return []Icon{IconTrophy, IconStar, IconMedal, IconFire, IconLightning, IconScroll}
}

// Achievement is one badge definition, built-in or teacher-defined.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

// Catalog is the built-in badge set. Teacher-defined custom badges are
// appended to it at display time; the evaluator only ever unlocks these.
var Catalog = []Achievement{
	{ID: "first_win", Title: "Novice Explorer", Description: "Complete your first maze.", Icon: IconScroll},
	{ID: "master_5", Title: "Dungeon Crawler", Description: "Complete 5 mazes.", Icon: IconTrophy},
	{ID: "master_10", Title: "Dungeon Master", Description: "Complete 10 mazes.", Icon: IconTrophy},
	{ID: "perfect_score", Title: "Perfectionist", Description: "Get a perfect score (10/10).", Icon: IconStar},
	{ID: "speed_demon", Title: "Speed Demon", Description: "Complete a maze in under 60 seconds.", Icon: IconLightning},
	{ID: "math_whiz", Title: "Math Whiz", Description: "Complete 5 Math mazes.", Icon: IconFire},
	{ID: "spelling_bee", Title: "Spelling Bee", Description: "Complete 5 Spelling mazes.", Icon: IconMedal},
}

// ByID looks a badge up in the built-in catalog plus the given custom list.
func ByID(id string, custom []Achievement) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	for _, a := range custom {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate returns the badge IDs newly earned by a just-completed session.
// history must already include the session. Already-unlocked IDs are never
// returned again, and the result contains no duplicates.
func Evaluate(session *game.Session, history []*game.Session, unlocked []string) []string {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}

	var newIDs []string
	award := func(id string, earned bool) {
		if earned && !have[id] {
			have[id] = true
			newIDs = append(newIDs, id)
		}
	}

	total := len(history)
	award("first_win", total >= 1)
	award("master_5", total >= 5)
	award("master_10", total >= 10)

	award("perfect_score", session.Score == session.TotalRooms && session.TotalRooms > 0)
	award("speed_demon", session.ElapsedSeconds < 60)

	mathGames, spellingGames := 0, 0
	for _, h := range history {
		switch h.Mode {
		case quiz.ModeMath:
			mathGames++
		case quiz.ModeSpelling:
			spellingGames++
		}
	}
	award("math_whiz", mathGames >= 5)
	award("spelling_bee", spellingGames >= 5)

	return newIDs
}
