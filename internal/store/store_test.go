package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmaze/dungeonmaze/internal/achievements"
	"github.com/dmaze/dungeonmaze/internal/game"
	"github.com/dmaze/dungeonmaze/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestUsers_CreateAndAuthenticate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "Alice", RoleStudent, "")
	if err != nil {
		t.Fatalf("create passwordless user: %v", err)
	}
	if alice.HasPassword() {
		t.Error("passwordless account reports a password")
	}

	// Passwordless accounts log in with any input.
	if _, err := s.Authenticate(ctx, "alice", "whatever"); err != nil {
		t.Errorf("passwordless auth: %v", err)
	}

	bob, err := s.CreateUser(ctx, "Bob", RoleStudent, "secret")
	if err != nil {
		t.Fatalf("create user with password: %v", err)
	}
	if !bob.HasPassword() {
		t.Error("account with password reports none")
	}
	if _, err := s.Authenticate(ctx, "Bob", "secret"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if _, err := s.Authenticate(ctx, "Bob", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password error = %v, want ErrBadCredentials", err)
	}
	if _, err := s.Authenticate(ctx, "Nobody", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestUsers_DeleteCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Carol", RoleStudent, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := s.AppendSession(ctx, testSession(u.ID, "s1", time.Now())); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := s.UnlockAchievements(ctx, u.ID, []string{"first_win"}); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	sessions, err := s.SessionsForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("sessions after delete: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("%d sessions survived user deletion", len(sessions))
	}
	ids, err := s.UnlockedAchievements(ctx, u.ID)
	if err != nil {
		t.Fatalf("achievements after delete: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("%d achievements survived user deletion", len(ids))
	}
}

func TestEnsureTeacher(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	passcode, err := s.EnsureTeacher(ctx)
	if err != nil {
		t.Fatalf("ensure teacher: %v", err)
	}
	if passcode == "" {
		t.Fatal("fresh database returned no passcode")
	}
	if _, err := s.Authenticate(ctx, "teacher", passcode); err != nil {
		t.Errorf("generated passcode rejected: %v", err)
	}

	again, err := s.EnsureTeacher(ctx)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again != "" {
		t.Error("second EnsureTeacher generated a new passcode")
	}
}

func TestQuestionSets_RoundTripAndSeed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SeedDefaultSets(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sets, err := s.QuestionSets(ctx)
	if err != nil {
		t.Fatalf("query sets: %v", err)
	}
	if len(sets) != len(quiz.DefaultQuestionSets()) {
		t.Fatalf("seeded %d sets, want %d", len(sets), len(quiz.DefaultQuestionSets()))
	}

	// Seeding again is a no-op.
	if err := s.SeedDefaultSets(ctx); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	sets, _ = s.QuestionSets(ctx)
	if len(sets) != len(quiz.DefaultQuestionSets()) {
		t.Errorf("re-seed duplicated sets: %d", len(sets))
	}

	custom := &quiz.QuestionSet{
		ID:               "my-set",
		Name:             "Sevens",
		Mode:             quiz.ModeMath,
		CountdownSeconds: 15,
		TimesTables:      []int{7},
		CustomEquations:  []quiz.Equation{{Prompt: "7 + 7 = ?", Answer: 14}},
	}
	if err := s.SaveQuestionSet(ctx, custom); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.QuestionSet(ctx, "my-set")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Sevens" || got.CountdownSeconds != 15 || len(got.CustomEquations) != 1 {
		t.Errorf("round trip mangled set: %+v", got)
	}

	// Update keeps its position and does not duplicate.
	custom.Name = "Lucky Sevens"
	if err := s.SaveQuestionSet(ctx, custom); err != nil {
		t.Fatalf("update: %v", err)
	}
	sets, _ = s.QuestionSets(ctx)
	if len(sets) != len(quiz.DefaultQuestionSets())+1 {
		t.Errorf("update duplicated the set: %d total", len(sets))
	}

	if err := s.DeleteQuestionSet(ctx, "my-set"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.QuestionSet(ctx, "my-set"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted set lookup error = %v, want ErrNotFound", err)
	}
}

func testSession(userID, id string, playedAt time.Time) *game.Session {
	return &game.Session{
		ID:             id,
		UserID:         userID,
		SetID:          "set-1",
		SetName:        "Twos",
		Mode:           quiz.ModeMath,
		Score:          8,
		TotalRooms:     quiz.TotalRooms,
		ElapsedSeconds: 95,
		Results: []quiz.Result{
			{Question: quiz.Question{Mode: quiz.ModeMath, Prompt: "2 x 3 = ?", Answer: "6", Options: []string{"6", "5", "8", "4"}}, UserAnswer: "6", Correct: true},
		},
		PlayedAt: playedAt,
	}
}

func TestSessions_MostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Dan", RoleStudent, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"s1", "s2", "s3"} {
		sess := testSession(u.ID, id, base.Add(time.Duration(i)*time.Minute))
		if err := s.AppendSession(ctx, sess); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	sessions, err := s.SessionsForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	if sessions[0].ID != "s3" || sessions[2].ID != "s1" {
		t.Errorf("order = %s, %s, %s, want s3 first", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
	if len(sessions[0].Results) != 1 || !sessions[0].Results[0].Correct {
		t.Errorf("results did not round-trip: %+v", sessions[0].Results)
	}
}

func TestAchievements_MonotoneUnlock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Eve", RoleStudent, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := s.UnlockAchievements(ctx, u.ID, []string{"first_win", "speed_demon"}); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	// Unlocking again is a no-op, not an error.
	if err := s.UnlockAchievements(ctx, u.ID, []string{"first_win"}); err != nil {
		t.Fatalf("re-unlock: %v", err)
	}

	ids, err := s.UnlockedAchievements(ctx, u.ID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("got %d unlocked, want 2: %v", len(ids), ids)
	}

	// Teacher toggle removes one.
	if err := s.RevokeAchievement(ctx, u.ID, "speed_demon"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ids, _ = s.UnlockedAchievements(ctx, u.ID)
	if len(ids) != 1 || ids[0] != "first_win" {
		t.Errorf("after revoke: %v", ids)
	}
}

func TestCustomAchievements_CRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	badge := achievements.Achievement{
		ID:          "reading_star",
		Title:       "Reading Star",
		Description: "Awarded by your teacher.",
		Icon:        achievements.IconStar,
	}
	if err := s.SaveCustomAchievement(ctx, badge); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, err := s.CustomAchievements(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Reading Star" || list[0].Icon != achievements.IconStar {
		t.Errorf("round trip: %+v", list)
	}

	badge.Title = "Super Reader"
	if err := s.SaveCustomAchievement(ctx, badge); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, _ = s.CustomAchievements(ctx)
	if len(list) != 1 || list[0].Title != "Super Reader" {
		t.Errorf("update: %+v", list)
	}

	if err := s.DeleteCustomAchievement(ctx, "reading_star"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = s.CustomAchievements(ctx)
	if len(list) != 0 {
		t.Errorf("after delete: %+v", list)
	}
}

func TestCurrentUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CurrentUser(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty settings error = %v, want ErrNotFound", err)
	}

	u, err := s.CreateUser(ctx, "Fay", RoleStudent, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := s.SetCurrentUser(ctx, u.ID); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("current user = %s, want %s", got.ID, u.ID)
	}

	if err := s.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.CurrentUser(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("after clear error = %v, want ErrNotFound", err)
	}
}

func TestLLMRequestLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reqs := []LLMRequest{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "misspellings", InputTokens: 40, OutputTokens: 20, LatencyMs: 310, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "misspellings", LatencyMs: 90, Success: false, ErrorMessage: "rate limited"},
	}
	for i, r := range reqs {
		if err := s.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	st, err := s.LLMRequestStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Requests != 2 || st.Failures != 1 {
		t.Errorf("stats = %+v, want 2 requests 1 failure", st)
	}
	if st.InputTokens != 40 || st.OutputTokens != 20 {
		t.Errorf("token totals = %+v", st)
	}
}

func TestResetAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, _ := s.CreateUser(ctx, "Gus", RoleStudent, "")
	_ = s.AppendSession(ctx, testSession(u.ID, "s1", time.Now()))
	_ = s.SeedDefaultSets(ctx)

	if err := s.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	n, err := s.SessionCount(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("%d sessions after reset", n)
	}
	users, _ := s.Users(ctx)
	if len(users) != 0 {
		t.Errorf("%d users after reset", len(users))
	}
	sets, _ := s.QuestionSets(ctx)
	if len(sets) != 0 {
		t.Errorf("%d sets after reset", len(sets))
	}
}
