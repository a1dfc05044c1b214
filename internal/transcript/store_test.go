package transcript

import (
	"context"
	"testing"

	"github.com/hamzasdq/earnlybot/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestSaveAndHistory(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	turns := []Entry{
		{UserID: "u1", SessionID: "s1", Role: "user", Message: "how do i withdraw", Language: "en"},
		{UserID: "u1", SessionID: "s1", Role: "bot", Message: "Open the wallet tab.", Intent: "withdraw", Language: "en", Confidence: 1.0},
		{UserID: "u2", SessionID: "s1", Role: "user", Message: "salam", Language: "ur"},
	}
	for _, e := range turns {
		if err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.History(ctx, "u1", "s1", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("history length = %d, want 2", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "bot" {
		t.Errorf("order = %q, %q; want user then bot", got[0].Role, got[1].Role)
	}
	if got[1].Intent != "withdraw" || got[1].Confidence != 1.0 {
		t.Errorf("bot turn = %+v", got[1])
	}
	if got[0].ID == "" {
		t.Error("Save did not assign an id")
	}
}

func TestHistoryLimit(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Save(ctx, Entry{UserID: "u1", SessionID: "s1", Role: "user", Message: "m", Language: "en"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	got, err := s.History(ctx, "u1", "s1", 3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("history length = %d, want 3", len(got))
	}
}

func TestClearRemovesOnlyOneConversation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	s.Save(ctx, Entry{UserID: "u1", SessionID: "s1", Role: "user", Message: "a", Language: "en"})
	s.Save(ctx, Entry{UserID: "u1", SessionID: "s2", Role: "user", Message: "b", Language: "en"})

	if err := s.Clear(ctx, "u1", "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if got, _ := s.History(ctx, "u1", "s1", 0); len(got) != 0 {
		t.Errorf("cleared conversation still has %d turns", len(got))
	}
	if got, _ := s.History(ctx, "u1", "s2", 0); len(got) != 1 {
		t.Errorf("other conversation lost turns: %d", len(got))
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestRoleConstraint(t *testing.T) {
	s := setupStore(t)
	if err := s.Save(context.Background(), Entry{UserID: "u1", SessionID: "s1", Role: "system", Message: "x", Language: "en"}); err == nil {
		t.Error("expected schema to reject an unknown role")
	}
}
