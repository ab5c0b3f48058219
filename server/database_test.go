package main

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAccounts(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateAccount("alice", "hash1")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero account id")
	}

	a, err := db.GetAccountByUsername("alice")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if a == nil || a.ID != id || a.PassHash != "hash1" {
		t.Errorf("unexpected account %+v", a)
	}

	missing, err := db.GetAccountByUsername("nobody")
	if err != nil {
		t.Fatalf("get missing account: %v", err)
	}
	if missing != nil {
		t.Error("missing account should be nil")
	}

	taken, err := db.UsernameExists("alice")
	if err != nil || !taken {
		t.Errorf("alice should be taken (err %v)", err)
	}
	if _, err := db.CreateAccount("alice", "hash2"); err == nil {
		t.Error("duplicate username should fail")
	}
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	if db.GetSetting("jwt_secret") != "" {
		t.Error("absent setting should read empty")
	}
	if err := db.SetSetting("jwt_secret", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetSetting("jwt_secret", "def"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := db.GetSetting("jwt_secret"); got != "def" {
		t.Errorf("expected def, got %q", got)
	}
}

// recordTestDuel inserts a finished duel between two accounts.
func recordTestDuel(t *testing.T, db *DB, winnerAcc, loserAcc int64, winnerName, loserName string) {
	t.Helper()
	err := db.RecordDuel(DuelResult{
		ID:       uuid.NewString(),
		Winner:   "p1",
		Rounds:   4,
		Duration: 61.5,
		Players: []DuelResultPlayer{
			{PlayerID: "p1", AccountID: winnerAcc, Name: winnerName, Wins: 3, Won: true},
			{PlayerID: "p2", AccountID: loserAcc, Name: loserName, Wins: 1, Won: false},
		},
	})
	if err != nil {
		t.Fatalf("record duel: %v", err)
	}
}

func TestRecordDuelAndLeaderboard(t *testing.T) {
	db := openTestDB(t)

	alice, _ := db.CreateAccount("alice", "h")
	bob, _ := db.CreateAccount("bob", "h")
	carol, _ := db.CreateAccount("carol", "h")

	// alice 2-0, bob 1-1, carol 0-2
	recordTestDuel(t, db, alice, bob, "alice", "bob")
	recordTestDuel(t, db, alice, carol, "alice", "carol")
	recordTestDuel(t, db, bob, carol, "bob", "carol")

	lb, err := db.GetLeaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lb))
	}
	if lb[0].Username != "alice" || lb[1].Username != "bob" || lb[2].Username != "carol" {
		t.Errorf("unexpected order: %s, %s, %s", lb[0].Username, lb[1].Username, lb[2].Username)
	}
	if lb[0].Wins != 2 || lb[0].Losses != 0 || lb[0].WinRate != 100 {
		t.Errorf("unexpected top entry %+v", lb[0])
	}
	if lb[1].WinRate != 50 || lb[1].TotalGames != 2 {
		t.Errorf("unexpected middle entry %+v", lb[1])
	}
	if lb[0].Rank != 1 || lb[2].Rank != 3 {
		t.Error("ranks should be sequential")
	}
}

func TestGuestDuelSkipsStats(t *testing.T) {
	db := openTestDB(t)
	alice, _ := db.CreateAccount("alice", "h")

	// Guest opponent carries account id 0 and must not touch stats.
	recordTestDuel(t, db, alice, 0, "alice", "Guest")

	lb, err := db.GetLeaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 1 || lb[0].Username != "alice" || lb[0].Wins != 1 {
		t.Errorf("unexpected leaderboard %+v", lb)
	}
}

func TestRecentGames(t *testing.T) {
	db := openTestDB(t)
	recordTestDuel(t, db, 0, 0, "Ann", "Ben")
	recordTestDuel(t, db, 0, 0, "Cat", "Dan")

	games, err := db.GetRecentGames(10)
	if err != nil {
		t.Fatalf("recent games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	for _, g := range games {
		if g.Rounds != 4 || g.Duration != 61.5 || g.Winner == "" {
			t.Errorf("unexpected game row %+v", g)
		}
	}

	limited, err := db.GetRecentGames(1)
	if err != nil {
		t.Fatalf("recent games limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit should cap the listing, got %d", len(limited))
	}
}
