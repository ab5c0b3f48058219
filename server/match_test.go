package main

import "testing"

func newTestDuelMatch(obstacles ...Obstacle) *Match {
	ms := NewMatch(DefaultConfig(ModeDuel), testMap(obstacles...))
	ms.AddPlayer("p1", "Alice", "#ff5d8f")
	ms.AddPlayer("p2", "Bob", "#5d8fff")
	ms.Start()
	return ms
}

// stepUntilQuiet runs ticks until no bullets remain.
func stepUntilQuiet(t *testing.T, ms *Match) {
	t.Helper()
	for i := 0; i < 200; i++ {
		ms.Step(ms.PlayerTargets())
		if len(ms.Bullets) == 0 {
			return
		}
	}
	t.Fatal("bullets never settled")
}

func TestDuelScenario(t *testing.T) {
	ms := newTestDuelMatch()
	p1 := ms.PlayerByID("p1")
	p2 := ms.PlayerByID("p2")
	p1.X, p1.Y = 100, 100
	p2.X, p2.Y = 300, 100

	// Four shots aimed exactly at the opponent, no obstacles between:
	// each applies one damage application of 25
	for shot := 1; shot <= 4; shot++ {
		if ms.Shoot("p1", p2.X, p2.Y) == nil {
			t.Fatalf("shot %d should spawn a bullet", shot)
		}
		stepUntilQuiet(t, ms)
		want := PlayerMaxHP - shot*BulletDamage
		if p2.HP != want {
			t.Fatalf("after shot %d expected HP %d, got %d", shot, want, p2.HP)
		}
	}

	if p2.Alive {
		t.Error("p2 should be dead")
	}
	if ms.Phase != PhaseRoundEnd {
		t.Errorf("expected round_end, got %s", ms.Phase)
	}
	if p1.Wins != 1 {
		t.Errorf("expected p1 wins 1, got %d", p1.Wins)
	}
}

func TestRoundEndIdempotent(t *testing.T) {
	ms := newTestDuelMatch()
	p1 := ms.PlayerByID("p1")
	p2 := ms.PlayerByID("p2")
	p1.X, p1.Y = 100, 100
	p2.X, p2.Y = 120, 100
	p2.HP = BulletDamage // next hit is lethal

	// Two bullets already overlapping the victim in the same tick
	ms.Bullets = []*Bullet{
		{X: 118, Y: 100, VX: 0.1, OwnerID: "p1"},
		{X: 122, Y: 100, VX: 0.1, OwnerID: "p1"},
	}
	ms.Step(ms.PlayerTargets())

	if ms.Phase != PhaseRoundEnd {
		t.Fatalf("expected round_end, got %s", ms.Phase)
	}
	if p1.Wins != 1 {
		t.Errorf("double trigger must credit exactly 1 win, got %d", p1.Wins)
	}
}

func TestWinThresholdFreezesPlay(t *testing.T) {
	ms := newTestDuelMatch()
	p1 := ms.PlayerByID("p1")
	p2 := ms.PlayerByID("p2")
	p1.Wins = 2 // match point
	p1.X, p1.Y = 100, 100
	p2.X, p2.Y = 120, 100
	p2.HP = BulletDamage

	ms.Bullets = []*Bullet{{X: 118, Y: 100, VX: 0.1, OwnerID: "p1"}}
	ms.Step(ms.PlayerTargets())

	if ms.Phase != PhaseGameEnd {
		t.Fatalf("third round win should end the game, got %s", ms.Phase)
	}
	if ms.WinnerID != "p1" {
		t.Errorf("expected winner p1, got %q", ms.WinnerID)
	}

	// Frozen: no movement, no shots, no bullet processing
	if ms.Move("p1", 110, 100) {
		t.Error("movement must be rejected in game_end")
	}
	if ms.Shoot("p1", 300, 300) != nil {
		t.Error("shots must be ignored in game_end")
	}
	ms.Bullets = []*Bullet{{X: 400, Y: 300, VX: 1, OwnerID: "p1"}}
	ms.Step(ms.PlayerTargets())
	if ms.Bullets[0].X != 400 {
		t.Error("bullets must not advance in game_end")
	}
}

func TestRoundRestart(t *testing.T) {
	ms := newTestDuelMatch()
	p2 := ms.PlayerByID("p2")
	p2.TakeDamage(PlayerMaxHP)
	ms.endRound("p1")
	ms.Bullets = []*Bullet{{X: 400, Y: 300, VX: 1, OwnerID: "p1"}}

	round := ms.Round
	if !ms.RestartRound(ms.Gen()) {
		t.Fatal("restart with a current token should fire")
	}

	if ms.Phase != PhasePlaying {
		t.Error("phase should be playing after restart")
	}
	if ms.Round != round+1 {
		t.Errorf("round should increment by exactly 1, got %d", ms.Round)
	}
	if len(ms.Bullets) != 0 {
		t.Error("bullets should be cleared")
	}
	for _, p := range ms.Players {
		if p.HP != p.MaxHP || !p.Alive {
			t.Errorf("player %s should be restored to full health", p.ID)
		}
	}
	x, y := ms.Map.Spawn(0)
	if ms.Players[0].X != x || ms.Players[0].Y != y {
		t.Error("players should be back at their spawns")
	}
}

func TestStaleRestartIsNoOp(t *testing.T) {
	ms := newTestDuelMatch()
	ms.PlayerByID("p2").TakeDamage(PlayerMaxHP)
	ms.endRound("p1")

	token := ms.Gen()
	ms.ResetMatch() // manual reset races the scheduled restart

	round := ms.Round
	if ms.RestartRound(token) {
		t.Error("stale token must not restart the round")
	}
	if ms.Round != round {
		t.Error("stale restart must not touch the round counter")
	}
}

func TestRestartOutsideRoundEnd(t *testing.T) {
	ms := newTestDuelMatch()
	if ms.RestartRound(ms.Gen()) {
		t.Error("restart must be a no-op while playing")
	}
}

func TestResetMatch(t *testing.T) {
	ms := newTestDuelMatch()
	p1 := ms.PlayerByID("p1")
	p1.Wins = 3
	ms.Phase = PhaseGameEnd
	ms.WinnerID = "p1"
	ms.Round = 5

	ms.ResetMatch()

	if ms.Phase != PhasePlaying {
		t.Error("new match should resume play")
	}
	if p1.Wins != 0 || ms.WinnerID != "" || ms.Round != 1 {
		t.Error("new match should clear wins, winner and round")
	}
}

func TestShootIgnoredOutsidePlaying(t *testing.T) {
	ms := newTestDuelMatch()
	ms.Phase = PhaseRoundEnd
	if ms.Shoot("p1", 300, 300) != nil {
		t.Error("shoot intents are ignored outside the active-play phase")
	}
	if len(ms.Bullets) != 0 {
		t.Error("no bullet should be queued")
	}
}

func TestMoveDuringRoundEnd(t *testing.T) {
	ms := newTestDuelMatch()
	ms.Phase = PhaseRoundEnd
	p1 := ms.PlayerByID("p1")
	if !ms.Move("p1", p1.X+5, p1.Y) {
		t.Error("movement stays available between rounds")
	}
}

func TestAddPlayerCapacity(t *testing.T) {
	ms := NewMatch(DefaultConfig(ModeDuel), testMap())
	ms.AddPlayer("p1", "A", "#fff")
	ms.AddPlayer("p2", "B", "#fff")
	if ms.AddPlayer("p3", "C", "#fff") != nil {
		t.Error("duel roster is capped at 2")
	}
}
