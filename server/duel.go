package main

import (
	"sync"
	"time"
)

// Default duel colors, roster order.
var duelColors = []string{"#ff5d8f", "#5d8fff"}

// Duel is the local two-player simulation: one shared state stepped once
// per rendering frame by the owning process. Input handlers, the restart
// timer and the render step all go through this context, which serializes
// them with a single mutex.
type Duel struct {
	mu    sync.Mutex
	match *Match
	tick  uint64
}

// NewDuel creates a local duel on the built-in map with both players at
// their spawns, already in play.
func NewDuel(name1, name2 string) *Duel {
	m := duelMap
	match := NewMatch(DefaultConfig(ModeDuel), &m)
	match.AddPlayer("p1", name1, duelColors[0])
	match.AddPlayer("p2", name2, duelColors[1])
	match.Start()
	return &Duel{match: match}
}

// PlayerIDs returns the two roster ids in order.
func (d *Duel) PlayerIDs() (string, string) {
	return d.match.Players[0].ID, d.match.Players[1].ID
}

// MoveBy applies a movement intent as a delta from the player's current
// position. Rejected moves leave the position unchanged.
func (d *Duel) MoveBy(id string, dx, dy float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.match.PlayerByID(id)
	if p == nil {
		return false
	}
	return d.match.Move(id, p.X+dx, p.Y+dy)
}

// ShootAt applies a shoot intent aimed at a target point (pointer click
// or the opponent's position).
func (d *Duel) ShootAt(id string, tx, ty float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.match.Shoot(id, tx, ty) != nil
}

// Step advances the simulation one tick. When the step ends a round, the
// restart is scheduled as a delayed task carrying the current generation
// token, so a manual reset in the meantime strands it.
func (d *Duel) Step() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tick++
	before := d.match.Phase
	d.match.Step(d.match.PlayerTargets())

	if before == PhasePlaying && d.match.Phase == PhaseRoundEnd {
		token := d.match.Gen()
		time.AfterFunc(d.match.Config.RestartDelay, func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.match.RestartRound(token)
		})
	}
}

// NewMatchReset is the explicit new-match action out of GAME_END.
func (d *Duel) NewMatchReset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.match.Phase != PhaseGameEnd {
		return
	}
	d.match.ResetMatch()
}

// Phase returns the current match phase.
func (d *Duel) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.match.Phase
}

// Snapshot returns the read-only view consumed by the render collaborator
// after each tick.
func (d *Duel) Snapshot() GameState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return snapshotMatch(d.match, nil, d.tick, 0)
}

// Obstacles exposes the active map's obstacle set for rendering.
func (d *Duel) Obstacles() []Obstacle {
	return d.match.Map.Obstacles
}

// snapshotMatch serializes match state into a broadcastable snapshot.
func snapshotMatch(ms *Match, enemies []*Enemy, tick uint64, wave int) GameState {
	gs := GameState{
		Players: make([]PlayerState, 0, len(ms.Players)),
		Enemies: make([]EnemyState, 0, len(enemies)),
		Bullets: make([]BulletState, 0, len(ms.Bullets)),
		Phase:   ms.Phase.String(),
		Round:   ms.Round,
		Wave:    wave,
		Winner:  ms.WinnerID,
		Tick:    tick,
	}
	for _, p := range ms.Players {
		gs.Players = append(gs.Players, p.ToState())
	}
	for _, e := range enemies {
		gs.Enemies = append(gs.Enemies, e.ToState())
	}
	for _, b := range ms.Bullets {
		gs.Bullets = append(gs.Bullets, b.ToState())
	}
	return gs
}
