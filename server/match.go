package main

import "time"

// Phase represents the lifecycle of a match
type Phase int

const (
	PhaseLobby    Phase = 0
	PhasePlaying  Phase = 1
	PhaseRoundEnd Phase = 2
	PhaseGameEnd  Phase = 3
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhasePlaying:
		return "playing"
	case PhaseRoundEnd:
		return "round_end"
	case PhaseGameEnd:
		return "game_end"
	}
	return "unknown"
}

// GameMode defines the type of match
type GameMode int

const (
	ModeDuel GameMode = 0
	ModeCoop GameMode = 1
)

// MatchConfig holds settings for a match
type MatchConfig struct {
	Mode         GameMode
	RoundsToWin  int
	RestartDelay time.Duration
	MaxPlayers   int
}

// DefaultConfig returns default config for the given mode
func DefaultConfig(mode GameMode) MatchConfig {
	switch mode {
	case ModeCoop:
		return MatchConfig{
			Mode:       ModeCoop,
			MaxPlayers: 4,
		}
	default:
		return MatchConfig{
			Mode:         ModeDuel,
			RoundsToWin:  3,
			RestartDelay: 2 * time.Second,
			MaxPlayers:   2,
		}
	}
}

// Match is the round-based simulation state shared by the local duel and
// the networked host. Not safe for concurrent use; the owner serializes
// access and drives restarts.
type Match struct {
	Config   MatchConfig
	Map      *GameMap
	Players  []*Player // roster order is join order
	Bullets  []*Bullet
	Phase    Phase
	Round    int
	WinnerID string // match winner, set on game end
	RoundWin string // winner of the most recent round

	gen uint64 // invalidates scheduled round restarts
}

// NewMatch creates a match in the lobby phase.
func NewMatch(cfg MatchConfig, m *GameMap) *Match {
	return &Match{Config: cfg, Map: m, Phase: PhaseLobby, Round: 1}
}

// AddPlayer appends a player at the next map spawn. Returns nil when the
// roster is full.
func (ms *Match) AddPlayer(id, name, color string) *Player {
	if len(ms.Players) >= ms.Config.MaxPlayers {
		return nil
	}
	x, y := ms.Map.Spawn(len(ms.Players))
	p := NewPlayer(id, name, color, x, y)
	ms.Players = append(ms.Players, p)
	return p
}

// RemovePlayer drops a player from the roster, preserving order.
func (ms *Match) RemovePlayer(id string) {
	for i, p := range ms.Players {
		if p.ID == id {
			ms.Players = append(ms.Players[:i], ms.Players[i+1:]...)
			return
		}
	}
}

// PlayerByID returns the player with the given id, or nil.
func (ms *Match) PlayerByID(id string) *Player {
	for _, p := range ms.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Start moves the match from the lobby into play.
func (ms *Match) Start() {
	if ms.Phase != PhaseLobby {
		return
	}
	ms.Round = 1
	ms.resetPositions()
	ms.Phase = PhasePlaying
}

// Move applies a movement intent: the candidate position is accepted
// atomically or not at all. Intents are frozen once the game has ended.
func (ms *Match) Move(id string, nx, ny float64) bool {
	if ms.Phase == PhaseGameEnd || ms.Phase == PhaseLobby {
		return false
	}
	p := ms.PlayerByID(id)
	if p == nil || !p.Alive {
		return false
	}
	x, y, ok := ResolveMove(p.Body, nx, ny, ms.Map)
	p.X, p.Y = x, y
	return ok
}

// Shoot applies a shoot intent aimed at a target point. Ignored outside
// the active-play phase; a zero-length aim vector spawns nothing.
func (ms *Match) Shoot(id string, tx, ty float64) *Bullet {
	p := ms.shooter(id)
	if p == nil {
		return nil
	}
	b := SpawnBullet(p, tx, ty)
	if b != nil {
		ms.Bullets = append(ms.Bullets, b)
	}
	return b
}

// ShootVelocity is the networked variant taking a client velocity vector.
func (ms *Match) ShootVelocity(id string, vx, vy float64) *Bullet {
	p := ms.shooter(id)
	if p == nil {
		return nil
	}
	b := SpawnBulletVelocity(p, vx, vy)
	if b != nil {
		ms.Bullets = append(ms.Bullets, b)
	}
	return b
}

func (ms *Match) shooter(id string) *Player {
	if ms.Phase != PhasePlaying {
		return nil
	}
	p := ms.PlayerByID(id)
	if p == nil || !p.Alive {
		return nil
	}
	return p
}

// Step advances bullets one tick against the given target set and applies
// round progression. The first lethal hit of a round ends it; a repeat
// trigger in the same pass is a guarded no-op.
func (ms *Match) Step(targets []Target) []Hit {
	if ms.Phase == PhaseGameEnd || ms.Phase == PhaseLobby {
		return nil
	}
	var hits []Hit
	ms.Bullets, hits = StepBullets(ms.Bullets, ms.Map, targets)

	if ms.Config.Mode == ModeDuel {
		for _, h := range hits {
			if h.Killed && ms.Phase == PhasePlaying {
				ms.endRound(h.OwnerID)
			}
		}
	}
	return hits
}

// PlayerTargets returns the roster as bullet targets.
func (ms *Match) PlayerTargets() []Target {
	ts := make([]Target, len(ms.Players))
	for i, p := range ms.Players {
		ts[i] = p
	}
	return ts
}

// endRound credits the round to the winner and moves to ROUND_END, or to
// GAME_END when the win threshold is reached.
func (ms *Match) endRound(winnerID string) {
	ms.Phase = PhaseRoundEnd
	ms.RoundWin = winnerID
	w := ms.PlayerByID(winnerID)
	if w == nil {
		return
	}
	w.Wins++
	if w.Wins >= ms.Config.RoundsToWin {
		ms.Phase = PhaseGameEnd
		ms.WinnerID = w.ID
	}
}

// Gen returns the current restart generation token. A scheduled restart
// must present the token it captured; any reset bumps the generation and
// strands stale timers.
func (ms *Match) Gen() uint64 {
	return ms.gen
}

// RestartRound performs the delayed ROUND_END -> PLAYING transition.
// It only fires if the phase is still ROUND_END and the token is current,
// so a manual reset racing the timer is a guarded no-op.
func (ms *Match) RestartRound(token uint64) bool {
	if ms.Phase != PhaseRoundEnd || token != ms.gen {
		return false
	}
	ms.Round++
	ms.resetPositions()
	ms.Phase = PhasePlaying
	return true
}

// ResetMatch is the explicit new-match action out of GAME_END: wins and
// round counters reset, the recorded winner clears, and play resumes.
func (ms *Match) ResetMatch() {
	ms.gen++
	for _, p := range ms.Players {
		p.Wins = 0
		p.Score = 0
	}
	ms.Round = 1
	ms.WinnerID = ""
	ms.RoundWin = ""
	ms.resetPositions()
	ms.Phase = PhasePlaying
}

// resetPositions clears bullets and restores every player to their
// map-defined spawn at full health.
func (ms *Match) resetPositions() {
	ms.Bullets = nil
	for i, p := range ms.Players {
		x, y := ms.Map.Spawn(i)
		p.ResetForRound(x, y)
	}
}
