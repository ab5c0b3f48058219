package main

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 30 // simulation ticks per second
	BroadcastRate  = 10 // full snapshots per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate

	maxBulletsPerRoom = 200
	EnemyKillScore    = 10
)

// Broadcaster is the transport seam for sending messages to one client
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game is the authoritative simulation for one room. Its state is mutated
// only by the room's own message handlers and tick loop, all serialized by
// one mutex; distinct rooms share nothing and run concurrently.
type Game struct {
	mu       sync.Mutex
	match    *Match
	director WaveDirector
	enemies  []*Enemy
	wave     int
	clients  map[string]Broadcaster // playerID -> client
	hostID   string
	tick     uint64
	running  bool
	stop     chan struct{}

	db      *DB // optional result store
	startAt time.Time
}

// NewGame creates a game for the given mode and map.
func NewGame(mode GameMode, gmap *GameMap, db *DB) *Game {
	g := &Game{
		match:   NewMatch(DefaultConfig(mode), gmap),
		clients: make(map[string]Broadcaster),
		stop:    make(chan struct{}),
		db:      db,
	}
	if mode == ModeCoop {
		g.director = NewScriptedDirector(5)
	}
	return g
}

// SetDirector swaps in an external wave collaborator. Must be called
// before the game starts.
func (g *Game) SetDirector(d WaveDirector) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.director = d
}

// Run starts the tick loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the tick loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// AddPlayer adds a player and client to the roster. The first player in
// becomes host of record. Returns nil when the room is full.
func (g *Game) AddPlayer(name, color string, accountID int64, client Broadcaster) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := GenerateID(4)
	p := g.match.AddPlayer(id, name, color)
	if p == nil {
		return nil
	}
	p.AccountID = accountID
	if g.hostID == "" {
		g.hostID = p.ID
	}
	g.clients[p.ID] = client
	return p
}

// RemovePlayer drops a player. If the departing player was host of
// record, the oldest remaining member becomes host. Returns the new host
// id ("" when the room emptied).
func (g *Game) RemovePlayer(id string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.match.RemovePlayer(id)
	delete(g.clients, id)

	if g.hostID == id {
		g.hostID = ""
		if len(g.match.Players) > 0 {
			g.hostID = g.match.Players[0].ID
		}
	}
	return g.hostID
}

// HostID returns the current host of record.
func (g *Game) HostID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hostID
}

// PlayerCount returns the roster size.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.match.Players)
}

// RoomState serializes the roster and map config for lifecycle messages.
func (g *Game) RoomState(code string) RoomStateMsg {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]PlayerState, 0, len(g.match.Players))
	for _, p := range g.match.Players {
		players = append(players, p.ToState())
	}
	return RoomStateMsg{
		Code:    code,
		Mode:    int(g.match.Config.Mode),
		HostID:  g.hostID,
		Phase:   g.match.Phase.String(),
		Players: players,
		Map:     g.match.Map,
	}
}

// StartGame begins play. Only the host of record's request is honored.
func (g *Game) StartGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != g.hostID || g.match.Phase != PhaseLobby {
		return false
	}
	g.match.Start()
	g.startAt = time.Now()

	if g.match.Config.Mode == ModeCoop {
		g.wave = 1
		g.enemies = g.director.SpawnWave(1)
	}

	started := GameStartedMsg{
		Players: make([]PlayerState, 0, len(g.match.Players)),
		Enemies: make([]EnemyState, 0, len(g.enemies)),
		Wave:    g.wave,
	}
	for _, p := range g.match.Players {
		started.Players = append(started.Players, p.ToState())
	}
	for _, e := range g.enemies {
		started.Enemies = append(started.Enemies, e.ToState())
	}
	g.broadcastJSON(Envelope{T: MsgGameStarted, Data: started})
	return true
}

// HandleMove applies a client movement intent after re-validating the
// target against bounds and obstacles. Accepted moves are echoed to the
// room as a low-latency delta.
func (g *Game) HandleMove(playerID string, x, y float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.match.Move(playerID, x, y) {
		return false
	}
	g.broadcastJSON(Envelope{T: MsgPlayerMoved, Data: PlayerMovedMsg{ID: playerID, X: x, Y: y}})
	return true
}

// HandleShoot spawns a bullet from a client velocity vector and echoes
// the spawn to the room.
func (g *Game) HandleShoot(playerID string, vx, vy float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.match.Bullets) >= maxBulletsPerRoom {
		return false
	}
	b := g.match.ShootVelocity(playerID, vx, vy)
	if b == nil {
		return false
	}
	g.broadcastJSON(Envelope{T: MsgBulletFired, Data: BulletFiredMsg{
		OwnerID: b.OwnerID,
		X:       b.X,
		Y:       b.Y,
		VX:      b.VX,
		VY:      b.VY,
		Color:   b.Color,
	}})
	return true
}

// HandleNewMatch is the explicit reset out of GAME_END (duel rooms, host
// of record only).
func (g *Game) HandleNewMatch(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != g.hostID || g.match.Phase != PhaseGameEnd {
		return false
	}
	g.match.ResetMatch()
	return true
}

// update runs one authoritative tick
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++

	switch g.match.Config.Mode {
	case ModeDuel:
		g.updateDuel()
	case ModeCoop:
		g.updateCoop()
	}

	if g.tick%BroadcastEvery == 0 && g.match.Phase != PhaseLobby {
		g.broadcastSnapshot()
	}
}

func (g *Game) updateDuel() {
	before := g.match.Phase
	g.match.Step(g.match.PlayerTargets())

	if before == PhasePlaying && g.match.Phase != PhasePlaying {
		winner := g.match.RoundWin
		over := g.match.Phase == PhaseGameEnd
		wins := 0
		if w := g.match.PlayerByID(winner); w != nil {
			wins = w.Wins
		}
		g.broadcastJSON(Envelope{T: MsgRoundEnded, Data: RoundEndedMsg{
			WinnerID: winner,
			Wins:     wins,
			GameOver: over,
		}})

		if over {
			g.recordDuelResult()
		} else {
			token := g.match.Gen()
			time.AfterFunc(g.match.Config.RestartDelay, func() {
				g.mu.Lock()
				defer g.mu.Unlock()
				g.match.RestartRound(token)
			})
		}
	}
}

func (g *Game) updateCoop() {
	if g.match.Phase != PhasePlaying {
		return
	}

	g.director.Advance(g.enemies, g.match.Players)

	targets := make([]Target, len(g.enemies))
	for i, e := range g.enemies {
		targets[i] = e
	}
	hits := g.match.Step(targets)

	for _, h := range hits {
		if !h.Killed {
			continue
		}
		if owner := g.match.PlayerByID(h.OwnerID); owner != nil {
			owner.Score += EnemyKillScore
		}
	}

	// Drop dead enemies from the roster
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	g.enemies = alive

	if len(g.enemies) == 0 {
		g.advanceWave()
	}
}

// advanceWave swaps in the next roster, or completes the session after
// the final wave and returns the room to an idle lobby.
func (g *Game) advanceWave() {
	if g.wave >= g.director.TotalWaves() {
		complete := GameCompleteMsg{Waves: g.wave}
		for _, p := range g.match.Players {
			complete.Players = append(complete.Players, p.ToState())
		}
		g.broadcastJSON(Envelope{T: MsgGameComplete, Data: complete})
		g.match.Phase = PhaseLobby
		g.match.Bullets = nil
		g.wave = 0
		return
	}

	done := g.wave
	g.wave++
	g.enemies = g.director.SpawnWave(g.wave)
	g.broadcastJSON(Envelope{T: MsgWaveComplete, Data: WaveCompleteMsg{Wave: done, Next: g.wave}})
}

// recordDuelResult persists a finished duel. Runs the write off the tick
// loop.
func (g *Game) recordDuelResult() {
	if g.db == nil || len(g.match.Players) < 2 {
		return
	}
	res := DuelResult{
		ID:       uuid.NewString(),
		Winner:   g.match.WinnerID,
		Rounds:   g.match.Round,
		Duration: time.Since(g.startAt).Seconds(),
	}
	for _, p := range g.match.Players {
		res.Players = append(res.Players, DuelResultPlayer{
			PlayerID:  p.ID,
			AccountID: p.AccountID,
			Name:      p.Name,
			Wins:      p.Wins,
			Won:       p.ID == g.match.WinnerID,
		})
	}
	go func() {
		if err := g.db.RecordDuel(res); err != nil {
			log.Printf("record duel: %v", err)
		}
	}()
}

// broadcastSnapshot sends the full authoritative state as a binary
// msgpack frame.
func (g *Game) broadcastSnapshot() {
	gs := snapshotMatch(g.match, g.enemies, g.tick, g.wave)
	data, err := msgpack.Marshal(gs)
	if err != nil {
		log.Printf("snapshot marshal: %v", err)
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
}

// Broadcast sends a control message to every client in the room.
func (g *Game) Broadcast(msg Envelope) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastJSON(msg)
}

// broadcastJSON sends a control message to every client in the room.
// Callers must hold g.mu.
func (g *Game) broadcastJSON(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}

// SendTo delivers a message to a single room member.
func (g *Game) SendTo(playerID string, msg Envelope) {
	g.mu.Lock()
	client := g.clients[playerID]
	g.mu.Unlock()
	if client != nil {
		client.SendJSON(msg)
	}
}

// Snapshot returns the current authoritative state (read-only copy).
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return snapshotMatch(g.match, g.enemies, g.tick, g.wave)
}

// Phase returns the current match phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.match.Phase
}
