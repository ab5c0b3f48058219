package main

import "sync"

// RemoteView is the client-side render state for networked play. The
// client's own entity is moved optimistically when an intent is sent; the
// authoritative snapshot overwrites everything on arrival. There is no
// replay or rollback: divergence is corrected implicitly by the next
// game_update.
type RemoteView struct {
	mu        sync.Mutex
	selfID    string
	gmap      *GameMap
	state     GameState
	connected bool
}

// NewRemoteView creates a view bound to the player's own id and the map
// config received at room join.
func NewRemoteView(selfID string, gmap *GameMap) *RemoteView {
	return &RemoteView{selfID: selfID, gmap: gmap, connected: true}
}

// PredictMove applies a movement intent to the local copy of the view's
// own entity before any host confirmation, using the same legality test
// the host runs. Returns whether the optimistic update was applied.
func (v *RemoteView) PredictMove(tx, ty float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.self()
	if p == nil || !p.Alive {
		return false
	}
	if !CanOccupy(tx, ty, PlayerSize, v.gmap) {
		return false
	}
	p.X = tx
	p.Y = ty
	return true
}

// ApplySnapshot overwrites local state with the authoritative snapshot,
// the correction point for any predicted divergence.
func (v *RemoteView) ApplySnapshot(gs GameState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = gs
}

// ApplyMoveDelta merges a low-latency position delta from the host.
func (v *RemoteView) ApplyMoveDelta(msg PlayerMovedMsg) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.state.Players {
		if v.state.Players[i].ID == msg.ID {
			v.state.Players[i].X = msg.X
			v.state.Players[i].Y = msg.Y
			return
		}
	}
}

// ApplyBulletFired appends a bullet spawned between snapshots.
func (v *RemoteView) ApplyBulletFired(msg BulletFiredMsg) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Bullets = append(v.state.Bullets, BulletState{
		X:     msg.X,
		Y:     msg.Y,
		VX:    msg.VX,
		VY:    msg.VY,
		Owner: msg.OwnerID,
		Color: msg.Color,
	})
}

// SetConnected flips the connectivity status. A disconnected view keeps
// its last-known state for rendering instead of clearing it.
func (v *RemoteView) SetConnected(up bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.connected = up
}

// Connected reports the current connectivity status.
func (v *RemoteView) Connected() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.connected
}

// State returns a copy of the current render state. The slices are copied
// too, so a caller mutating the result cannot corrupt the view.
func (v *RemoteView) State() GameState {
	v.mu.Lock()
	defer v.mu.Unlock()
	gs := v.state
	gs.Players = append([]PlayerState(nil), v.state.Players...)
	gs.Enemies = append([]EnemyState(nil), v.state.Enemies...)
	gs.Bullets = append([]BulletState(nil), v.state.Bullets...)
	return gs
}

// self finds the view's own entity in the current state.
func (v *RemoteView) self() *PlayerState {
	for i := range v.state.Players {
		if v.state.Players[i].ID == v.selfID {
			return &v.state.Players[i]
		}
	}
	return nil
}
