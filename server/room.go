package main

import (
	"crypto/rand"
	"math/big"
	"sync"
)

const (
	maxRooms    = 100
	roomCodeLen = 4
	// No 0/O/1/I, codes are typed by hand
	roomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Room groups a fixed set of participants sharing one simulation and map.
type Room struct {
	Code string
	Game *Game
}

// RoomManager handles creation and lookup of rooms by code
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRoomManager creates a new RoomManager
func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom allocates a room with a short unique code and starts its
// tick loop. Returns nil if the room limit is reached.
func (rm *RoomManager) CreateRoom(mode GameMode, gmap *GameMap, db *DB) *Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if len(rm.rooms) >= maxRooms {
		return nil
	}

	var code string
	for {
		code = generateRoomCode(roomCodeLen)
		if _, exists := rm.rooms[code]; !exists {
			break
		}
	}

	room := &Room{
		Code: code,
		Game: NewGame(mode, gmap, db),
	}
	rm.rooms[code] = room
	go room.Game.Run()
	return room
}

// GetRoom returns a room by code
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// RemovePlayer removes a player from a room, migrating host of record to
// the oldest remaining member. Empty rooms are torn down.
func (rm *RoomManager) RemovePlayer(code, playerID string) {
	rm.mu.RLock()
	room, ok := rm.rooms[code]
	rm.mu.RUnlock()
	if !ok {
		return
	}

	newHost := room.Game.RemovePlayer(playerID)
	if room.Game.PlayerCount() == 0 {
		room.Game.Stop()
		rm.mu.Lock()
		delete(rm.rooms, code)
		rm.mu.Unlock()
		return
	}
	room.Game.Broadcast(Envelope{T: MsgPlayerLeft, Data: PlayerLeftMsg{
		PlayerID: playerID,
		HostID:   newHost,
	}})
}

// RoomCount returns the number of active rooms
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

func generateRoomCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(roomCodeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = roomCodeChars[idx.Int64()]
	}
	return string(b)
}
