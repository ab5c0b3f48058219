package main

import "encoding/json"

// Client -> Server message types
const (
	MsgCreateRoom  = "create_room"
	MsgJoinRoom    = "join_room"
	MsgLeaveRoom   = "leave_room"
	MsgStartGame   = "start_game"
	MsgPlayerMove  = "player_move"
	MsgPlayerShoot = "player_shoot"
	MsgNewMatch    = "new_match"
	MsgRegister    = "register"
	MsgLogin       = "login"
	MsgAuth        = "auth"
)

// Server -> Client message types
const (
	MsgRoomCreated  = "room_created"
	MsgRoomJoined   = "room_joined" // to the joining client only
	MsgPlayerJoined = "player_joined"
	MsgPlayerLeft   = "player_left"
	MsgGameStarted  = "game_started"
	MsgGameUpdate   = "game_update" // periodic full snapshot (binary msgpack)
	MsgPlayerMoved  = "player_moved"
	MsgBulletFired  = "bullet_fired"
	MsgRoundEnded   = "round_ended"
	MsgWaveComplete = "wave_complete"
	MsgGameComplete = "game_complete"
	MsgError        = "error"
	MsgAuthOK       = "auth_ok"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// CreateRoomMsg asks the host to allocate a room
type CreateRoomMsg struct {
	Name  string `json:"name"` // player name
	Mode  int    `json:"mode"` // 0 = duel, 1 = co-op
	MapID string `json:"map"`
}

// JoinRoomMsg asks to join an existing room by code
type JoinRoomMsg struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MoveMsg carries an absolute target position. The host re-validates it
// against bounds and obstacles; client-computed legality is never trusted.
type MoveMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShootMsg carries a shot velocity vector
type ShootMsg struct {
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// RoomStateMsg describes a room's roster and map config
type RoomStateMsg struct {
	Code    string        `json:"code"`
	Mode    int           `json:"mode"`
	HostID  string        `json:"host"`
	Phase   string        `json:"phase"`
	Players []PlayerState `json:"players"`
	Map     *GameMap      `json:"map"`
}

// RoomCreatedMsg confirms room creation to the creator
type RoomCreatedMsg struct {
	Code     string       `json:"code"`
	PlayerID string       `json:"pid"`
	Room     RoomStateMsg `json:"room"`
}

// RoomJoinedMsg confirms a join to the joining client
type RoomJoinedMsg struct {
	Code     string       `json:"code"`
	PlayerID string       `json:"pid"`
	Room     RoomStateMsg `json:"room"`
}

// PlayerJoinedMsg is broadcast to room members on a successful join
type PlayerJoinedMsg struct {
	PlayerID string       `json:"pid"`
	Room     RoomStateMsg `json:"room"`
}

// PlayerLeftMsg is broadcast when a member leaves; HostID carries the
// (possibly migrated) host of record
type PlayerLeftMsg struct {
	PlayerID string `json:"pid"`
	HostID   string `json:"host"`
}

// GameStartedMsg is broadcast when the host of record starts the game
type GameStartedMsg struct {
	Players []PlayerState `json:"p"`
	Enemies []EnemyState  `json:"e"`
	Wave    int           `json:"wave"`
}

// PlayerMovedMsg is a low-latency position delta between snapshots
type PlayerMovedMsg struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// BulletFiredMsg is a low-latency spawn delta between snapshots
type BulletFiredMsg struct {
	OwnerID string  `json:"o"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Color   string  `json:"c"`
}

// RoundEndedMsg is broadcast in duel rooms when a round is decided
type RoundEndedMsg struct {
	WinnerID string `json:"wid"`
	Wins     int    `json:"wins"`
	GameOver bool   `json:"over"`
}

// WaveCompleteMsg signals wave progression in co-op rooms
type WaveCompleteMsg struct {
	Wave int `json:"wave"`
	Next int `json:"next"`
}

// GameCompleteMsg signals that the final wave was cleared
type GameCompleteMsg struct {
	Waves   int           `json:"waves"`
	Players []PlayerState `json:"p"`
}

// ErrorMsg sends a human-readable error to the originating client only
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// RegisterMsg / LoginMsg / AuthMsg drive account auth
type RegisterMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

type LoginMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"u"`
	PlayerID int64  `json:"pid"`
}

// PlayerState is broadcast per player in each snapshot
type PlayerState struct {
	ID    string  `json:"id" msgpack:"id"`
	Name  string  `json:"n" msgpack:"n"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	HP    int     `json:"hp" msgpack:"hp"`
	MaxHP int     `json:"mhp" msgpack:"mhp"`
	Alive bool    `json:"a" msgpack:"a"`
	Wins  int     `json:"w" msgpack:"w"`
	Score int     `json:"sc" msgpack:"sc"`
	Color string  `json:"c" msgpack:"c"`
}

// EnemyState is broadcast per enemy
type EnemyState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	HP    int     `json:"hp" msgpack:"hp"`
	MaxHP int     `json:"mhp" msgpack:"mhp"`
	Size  float64 `json:"s" msgpack:"s"`
	Color string  `json:"c" msgpack:"c"`
}

// BulletState is broadcast per bullet, in stable evaluation order
type BulletState struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	VX    float64 `json:"vx" msgpack:"vx"`
	VY    float64 `json:"vy" msgpack:"vy"`
	Owner string  `json:"o" msgpack:"o"`
	Color string  `json:"c" msgpack:"c"`
}

// GameState is the full authoritative snapshot, the correction point for
// client-side prediction.
type GameState struct {
	Players []PlayerState `json:"p" msgpack:"p"`
	Enemies []EnemyState  `json:"e" msgpack:"e"`
	Bullets []BulletState `json:"b" msgpack:"b"`
	Phase   string        `json:"ph" msgpack:"ph"`
	Round   int           `json:"r" msgpack:"r"`
	Wave    int           `json:"wv" msgpack:"wv"`
	Winner  string        `json:"win" msgpack:"win"`
	Tick    uint64        `json:"tick" msgpack:"tick"`
}

// ToState converts a player to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:    p.ID,
		Name:  p.Name,
		X:     p.X,
		Y:     p.Y,
		HP:    p.HP,
		MaxHP: p.MaxHP,
		Alive: p.Alive,
		Wins:  p.Wins,
		Score: p.Score,
		Color: p.Color,
	}
}

// ToState converts an enemy to protocol state
func (e *Enemy) ToState() EnemyState {
	return EnemyState{
		ID:    e.ID,
		X:     e.X,
		Y:     e.Y,
		HP:    e.HP,
		MaxHP: e.MaxHP,
		Size:  e.Size,
		Color: e.Color,
	}
}

// ToState converts a bullet to protocol state
func (b *Bullet) ToState() BulletState {
	return BulletState{
		X:     b.X,
		Y:     b.Y,
		VX:    b.VX,
		VY:    b.VY,
		Owner: b.OwnerID,
		Color: b.Color,
	}
}
