package main

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 60
	maxNameLen        = 16
)

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	playerID   string
	roomCode   string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
	// Auth state
	accountID int64  // 0 = unauthenticated/guest
	username  string // "" = unauthenticated
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF marker byte so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// sendError delivers an error message to this client only
func (c *Client) sendError(reason string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: reason}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgCreateRoom:
		c.handleCreateRoom(env.D)
	case MsgJoinRoom:
		c.handleJoinRoom(env.D)
	case MsgStartGame:
		c.handleStartGame()
	case MsgPlayerMove:
		c.handlePlayerMove(env.D)
	case MsgPlayerShoot:
		c.handlePlayerShoot(env.D)
	case MsgNewMatch:
		c.handleNewMatch()
	case MsgLeaveRoom:
		c.handleLeaveRoom()
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgAuth:
		c.handleAuth(env.D)
	}
}

// cleanName trims and bounds a player name; empty names are invalid.
// Truncation is by rune so multi-byte names stay valid UTF-8.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	return name
}

func (c *Client) handleCreateRoom(data json.RawMessage) {
	var msg CreateRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	name := cleanName(msg.Name)
	if name == "" {
		c.sendError("player name is required")
		return
	}
	if c.roomCode != "" {
		c.sendError("already in a room")
		return
	}

	mode := GameMode(msg.Mode)
	if mode != ModeDuel && mode != ModeCoop {
		mode = ModeCoop
	}
	gmap := MapByID(msg.MapID)
	if mode == ModeDuel {
		gmap = MapByID(duelMap.ID)
	}

	room := c.hub.rooms.CreateRoom(mode, gmap, c.hub.db)
	if room == nil {
		c.sendError("too many active rooms")
		return
	}

	player := room.Game.AddPlayer(name, colorForIndex(0), c.accountID, c)
	c.playerID = player.ID
	c.roomCode = room.Code

	c.SendJSON(Envelope{T: MsgRoomCreated, Data: RoomCreatedMsg{
		Code:     room.Code,
		PlayerID: player.ID,
		Room:     room.Game.RoomState(room.Code),
	}})
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	var msg JoinRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	name := cleanName(msg.Name)
	if name == "" {
		c.sendError("player name is required")
		return
	}
	if c.roomCode != "" {
		c.sendError("already in a room")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	room := c.hub.rooms.GetRoom(code)
	if room == nil {
		c.sendError("room not found")
		return
	}

	player := room.Game.AddPlayer(name, colorForIndex(room.Game.PlayerCount()), c.accountID, c)
	if player == nil {
		c.sendError("room is full")
		return
	}
	c.playerID = player.ID
	c.roomCode = room.Code

	c.SendJSON(Envelope{T: MsgRoomJoined, Data: RoomJoinedMsg{
		Code:     room.Code,
		PlayerID: player.ID,
		Room:     room.Game.RoomState(room.Code),
	}})
	room.Game.Broadcast(Envelope{T: MsgPlayerJoined, Data: PlayerJoinedMsg{
		PlayerID: player.ID,
		Room:     room.Game.RoomState(room.Code),
	}})
}

func (c *Client) room() *Room {
	if c.roomCode == "" || c.playerID == "" {
		return nil
	}
	return c.hub.rooms.GetRoom(c.roomCode)
}

func (c *Client) handleStartGame() {
	room := c.room()
	if room == nil {
		return
	}
	if !room.Game.StartGame(c.playerID) {
		c.sendError("only the host can start the game")
	}
}

func (c *Client) handlePlayerMove(data json.RawMessage) {
	room := c.room()
	if room == nil {
		return
	}
	var msg MoveMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	// Invalid targets are rejected silently: frequent, not exceptional
	room.Game.HandleMove(c.playerID, msg.X, msg.Y)
}

func (c *Client) handlePlayerShoot(data json.RawMessage) {
	room := c.room()
	if room == nil {
		return
	}
	var msg ShootMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room.Game.HandleShoot(c.playerID, msg.VX, msg.VY)
}

func (c *Client) handleNewMatch() {
	room := c.room()
	if room == nil {
		return
	}
	room.Game.HandleNewMatch(c.playerID)
}

func (c *Client) handleLeaveRoom() {
	if c.roomCode != "" {
		c.hub.rooms.RemovePlayer(c.roomCode, c.playerID)
		c.roomCode = ""
		c.playerID = ""
	}
}

func (c *Client) handleRegister(data json.RawMessage) {
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.accountID = id
	c.username = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: msg.Username, PlayerID: id}})
}

func (c *Client) handleLogin(data json.RawMessage) {
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.accountID = id
	c.username = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: msg.Username, PlayerID: id}})
}

func (c *Client) handleAuth(data json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.sendError("invalid token")
		return
	}
	c.accountID = id
	c.username = username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: msg.Token, Username: username, PlayerID: id}})
}
