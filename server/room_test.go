package main

import (
	"strings"
	"testing"
)

func TestGenerateRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateRoomCode(roomCodeLen)
		if len(code) != roomCodeLen {
			t.Fatalf("expected %d chars, got %q", roomCodeLen, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(roomCodeChars, ch) {
				t.Fatalf("code %q uses char outside the alphabet", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes should vary")
	}
}

func TestCreateAndGetRoom(t *testing.T) {
	rm := NewRoomManager()
	room := rm.CreateRoom(ModeDuel, MapByID("garden"), nil)
	if room == nil {
		t.Fatal("room should be created")
	}
	defer room.Game.Stop()

	if got := rm.GetRoom(room.Code); got != room {
		t.Error("lookup by code should return the room")
	}
	if rm.GetRoom("ZZZZ") != nil {
		t.Error("unknown code should miss")
	}
	if rm.RoomCount() != 1 {
		t.Errorf("expected 1 room, got %d", rm.RoomCount())
	}
}

func TestRoomTeardownWhenEmpty(t *testing.T) {
	rm := NewRoomManager()
	room := rm.CreateRoom(ModeDuel, MapByID("garden"), nil)
	p := room.Game.AddPlayer("Alice", "#fff", 0, &mockClient{})

	rm.RemovePlayer(room.Code, p.ID)

	if rm.RoomCount() != 0 {
		t.Error("emptied room should be torn down")
	}
	if rm.GetRoom(room.Code) != nil {
		t.Error("torn-down room should not resolve")
	}
}

func TestRoomRemoveMigratesHost(t *testing.T) {
	rm := NewRoomManager()
	room := rm.CreateRoom(ModeCoop, MapByID("plaza"), nil)
	defer room.Game.Stop()

	c2 := &mockClient{}
	p1 := room.Game.AddPlayer("Alice", "#fff", 0, &mockClient{})
	p2 := room.Game.AddPlayer("Bob", "#fff", 0, c2)

	rm.RemovePlayer(room.Code, p1.ID)

	if rm.RoomCount() != 1 {
		t.Fatal("room with members must survive")
	}
	if room.Game.HostID() != p2.ID {
		t.Error("host should migrate to the remaining member")
	}
	env := c2.lastOfType(MsgPlayerLeft)
	if env == nil {
		t.Fatal("departure should be announced")
	}
	left := env.Data.(PlayerLeftMsg)
	if left.PlayerID != p1.ID || left.HostID != p2.ID {
		t.Errorf("unexpected departure message %+v", left)
	}
}

func TestRoomLimit(t *testing.T) {
	rm := NewRoomManager()
	rooms := make([]*Room, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		r := rm.CreateRoom(ModeDuel, MapByID("garden"), nil)
		if r == nil {
			t.Fatalf("room %d should be created", i)
		}
		rooms = append(rooms, r)
	}
	if rm.CreateRoom(ModeDuel, MapByID("garden"), nil) != nil {
		t.Error("room limit should be enforced")
	}
	for _, r := range rooms {
		r.Game.Stop()
	}
}
