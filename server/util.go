package main

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Player colors handed out in join order for co-op rooms.
var rosterColors = []string{"#ff5d8f", "#5d8fff", "#ffd25d", "#5dffa3"}

func colorForIndex(i int) string {
	return rosterColors[i%len(rosterColors)]
}
