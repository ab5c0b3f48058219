package main

import "fmt"

// WaveDirector is the external collaborator that produces and drives the
// co-op enemy roster. The core consumes the entity state it yields and
// owns only health and collision; pathing, targeting and spawn tuning
// live behind this interface.
type WaveDirector interface {
	// SpawnWave returns the enemy roster for the given wave (1-based).
	SpawnWave(wave int) []*Enemy
	// TotalWaves is the number of waves before the session completes.
	TotalWaves() int
	// Advance runs one tick of enemy behavior. Enemies are collision-free
	// mobile entities; the director may move them freely within bounds.
	Advance(enemies []*Enemy, players []*Player)
}

// ScriptedDirector is the built-in director: fixed rosters per wave and a
// slow drift toward the nearest living player.
type ScriptedDirector struct {
	Waves int
	next  int // id counter across waves
}

// NewScriptedDirector returns a director with the given wave count.
func NewScriptedDirector(waves int) *ScriptedDirector {
	if waves <= 0 {
		waves = 5
	}
	return &ScriptedDirector{Waves: waves}
}

func (d *ScriptedDirector) TotalWaves() int { return d.Waves }

func (d *ScriptedDirector) SpawnWave(wave int) []*Enemy {
	count := 2 + wave
	hp := 50 + 25*(wave-1)
	enemies := make([]*Enemy, 0, count)
	for i := 0; i < count; i++ {
		d.next++
		// Spawn along the top edge, spread across the canvas
		x := CanvasWidth * float64(i+1) / float64(count+1)
		e := &Enemy{
			ID:    fmt.Sprintf("e%d", d.next),
			Body:  Body{X: x, Y: 40, Size: EnemySize, Radius: EnemySize / 2},
			HP:    hp,
			MaxHP: hp,
			Color: "#b14ef7",
		}
		enemies = append(enemies, e)
	}
	return enemies
}

const scriptedEnemySpeed = 1.2 // units per tick

func (d *ScriptedDirector) Advance(enemies []*Enemy, players []*Player) {
	for _, e := range enemies {
		if !e.IsAlive() {
			continue
		}
		var target *Player
		best := 0.0
		for _, p := range players {
			if !p.Alive {
				continue
			}
			dist := Distance(e.X, e.Y, p.X, p.Y)
			if target == nil || dist < best {
				target, best = p, dist
			}
		}
		if target == nil || best == 0 {
			continue
		}
		e.X += (target.X - e.X) / best * scriptedEnemySpeed
		e.Y += (target.Y - e.Y) / best * scriptedEnemySpeed
		e.X = Clamp(e.X, e.Size/2, CanvasWidth-e.Size/2)
		e.Y = Clamp(e.Y, e.Size/2, CanvasHeight-e.Size/2)
	}
}
