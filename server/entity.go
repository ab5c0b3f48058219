package main

const (
	CanvasWidth  = 800.0
	CanvasHeight = 600.0

	PlayerSize     = 20.0 // footprint for obstacle/bounds tests
	PlayerRadius   = 15.0 // circular hit radius
	PlayerMaxHP    = 100
	PlayerMoveStep = 5.0 // distance per held-key tick in duel mode

	BulletSize   = 6.0
	BulletRadius = 5.0
	BulletSpeed  = 10.0 // units per tick
	BulletDamage = 25

	EnemySize = 24.0
)

// Obstacle is a static axis-aligned rectangle, defined per map and shared
// read-only by all systems.
type Obstacle struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Width  float64 `json:"width" msgpack:"w"`
	Height float64 `json:"height" msgpack:"h"`
}

// Rect returns the obstacle's rectangle for overlap tests.
func (o Obstacle) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Body is the positional/collidable capability shared by every mobile
// entity kind, so movement and collision code needs no per-kind branches.
type Body struct {
	X, Y   float64
	Size   float64 // square footprint edge for obstacle/bounds tests
	Radius float64 // circular radius for entity-vs-entity hits
}

// Player is owned by the simulation host (or the single local process in
// duel mode). Reset between rounds, destroyed only at session teardown.
type Player struct {
	ID   string
	Name string
	Body
	HP    int
	MaxHP int
	Alive bool
	Wins  int
	Score int
	Color string

	AccountID int64 // 0 = guest
}

// NewPlayer creates a live player at the given spawn position.
func NewPlayer(id, name, color string, x, y float64) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Body:  Body{X: x, Y: y, Size: PlayerSize, Radius: PlayerRadius},
		HP:    PlayerMaxHP,
		MaxHP: PlayerMaxHP,
		Alive: true,
		Color: color,
	}
}

// ResetForRound restores the player to a spawn point at full health.
func (p *Player) ResetForRound(x, y float64) {
	p.X = x
	p.Y = y
	p.HP = p.MaxHP
	p.Alive = true
}

// TakeDamage reduces HP and returns true if the player died from it.
// HP never leaves [0, MaxHP]; Alive tracks HP > 0.
func (p *Player) TakeDamage(dmg int) bool {
	if !p.Alive {
		return false
	}
	p.HP -= dmg
	if p.HP <= 0 {
		p.HP = 0
		p.Alive = false
		return true
	}
	return false
}

// Enemy is produced and behaviorally driven by a WaveDirector; the core
// owns only its health and treats it as a passive circular target.
type Enemy struct {
	ID string
	Body
	HP    int
	MaxHP int
	Color string
}

// IsAlive reports whether the enemy still has health.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// TakeDamage reduces HP, clamped at zero, and returns true on death.
func (e *Enemy) TakeDamage(dmg int) bool {
	if e.HP <= 0 {
		return false
	}
	e.HP -= dmg
	if e.HP <= 0 {
		e.HP = 0
		return true
	}
	return false
}

// Bullet is transient: it never survives past the tick in which any of its
// termination conditions (bounds, obstacle, hit) becomes true.
type Bullet struct {
	X, Y    float64
	VX, VY  float64
	OwnerID string
	Color   string
}
