package main

// SpawnPoint is a per-player spawn position defined by the map.
type SpawnPoint struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// GameMap bundles a display name, the static obstacle set, and the spawn
// points handed to players in roster order.
type GameMap struct {
	ID        string       `json:"id" msgpack:"id"`
	Name      string       `json:"name" msgpack:"n"`
	Width     float64      `json:"width" msgpack:"w"`
	Height    float64      `json:"height" msgpack:"h"`
	Obstacles []Obstacle   `json:"obstacles" msgpack:"o"`
	Spawns    []SpawnPoint `json:"spawns" msgpack:"s"`
}

// Spawn returns the spawn point for the given roster index, cycling if the
// roster is larger than the map's spawn list.
func (m *GameMap) Spawn(i int) (float64, float64) {
	s := m.Spawns[i%len(m.Spawns)]
	return s.X, s.Y
}

// Built-in map layouts. The duel map is fixed; co-op rooms pick by id at
// creation.
var (
	duelMap = GameMap{
		ID:     "garden",
		Name:   "Rose Garden",
		Width:  CanvasWidth,
		Height: CanvasHeight,
		Obstacles: []Obstacle{
			{X: 360, Y: 120, Width: 80, Height: 100},
			{X: 360, Y: 380, Width: 80, Height: 100},
			{X: 150, Y: 260, Width: 120, Height: 80},
			{X: 530, Y: 260, Width: 120, Height: 80},
		},
		Spawns: []SpawnPoint{
			{X: 80, Y: 300},
			{X: 720, Y: 300},
		},
	}

	coopMap = GameMap{
		ID:     "plaza",
		Name:   "Moonlit Plaza",
		Width:  CanvasWidth,
		Height: CanvasHeight,
		Obstacles: []Obstacle{
			{X: 120, Y: 120, Width: 100, Height: 60},
			{X: 580, Y: 120, Width: 100, Height: 60},
			{X: 120, Y: 420, Width: 100, Height: 60},
			{X: 580, Y: 420, Width: 100, Height: 60},
			{X: 350, Y: 250, Width: 100, Height: 100},
		},
		Spawns: []SpawnPoint{
			{X: 100, Y: 300},
			{X: 700, Y: 300},
			{X: 400, Y: 80},
			{X: 400, Y: 520},
		},
	}
)

// MapByID resolves a map id supplied at room creation. Unknown ids fall
// back to the co-op map so a bad request still yields a playable room.
func MapByID(id string) *GameMap {
	switch id {
	case duelMap.ID:
		m := duelMap
		return &m
	case coopMap.ID:
		m := coopMap
		return &m
	default:
		m := coopMap
		return &m
	}
}
