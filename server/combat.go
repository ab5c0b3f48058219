package main

import "math"

// Target is anything a bullet can damage. Players and enemies both
// qualify; the resolver never cares which kind it hit.
type Target interface {
	TargetID() string
	Center() (x, y float64)
	HitRadius() float64
	CanBeHit() bool
	TakeDamage(dmg int) bool
}

func (p *Player) TargetID() string           { return p.ID }
func (p *Player) Center() (float64, float64) { return p.X, p.Y }
func (p *Player) HitRadius() float64         { return p.Radius }
func (p *Player) CanBeHit() bool             { return p.Alive }

func (e *Enemy) TargetID() string           { return e.ID }
func (e *Enemy) Center() (float64, float64) { return e.X, e.Y }
func (e *Enemy) HitRadius() float64         { return e.Radius }
func (e *Enemy) CanBeHit() bool             { return e.IsAlive() }

// Hit records one damage application during a bullet pass.
type Hit struct {
	OwnerID  string // who fired the bullet
	TargetID string // who got hit
	Killed   bool   // health crossed to zero
}

// SpawnBullet creates a bullet at the shooter's position aimed at the
// target point. A zero-length aim vector yields no bullet, avoiding NaN
// velocity.
func SpawnBullet(shooter *Player, tx, ty float64) *Bullet {
	dx := tx - shooter.X
	dy := ty - shooter.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return nil
	}
	return &Bullet{
		X:       shooter.X,
		Y:       shooter.Y,
		VX:      dx / length * BulletSpeed,
		VY:      dy / length * BulletSpeed,
		OwnerID: shooter.ID,
		Color:   shooter.Color,
	}
}

// SpawnBulletVelocity creates a bullet from a client-supplied velocity
// vector, renormalized to the fixed bullet speed so the wire value never
// changes the speed. Zero vectors are dropped.
func SpawnBulletVelocity(shooter *Player, vx, vy float64) *Bullet {
	return SpawnBullet(shooter, shooter.X+vx, shooter.Y+vy)
}

// StepBullets advances every bullet one tick and resolves its fate:
// leaving bounds, striking an obstacle, or hitting an eligible target all
// terminate the bullet in this same pass. Survivors keep their original
// relative order so snapshots diff deterministically.
func StepBullets(bullets []*Bullet, m *GameMap, targets []Target) ([]*Bullet, []Hit) {
	next := bullets[:0]
	var hits []Hit

	for _, b := range bullets {
		b.X += b.VX
		b.Y += b.VY

		if b.X < 0 || b.X > m.Width || b.Y < 0 || b.Y > m.Height {
			continue
		}
		if PointBlocked(b.X, b.Y, BulletSize, m.Obstacles) {
			continue
		}

		landed := false
		for _, t := range targets {
			if !t.CanBeHit() || t.TargetID() == b.OwnerID {
				continue
			}
			tx, ty := t.Center()
			if CirclesOverlap(b.X, b.Y, BulletRadius, tx, ty, t.HitRadius()) {
				killed := t.TakeDamage(BulletDamage)
				hits = append(hits, Hit{OwnerID: b.OwnerID, TargetID: t.TargetID(), Killed: killed})
				landed = true
				break
			}
		}
		if landed {
			continue
		}

		next = append(next, b)
	}
	return next, hits
}
