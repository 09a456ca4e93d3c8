package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Particle is a single short-lived visual fleck.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Age      float64
	Lifetime float64
	Size     float64
	Color    color.NRGBA
}

// IsAlive returns true if the particle is still alive
func (p *Particle) IsAlive() bool {
	return p.Age < p.Lifetime
}

// BurstSystem turns gameplay events into particle bursts: hits spark,
// deaths pop, level-ups flare. It listens on the bus for the scene's
// lifetime and frees its subscriptions on teardown.
type BurstSystem struct {
	world        *World
	bus          *EventBus
	rng          *rand.Rand
	particles    []Particle
	maxParticles int
	subs         []Subscription
}

// NewBurstSystem creates the burst emitter and subscribes it to the
// visual-effect topics.
func NewBurstSystem(world *World, bus *EventBus, rng *rand.Rand) *BurstSystem {
	s := &BurstSystem{
		world:        world,
		bus:          bus,
		rng:          rng,
		maxParticles: 2048,
	}

	s.subs = append(s.subs,
		bus.Subscribe(TopicProjectileHit, func(event any) {
			if hit, ok := event.(ProjectileHitEvent); ok {
				tint := color.NRGBA{255, 200, 80, 255}
				count := 4
				if hit.Critical {
					tint = color.NRGBA{255, 80, 60, 255}
					count = 10
				}
				s.Burst(hit.X, hit.Y, count, 60, 0.3, tint)
			}
		}),
		bus.Subscribe(TopicEnemyDeath, func(event any) {
			if death, ok := event.(EnemyDeathEvent); ok {
				s.Burst(death.X, death.Y, 14, 110, 0.5, color.NRGBA{180, 60, 220, 255})
			}
		}),
		bus.Subscribe(TopicLevelUp, func(event any) {
			if up, ok := event.(LevelUpEvent); ok {
				s.Burst(up.X, up.Y, 24, 160, 0.8, color.NRGBA{90, 220, 255, 255})
			}
		}),
	)
	return s
}

// Teardown removes the system's bus subscriptions.
func (s *BurstSystem) Teardown() {
	for _, sub := range s.subs {
		s.bus.Unsubscribe(sub)
	}
	s.subs = nil
}

// Burst emits count particles radially from a point.
func (s *BurstSystem) Burst(x, y float64, count int, speed, lifetime float64, tint color.NRGBA) {
	for i := 0; i < count && len(s.particles) < s.maxParticles; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		velocity := speed * (0.5 + s.rng.Float64()*0.5)
		s.particles = append(s.particles, Particle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * velocity,
			VY:       math.Sin(angle) * velocity,
			Lifetime: lifetime * (0.6 + s.rng.Float64()*0.4),
			Size:     1.5 + s.rng.Float64()*2.0,
			Color:    tint,
		})
	}
}

// Update ages and moves particles; frozen while the world is suspended.
func (s *BurstSystem) Update(deltaTime float64) {
	if s.world.Suspended() {
		return
	}
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Age += deltaTime
		p.X += p.VX * deltaTime
		p.Y += p.VY * deltaTime
		if p.IsAlive() {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

// Particles returns the live particles for rendering.
func (s *BurstSystem) Particles() []Particle {
	return s.particles
}
