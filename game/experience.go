package game

import "math"

// ExperienceSystem owns the XP orbs and the level curve. Orbs drop on
// enemy-death events, drift to the mech inside the magnet radius, and
// each level-up publishes both the effect event and the upgrade-picker
// request.
type ExperienceSystem struct {
	world  *World
	player *Player
	bus    *EventBus

	orbs []*Entity
	pool []*Entity

	xp        float64
	level     int
	threshold float64

	deathSub Subscription
}

// NewExperienceSystem creates the XP subsystem and subscribes it to
// enemy deaths.
func NewExperienceSystem(world *World, player *Player, bus *EventBus) *ExperienceSystem {
	s := &ExperienceSystem{
		world:     world,
		player:    player,
		bus:       bus,
		level:     1,
		threshold: world.Config.Tuning.XPBaseThreshold,
	}
	s.deathSub = bus.Subscribe(TopicEnemyDeath, func(event any) {
		if death, ok := event.(EnemyDeathEvent); ok {
			s.dropOrb(death)
		}
	})
	return s
}

// Teardown removes the subsystem's bus subscription.
func (s *ExperienceSystem) Teardown() {
	s.bus.Unsubscribe(s.deathSub)
}

// Level returns the player's current level.
func (s *ExperienceSystem) Level() int {
	return s.level
}

// XP returns progress into the current level and the next threshold.
func (s *ExperienceSystem) XP() (current, threshold float64) {
	return s.xp, s.threshold
}

// OrbCount returns the number of live orbs.
func (s *ExperienceSystem) OrbCount() int {
	n := 0
	for _, orb := range s.orbs {
		if orb.Active {
			n++
		}
	}
	return n
}

// Orbs returns the live orb list for rendering.
func (s *ExperienceSystem) Orbs() []*Entity {
	return s.orbs
}

// dropOrb places an XP orb where an enemy died.
func (s *ExperienceSystem) dropOrb(death EnemyDeathEvent) {
	orb := s.takeFromPool()
	orb.X = death.X
	orb.Y = death.Y
	orb.VX = 0
	orb.VY = 0
	orb.Type = EntityTypeXP
	orb.Radius = 4.0
	orb.Value = GetEnemyKindConfig(death.Kind).XPValue
	orb.Active = true
	orb.Age = 0
	s.world.RegisterEntity(orb)
	s.orbs = append(s.orbs, orb)
}

func (s *ExperienceSystem) takeFromPool() *Entity {
	if n := len(s.pool); n > 0 {
		orb := s.pool[n-1]
		s.pool = s.pool[:n-1]
		orb.Reset()
		return orb
	}
	return NewEntity(0, 0, 4.0, EntityTypeXP)
}

// Update drifts orbs toward the mech and collects the ones it touches.
func (s *ExperienceSystem) Update(_ float64, deltaTime float64) {
	if s.world.Suspended() {
		return
	}

	playerEnt := s.player.Entity()
	magnet := s.player.MagnetRadius()

	for _, orb := range s.orbs {
		if !orb.Active {
			continue
		}
		dist := orb.DistanceTo(playerEnt)
		if dist <= magnet && dist > 0 {
			pull := 320.0
			orb.VX = (playerEnt.X - orb.X) / dist * pull
			orb.VY = (playerEnt.Y - orb.Y) / dist * pull
		}
		orb.Update(deltaTime)
		s.world.UpdateEntityCell(orb)

		if orb.IsColliding(playerEnt) {
			s.collect(orb)
		}
	}
}

// collect retires an orb and credits its XP value.
func (s *ExperienceSystem) collect(orb *Entity) {
	orb.Active = false
	s.world.UnregisterEntity(orb)
	for i, o := range s.orbs {
		if o == orb {
			s.orbs[i] = s.orbs[len(s.orbs)-1]
			s.orbs = s.orbs[:len(s.orbs)-1]
			break
		}
	}
	s.pool = append(s.pool, orb)

	s.AddXP(orb.Value)
}

// AddXP credits experience and resolves any level-ups it causes.
func (s *ExperienceSystem) AddXP(amount float64) {
	s.xp += amount
	for s.xp >= s.threshold {
		s.xp -= s.threshold
		s.level++
		s.threshold = math.Ceil(s.threshold * s.world.Config.Tuning.XPGrowth)

		playerEnt := s.player.Entity()
		s.bus.Publish(TopicLevelUp, LevelUpEvent{X: playerEnt.X, Y: playerEnt.Y})
		s.bus.Publish(TopicPlayerLevelUp, PlayerLevelUpEvent{Level: s.level})
		s.bus.Publish(TopicShowUpgradeUI, ShowUpgradeUIEvent{})
	}
}
