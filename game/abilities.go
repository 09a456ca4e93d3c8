package game

// AbilitySubsystem is a weapon/ability feature with a per-frame update
// and an unlock lifecycle. The orchestrator activates each subsystem
// exactly once, the first frame its unlock predicate turns true.
type AbilitySubsystem interface {
	// Name returns the stats/unlock key for this ability.
	Name() string

	// Unlocked reports whether the player currently holds the ability.
	Unlocked() bool

	// IsActive reports whether the ability has been activated.
	IsActive() bool

	// UnlockAndActivate performs the one-time activation side effects.
	UnlockAndActivate()

	// Update advances the ability for this frame.
	Update(now, deltaTime float64)
}

// nearestEnemy returns the closest active enemy to (x, y) within
// maxRange across all subsystems, or nil.
func nearestEnemy(world *World, x, y, maxRange float64) *Entity {
	var nearest *Entity
	nearestSq := maxRange * maxRange
	for _, candidate := range world.GetEntitiesInRadius(x, y, maxRange) {
		if candidate.Type != EntityTypeEnemy || !candidate.Active {
			continue
		}
		dx := candidate.X - x
		dy := candidate.Y - y
		distSq := dx*dx + dy*dy
		if distSq < nearestSq {
			nearestSq = distSq
			nearest = candidate
		}
	}
	return nearest
}
