package game

import (
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RelicSystem owns relic pickups and the relic-selection overlay. A
// pickup spawns on an interval; touching it opens the overlay and moves
// the session to PausedForRelic. While the overlay is open the main
// scene skips its entire frame update, so this system carries its own
// input handling.
type RelicSystem struct {
	world    *World
	player   *Player
	session  *Session
	upgrades *UpgradeSystem
	stats    *StatsTracker
	bus      *EventBus
	rng      *rand.Rand

	spawnTimer float64
	pickup     *Entity

	// pending is the relic on offer while the overlay is open.
	pending *UpgradeDescriptor
}

// NewRelicSystem creates the relic pickup flow.
func NewRelicSystem(world *World, player *Player, session *Session, upgrades *UpgradeSystem, stats *StatsTracker, bus *EventBus, rng *rand.Rand) *RelicSystem {
	return &RelicSystem{
		world:    world,
		player:   player,
		session:  session,
		upgrades: upgrades,
		stats:    stats,
		bus:      bus,
		rng:      rng,
	}
}

// Active reports whether the relic overlay is open.
func (r *RelicSystem) Active() bool {
	return r.pending != nil
}

// Pending returns the relic currently on offer, or nil.
func (r *RelicSystem) Pending() *UpgradeDescriptor {
	return r.pending
}

// Pickup returns the live pickup entity, or nil.
func (r *RelicSystem) Pickup() *Entity {
	return r.pickup
}

// Update spawns pickups and opens the overlay when the mech touches one.
func (r *RelicSystem) Update(_ float64, deltaTime float64) {
	if r.world.Suspended() || r.Active() {
		return
	}

	if r.pickup == nil {
		r.spawnTimer += deltaTime
		if r.spawnTimer >= r.world.Config.Tuning.RelicSpawnInterval {
			r.spawnTimer = 0
			r.spawnPickup()
		}
	}

	if r.pickup != nil && r.pickup.Active && r.pickup.IsColliding(r.player.Entity()) {
		r.open()
	}
}

// HandleOverlayInput processes the relic overlay's own input while the
// frame update is skipped. Enter claims, Backspace declines.
func (r *RelicSystem) HandleOverlayInput() {
	if !r.Active() {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		r.claim()
	} else if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		r.decline()
	}
}

// ForceClose shuts the overlay so the upgrade picker can take over. The
// pending relic is auto-claimed rather than lost.
func (r *RelicSystem) ForceClose() {
	if !r.Active() {
		return
	}
	log.Printf("[Relic] overlay force-closed, auto-claiming %q", r.pending.ID)
	r.claim()
}

// spawnPickup drops a relic pickup on a ring around the mech if any
// relic remains unclaimed.
func (r *RelicSystem) spawnPickup() {
	if len(r.upgrades.Relics()) == 0 {
		return
	}

	playerEnt := r.player.Entity()
	angle := r.rng.Float64() * 2 * math.Pi
	distance := 200.0 + r.rng.Float64()*200.0

	pickup := NewEntity(
		math.Max(0, math.Min(playerEnt.X+math.Cos(angle)*distance, r.world.Config.WorldWidth)),
		math.Max(0, math.Min(playerEnt.Y+math.Sin(angle)*distance, r.world.Config.WorldHeight)),
		10.0,
		EntityTypeRelic,
	)
	r.world.RegisterEntity(pickup)
	r.pickup = pickup
}

// open consumes the pickup and presents a random unclaimed relic.
func (r *RelicSystem) open() {
	relics := r.upgrades.Relics()
	if len(relics) == 0 {
		r.removePickup()
		return
	}
	if !r.session.EnterRelic() {
		return
	}
	chosen := relics[r.rng.Intn(len(relics))]
	r.pending = &chosen
	r.removePickup()
}

// claim applies the pending relic through the shared upgrade path.
func (r *RelicSystem) claim() {
	pending := r.pending
	r.pending = nil
	r.session.ExitRelic()

	if r.upgrades.Apply(pending.ID) {
		r.stats.AddRelic(pending.ID)
		r.bus.Publish(TopicRelicClaimed, RelicClaimedEvent{ID: pending.ID})
	}
}

// decline closes the overlay without claiming.
func (r *RelicSystem) decline() {
	r.pending = nil
	r.session.ExitRelic()
}

// removePickup retires the live pickup entity.
func (r *RelicSystem) removePickup() {
	if r.pickup != nil {
		r.pickup.Active = false
		r.world.UnregisterEntity(r.pickup)
		r.pickup = nil
	}
}
