package game

import (
	"math/rand"
	"time"
)

// Coin is one falling sprite of the upgrade overlay's cosmetic rain.
type Coin struct {
	X, Y float64
	VY   float64
	Spin float64
}

// CoinRain is the cosmetic falling-coin animation shown behind the
// upgrade picker. The picker opens precisely while the simulation clocks
// are suspended, so the rain runs on its own wall-clock delta instead of
// the scene's pausable lanes. All live coins belong to one arena slice
// and are destroyed together when the overlay closes.
type CoinRain struct {
	coins      []Coin
	running    bool
	spawnAccum float64
	lastTick   time.Time
	width      float64
	height     float64
	rng        *rand.Rand

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewCoinRain creates a stopped coin rain covering a screen area.
func NewCoinRain(width, height float64, rng *rand.Rand) *CoinRain {
	return &CoinRain{
		width:  width,
		height: height,
		rng:    rng,
		now:    time.Now,
	}
}

// Start begins spawning coins. Restarting while running is a no-op.
func (c *CoinRain) Start() {
	if c.running {
		return
	}
	c.running = true
	c.lastTick = c.now()
	c.spawnAccum = 0
}

// Stop cancels the animation: spawning ends and every live coin is
// destroyed in one sweep, so nothing leaks past the overlay's lifetime.
func (c *CoinRain) Stop() {
	c.running = false
	c.coins = c.coins[:0]
}

// Running reports whether the rain is active.
func (c *CoinRain) Running() bool {
	return c.running
}

// Coins returns the live coins for rendering.
func (c *CoinRain) Coins() []Coin {
	return c.coins
}

// Tick advances the animation by the wall-clock time since the last
// tick. Call it every frame while the overlay is open; it is a no-op
// when stopped.
func (c *CoinRain) Tick() {
	if !c.running {
		return
	}
	now := c.now()
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if dt > 0.1 {
		dt = 0.1
	}

	// Spawn roughly 14 coins per second across the top edge.
	c.spawnAccum += dt * 14.0
	for c.spawnAccum >= 1.0 {
		c.spawnAccum -= 1.0
		c.coins = append(c.coins, Coin{
			X:    c.rng.Float64() * c.width,
			Y:    -10,
			VY:   140.0 + c.rng.Float64()*160.0,
			Spin: c.rng.Float64() * 6.28,
		})
	}

	alive := c.coins[:0]
	for _, coin := range c.coins {
		coin.Y += coin.VY * dt
		coin.Spin += dt * 4.0
		if coin.Y <= c.height+12 {
			alive = append(alive, coin)
		}
	}
	c.coins = alive
}
