package game

import (
	"math/rand"
	"testing"
	"time"
)

func newClockedRain() (*CoinRain, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	rain := NewCoinRain(800, 600, rand.New(rand.NewSource(1)))
	rain.now = func() time.Time { return clock.current }
	return rain, clock
}

func TestCoinRainSpawnsOnWallClock(t *testing.T) {
	rain, clock := newClockedRain()
	rain.Start()

	// Half a second of wall time in frame-sized steps.
	for i := 0; i < 10; i++ {
		clock.advance(50 * time.Millisecond)
		rain.Tick()
	}
	if len(rain.Coins()) == 0 {
		t.Fatal("no coins spawned after half a second of rain")
	}
}

func TestStopDestroysEveryCoin(t *testing.T) {
	rain, clock := newClockedRain()
	rain.Start()
	for i := 0; i < 10; i++ {
		clock.advance(50 * time.Millisecond)
		rain.Tick()
	}
	if len(rain.Coins()) == 0 {
		t.Fatal("setup failed, no coins to destroy")
	}

	rain.Stop()
	if rain.Running() {
		t.Error("rain still running after stop")
	}
	if len(rain.Coins()) != 0 {
		t.Errorf("stop must destroy every coin, %d left", len(rain.Coins()))
	}
}

func TestTickIsNoopWhileStopped(t *testing.T) {
	rain, clock := newClockedRain()

	clock.advance(time.Second)
	rain.Tick()
	if len(rain.Coins()) != 0 {
		t.Error("stopped rain must not spawn coins")
	}
}

func TestCoinsFallAndCull(t *testing.T) {
	rain, clock := newClockedRain()
	rain.Start()

	clock.advance(80 * time.Millisecond)
	rain.Tick()
	if len(rain.Coins()) == 0 {
		t.Fatal("expected a coin after 80ms")
	}
	firstY := rain.Coins()[0].Y

	clock.advance(80 * time.Millisecond)
	rain.Tick()
	if len(rain.Coins()) > 0 && rain.Coins()[0].Y <= firstY {
		t.Error("coins should fall between ticks")
	}

	// Several seconds later every early coin has dropped off screen.
	for i := 0; i < 100; i++ {
		clock.advance(100 * time.Millisecond)
		rain.Tick()
	}
	for _, coin := range rain.Coins() {
		if coin.Y > 612 {
			t.Errorf("coin below the cull line survived at y=%.0f", coin.Y)
		}
	}
}

func TestLongStallIsClamped(t *testing.T) {
	rain, clock := newClockedRain()
	rain.Start()

	// A multi-second stall (window drag, debugger) must not dump a burst
	// of coins on the next tick.
	clock.advance(10 * time.Second)
	rain.Tick()
	if len(rain.Coins()) > 2 {
		t.Errorf("stalled tick spawned %d coins, want the clamped amount", len(rain.Coins()))
	}
}

func TestRestartWhileRunningIsNoop(t *testing.T) {
	rain, clock := newClockedRain()
	rain.Start()
	clock.advance(100 * time.Millisecond)
	rain.Tick()
	count := len(rain.Coins())

	rain.Start()
	if len(rain.Coins()) != count {
		t.Error("restart while running must not reset the coins")
	}
}
