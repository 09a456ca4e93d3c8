package game

import "testing"

func newTestSession() (*Session, *World, *Timers) {
	world := NewWorld(DefaultConfig())
	timers := NewTimers()
	return NewSession(world, timers), world, timers
}

func TestPauseSuspendsSimulation(t *testing.T) {
	session, world, timers := newTestSession()

	if !session.Pause() {
		t.Fatal("pause from Running should succeed")
	}
	if !world.Suspended() || !timers.Suspended() {
		t.Error("pause should suspend every registered suspender")
	}
	if !session.IsPaused() {
		t.Error("IsPaused should report true while paused")
	}

	if !session.Resume() {
		t.Fatal("resume from Paused should succeed")
	}
	if world.Suspended() || timers.Suspended() {
		t.Error("resume should lift suspension on every suspender")
	}
}

func TestUpgradeOverlaySuspendsLikePause(t *testing.T) {
	session, world, _ := newTestSession()

	if !session.EnterUpgrade() {
		t.Fatal("EnterUpgrade from Running should succeed")
	}
	if !world.Suspended() {
		t.Error("upgrade overlay should suspend the simulation")
	}
	if !session.ExitUpgrade() {
		t.Fatal("ExitUpgrade should succeed")
	}
	if world.Suspended() {
		t.Error("closing the upgrade overlay should resume the simulation")
	}
}

func TestRelicOverlayDoesNotSuspend(t *testing.T) {
	session, world, timers := newTestSession()

	if !session.EnterRelic() {
		t.Fatal("EnterRelic from Running should succeed")
	}
	if world.Suspended() || timers.Suspended() {
		t.Error("relic overlay must not suspend the simulation clocks")
	}
	if session.IsPaused() {
		t.Error("PausedForRelic is not a suspended state")
	}
	if !session.ExitRelic() {
		t.Fatal("ExitRelic should succeed")
	}
}

func TestIllegalTransitionsRejected(t *testing.T) {
	session, _, _ := newTestSession()

	if session.Resume() {
		t.Error("resume while Running should be rejected")
	}
	if session.ExitUpgrade() {
		t.Error("ExitUpgrade while Running should be rejected")
	}
	if session.ExitRelic() {
		t.Error("ExitRelic while Running should be rejected")
	}

	session.Pause()
	if session.EnterUpgrade() {
		t.Error("EnterUpgrade while Paused should be rejected")
	}
	if session.EnterRelic() {
		t.Error("EnterRelic while Paused should be rejected")
	}
	if session.State() != StatePaused {
		t.Errorf("rejected transitions must not change state, got %s", session.State())
	}
}

func TestGameOverLiftsSuspensionAndIsTerminal(t *testing.T) {
	session, world, _ := newTestSession()

	session.Pause()
	session.GameOver()

	if world.Suspended() {
		t.Error("GameOver must lift any outstanding suspension")
	}
	if session.State() != StateGameOver {
		t.Fatalf("expected GameOver state, got %s", session.State())
	}
	if session.Pause() || session.Resume() || session.EnterUpgrade() || session.EnterRelic() {
		t.Error("no transition should leave the GameOver state")
	}
}

func TestOverlapFlagsAreIndependent(t *testing.T) {
	session, _, _ := newTestSession()

	session.MarkBroadOverlap()
	if session.Overlapping() {
		t.Error("broad flag must not affect the authoritative overlap value")
	}

	session.SetOverlapping(true)
	session.ClearBroadOverlap()
	if !session.Overlapping() {
		t.Error("clearing the broad flag must not clear the authoritative value")
	}
	if session.BroadOverlap() {
		t.Error("broad flag should be cleared")
	}
}
