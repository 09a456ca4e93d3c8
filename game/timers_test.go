package game

import "testing"

func TestTimerFiresOnceAfterDelay(t *testing.T) {
	timers := NewTimers()
	fired := 0
	timers.After(0.5, func() { fired++ })

	timers.Update(0.4)
	if fired != 0 {
		t.Fatal("timer fired before its delay elapsed")
	}
	timers.Update(0.2)
	if fired != 1 {
		t.Fatalf("expected exactly one fire, got %d", fired)
	}
	timers.Update(1.0)
	if fired != 1 {
		t.Errorf("timer fired again after completing, got %d", fired)
	}
	if timers.PendingCount() != 0 {
		t.Errorf("expected empty lane, got %d pending", timers.PendingCount())
	}
}

func TestSuspendFreezesCountdown(t *testing.T) {
	timers := NewTimers()
	fired := false
	timers.After(0.1, func() { fired = true })

	timers.Suspend()
	for i := 0; i < 100; i++ {
		timers.Update(1.0)
	}
	if fired {
		t.Fatal("suspended timer lane must not advance")
	}

	timers.Resume()
	timers.Update(0.1)
	if !fired {
		t.Error("timer should fire after resume once the delay elapses")
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	timers := NewTimers()
	fired := false
	handle := timers.After(0.1, func() { fired = true })

	handle.Cancel()
	timers.Update(1.0)
	if fired {
		t.Error("cancelled timer must not fire")
	}
	if timers.PendingCount() != 0 {
		t.Errorf("cancelled timer still counted as pending: %d", timers.PendingCount())
	}
}

func TestCallbackCanScheduleNewTimer(t *testing.T) {
	timers := NewTimers()
	secondFired := false
	timers.After(0.1, func() {
		timers.After(0.1, func() { secondFired = true })
	})

	timers.Update(0.1)
	if secondFired {
		t.Fatal("chained timer fired in the same update that scheduled it")
	}
	timers.Update(0.1)
	if !secondFired {
		t.Error("chained timer should fire on the following update")
	}
}
