package game

import (
	"math/rand"
	"testing"
)

// stubInput is a scripted movement provider for headless scene tests.
type stubInput struct {
	x, y float64
}

func (s stubInput) Axis() (float64, float64) {
	return s.x, s.y
}

func newTestScene() (*MainScene, *SceneManager) {
	manager := NewSceneManager()
	scene := NewMainSceneWithRNG(manager, DefaultConfig(), nil, stubInput{}, rand.New(rand.NewSource(1)))
	manager.SwitchTo(scene)
	return scene, manager
}

// levelUpXP returns enough XP to trigger exactly one level-up.
func levelUpXP(scene *MainScene) float64 {
	_, threshold := scene.Experience().XP()
	return threshold
}

func TestDeadPlayerEndsRunOnNextFrame(t *testing.T) {
	scene, manager := newTestScene()

	scene.Player().TakeDamage(1e9)
	scene.Update(1.0 / 60.0)

	if !scene.Finished() {
		t.Fatal("scene should finish once the mech is dead")
	}
	if scene.Session().State() != StateGameOver {
		t.Errorf("expected GameOver, got %s", scene.Session().State())
	}
	if scene.World().Suspended() {
		t.Error("game over must not leave the world suspended")
	}
	if _, ok := manager.CurrentScene().(*ResultsScene); !ok {
		t.Errorf("expected handoff to the results scene, got %T", manager.CurrentScene())
	}
}

func TestDeathWhilePausedStillEndsRun(t *testing.T) {
	scene, _ := newTestScene()

	scene.Session().Pause()
	scene.Player().TakeDamage(1e9)
	scene.Update(1.0 / 60.0)

	if !scene.Finished() {
		t.Fatal("death check must run before the pause branch")
	}
	if scene.World().Suspended() {
		t.Error("suspension leaked past game over")
	}
}

func TestLevelUpOpensPickerAndSuspends(t *testing.T) {
	scene, _ := newTestScene()

	scene.Experience().AddXP(levelUpXP(scene))

	if scene.Session().State() != StatePausedForUpgrade {
		t.Fatalf("expected PausedForUpgrade, got %s", scene.Session().State())
	}
	if !scene.World().Suspended() {
		t.Error("upgrade picker must suspend the simulation")
	}
	if !scene.Overlay().IsOpen() {
		t.Error("overlay should be open")
	}
	if !scene.Player().Selecting() {
		t.Error("player movement should be frozen for selection")
	}
	if !scene.Overlay().Rain().Running() {
		t.Error("coin rain should run behind the picker")
	}
	if offer := scene.Overlay().Offer(); len(offer) == 0 || len(offer) > 3 {
		t.Errorf("expected 1..3 offers, got %d", len(offer))
	}
}

func TestChoosingUpgradeResolvesTheOverlay(t *testing.T) {
	scene, _ := newTestScene()

	scene.Experience().AddXP(levelUpXP(scene))
	chosen := scene.Overlay().Offer()[0].ID
	scene.ChooseUpgrade(0)

	if scene.Session().State() != StateRunning {
		t.Fatalf("expected Running after choice, got %s", scene.Session().State())
	}
	if scene.World().Suspended() {
		t.Error("simulation should resume after the choice")
	}
	if scene.Upgrades().Level(chosen) != 1 {
		t.Errorf("chosen upgrade %q not applied", chosen)
	}
	if scene.Player().Selecting() {
		t.Error("movement should unfreeze after the choice")
	}
	if scene.Overlay().Rain().Running() || len(scene.Overlay().Rain().Coins()) != 0 {
		t.Error("coin rain must stop and clear when the picker closes")
	}
}

func TestSkipLeavesLedgerUntouched(t *testing.T) {
	scene, _ := newTestScene()

	scene.Experience().AddXP(levelUpXP(scene))
	offered := scene.Overlay().Offer()[0].ID
	scene.SkipUpgrade()

	if scene.Session().State() != StateRunning {
		t.Fatalf("expected Running after skip, got %s", scene.Session().State())
	}
	if scene.Upgrades().Level(offered) != 0 {
		t.Error("skip must not apply anything")
	}
}

func TestQueuedLevelUpsReopenThePicker(t *testing.T) {
	scene, _ := newTestScene()

	// Enough XP for two levels in one collect.
	_, first := scene.Experience().XP()
	scene.Experience().AddXP(first * 3)
	if scene.Experience().Level() < 3 {
		t.Fatalf("setup expected at least two level-ups, level is %d", scene.Experience().Level())
	}

	scene.ChooseUpgrade(0)
	if scene.Session().State() != StatePausedForUpgrade {
		t.Fatal("queued level-up should reopen the picker immediately")
	}
	scene.ChooseUpgrade(0)
	if scene.Session().State() != StateRunning {
		t.Errorf("expected Running after draining the queue, got %s", scene.Session().State())
	}
}

func TestUpgradePickerForceClosesRelicOverlay(t *testing.T) {
	scene, _ := newTestScene()

	// Put the relic overlay up by hand.
	relicID := scene.Upgrades().Relics()[0].ID
	if !scene.Session().EnterRelic() {
		t.Fatal("setup: EnterRelic failed")
	}
	pending := scene.Upgrades().Relics()[0]
	scene.Relics().pending = &pending

	scene.Experience().AddXP(levelUpXP(scene))

	if scene.Relics().Active() {
		t.Error("relic overlay must be force-closed by the picker")
	}
	if scene.Upgrades().Level(relicID) != 1 {
		t.Error("force-close must auto-claim the pending relic")
	}
	if scene.Session().State() != StatePausedForUpgrade {
		t.Errorf("picker should be up after the force-close, got %s", scene.Session().State())
	}

	found := false
	for _, id := range scene.Stats().Finalize(scene.Experience().Level()).Relics {
		if id == relicID {
			found = true
		}
	}
	if !found {
		t.Error("auto-claimed relic missing from the stats")
	}
}

func TestRelicOverlayBlocksFrameWithoutSuspending(t *testing.T) {
	scene, _ := newTestScene()

	if !scene.Session().EnterRelic() {
		t.Fatal("setup: EnterRelic failed")
	}
	pending := scene.Upgrades().Relics()[0]
	scene.Relics().pending = &pending

	before := scene.Elapsed()
	scene.Update(1.0 / 60.0)

	if scene.Elapsed() != before {
		t.Error("frame update must be skipped while the relic overlay is open")
	}
	if scene.World().Suspended() {
		t.Error("relic overlay must not suspend the simulation clocks")
	}
}

func TestZeroOfferSkipsPickerEntirely(t *testing.T) {
	scene, _ := newTestScene()

	for _, d := range scene.Upgrades().Catalog() {
		if d.Relic {
			continue
		}
		for scene.Upgrades().Level(d.ID) < d.MaxLevel {
			scene.Upgrades().Apply(d.ID)
		}
	}

	scene.Experience().AddXP(levelUpXP(scene))
	if scene.Session().State() != StateRunning {
		t.Errorf("empty offer must skip the picker, got %s", scene.Session().State())
	}
	if scene.World().Suspended() {
		t.Error("skipped picker must not leave the world suspended")
	}
}

func TestPreciseOverlapPassStopsAtFirstHit(t *testing.T) {
	scene, _ := newTestScene()
	playerEnt := scene.Player().Entity()

	if scene.preciseOverlapPass() {
		t.Fatal("no enemies yet, no overlap expected")
	}

	enemy := NewEntity(playerEnt.X+5, playerEnt.Y, 10, EntityTypeEnemy)
	enemy.Kind = EnemyGrunt
	scene.World().RegisterEntity(enemy)

	if !scene.preciseOverlapPass() {
		t.Error("touching enemy should produce an overlap")
	}

	enemy.X = playerEnt.X + 500
	scene.World().UpdateEntityCell(enemy)
	if scene.preciseOverlapPass() {
		t.Error("distant enemy should not overlap")
	}
}

func TestMissingBodyMeansNoOverlap(t *testing.T) {
	scene, _ := newTestScene()

	scene.Player().entity = nil
	if scene.preciseOverlapPass() {
		t.Error("a missing body can never overlap")
	}
}

func TestOverlapDrivesContactDamage(t *testing.T) {
	scene, _ := newTestScene()
	player := scene.Player()
	playerEnt := player.Entity()

	enemy := NewEntity(playerEnt.X+5, playerEnt.Y, 10, EntityTypeEnemy)
	enemy.Kind = EnemyGrunt
	scene.World().RegisterEntity(enemy)

	before := player.Health()
	for i := 0; i < 60; i++ {
		scene.Update(1.0 / 60.0)
		enemy.X = player.Entity().X + 5 // stay glued to the mech
		enemy.Y = player.Entity().Y
		scene.World().UpdateEntityCell(enemy)
	}
	if player.Health() >= before {
		t.Error("sustained overlap should tick contact damage")
	}
}

func TestSimulationAdvancesWhileRunning(t *testing.T) {
	scene, _ := newTestScene()

	for i := 0; i < 600; i++ {
		scene.Update(1.0 / 60.0)
		if scene.Overlay().IsOpen() {
			scene.ChooseUpgrade(0)
		}
		// Keep the mech alive; this test is about the frame loop.
		scene.Player().Heal(1000)
	}

	if scene.Elapsed() < 9.9 {
		t.Errorf("expected about 10 gameplay seconds, got %.2f", scene.Elapsed())
	}
	if scene.EnemyCount() == 0 {
		t.Error("enemies should have spawned over ten seconds")
	}
}

func TestFinishTearsDownBusAndTimers(t *testing.T) {
	scene, _ := newTestScene()

	scene.Timers().After(100, func() {})
	scene.Player().TakeDamage(1e9)
	scene.Update(1.0 / 60.0)

	if scene.Bus().HandlerCount(TopicEnemyDeath) != 0 {
		t.Error("bus handlers must be dropped on finish")
	}
	if scene.Timers().PendingCount() != 0 {
		t.Error("scheduled timers must be cleared on finish")
	}
}
