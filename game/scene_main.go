package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MainScene is the gameplay orchestrator. It owns every subsystem of one
// playthrough, drives them in a fixed order each frame, and runs the
// pause / upgrade / relic overlay state machine through the session.
type MainScene struct {
	manager *SceneManager
	config  Config
	assets  *AssetManager
	rng     *rand.Rand

	world   *World
	timers  *Timers
	session *Session
	bus     *EventBus
	stats   *StatsTracker
	player  *Player

	// enemySubsystems update in declaration order every frame.
	enemySubsystems []*EnemySubsystem

	playerShots *ProjectileGroup
	enemyShots  *ProjectileGroup
	translator  *CollisionTranslator

	cannon  *CannonSystem
	drones  *DroneSystem
	blast   *BlastSystem
	strikes *AirstrikeSystem

	// abilities is the unlock-scan list; each entry is activated exactly
	// once, the first frame its Unlocked predicate turns true.
	abilities []AbilitySubsystem

	exp      *ExperienceSystem
	upgrades *UpgradeSystem
	relics   *RelicSystem
	bursts   *BurstSystem

	overlay  *UpgradeOverlay
	hud      *HUD
	camera   *Camera
	backdrop *Backdrop
	renderer *Renderer

	elapsed float64

	// queuedPicks counts level-ups that arrived while the picker was
	// already open; each one reopens the picker after the current choice.
	queuedPicks int

	subs     []Subscription
	finished bool
}

// NewMainScene creates a playthrough with a time-seeded RNG.
func NewMainScene(manager *SceneManager, config Config, assets *AssetManager, input MoveInput) *MainScene {
	return NewMainSceneWithRNG(manager, config, assets, input, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewMainSceneWithRNG creates a playthrough with an injected RNG, used by
// the headless simulator and tests for reproducible runs. assets may be
// nil; the renderer then falls back to vector shapes.
func NewMainSceneWithRNG(manager *SceneManager, config Config, assets *AssetManager, input MoveInput, rng *rand.Rand) *MainScene {
	world := NewWorld(config)
	timers := NewTimers()
	session := NewSession(world, timers)
	bus := NewEventBus()
	stats := NewStatsTracker()
	player := NewPlayer(world, input)

	playerShots := NewProjectileGroup(world, EntityTypeProjectile, 256, config.Tuning.CannonRange)
	enemyShots := NewProjectileGroup(world, EntityTypeEnemyProjectile, 256, 900.0)

	subsystems := []*EnemySubsystem{
		NewEnemySubsystem(EnemyGrunt, world, player, enemyShots, rng),
		NewEnemySubsystem(EnemyBrute, world, player, enemyShots, rng),
		NewEnemySubsystem(EnemySpitter, world, player, enemyShots, rng),
		NewEnemySubsystem(EnemyWasp, world, player, enemyShots, rng),
	}

	translator := NewCollisionTranslator(world, bus, stats, session, player, subsystems, playerShots, enemyShots)

	cannon := NewCannonSystem(world, player, playerShots, stats, bus, rng)
	drones := NewDroneSystem(world, player, translator, stats, bus)
	blast := NewBlastSystem(world, player, translator, stats, bus)
	strikes := NewAirstrikeSystem(world, player, translator, stats, bus, timers, rng)

	exp := NewExperienceSystem(world, player, bus)
	upgrades := NewUpgradeSystem(player, stats, rng)
	relics := NewRelicSystem(world, player, session, upgrades, stats, bus, rng)
	bursts := NewBurstSystem(world, bus, rng)

	screenW := float64(config.ScreenWidth)
	screenH := float64(config.ScreenHeight)
	camera := NewCamera(screenW, screenH)
	playerEnt := player.Entity()
	camera.X = playerEnt.X
	camera.Y = playerEnt.Y

	s := &MainScene{
		manager:         manager,
		config:          config,
		assets:          assets,
		rng:             rng,
		world:           world,
		timers:          timers,
		session:         session,
		bus:             bus,
		stats:           stats,
		player:          player,
		enemySubsystems: subsystems,
		playerShots:     playerShots,
		enemyShots:      enemyShots,
		translator:      translator,
		cannon:          cannon,
		drones:          drones,
		blast:           blast,
		strikes:         strikes,
		abilities:       []AbilitySubsystem{cannon, drones, blast, strikes},
		exp:             exp,
		upgrades:        upgrades,
		relics:          relics,
		bursts:          bursts,
		overlay:         NewUpgradeOverlay(NewCoinRain(screenW, screenH, rng)),
		hud:             NewHUD(screenW, screenH),
		camera:          camera,
		backdrop:        NewBackdrop(screenW, screenH, config.ParallaxFactor, rng),
		renderer:        NewRenderer(camera, assets),
	}

	s.subs = append(s.subs,
		bus.Subscribe(TopicEnemyDeath, func(any) {
			s.session.AddKill()
			s.stats.AddKill()
		}),
		bus.Subscribe(TopicShowUpgradeUI, func(any) {
			s.openUpgradePicker()
		}),
	)

	return s
}

// Update advances the playthrough by one frame.
func (s *MainScene) Update(deltaTime float64) {
	if s.finished {
		return
	}

	// The coin rain is cosmetic and runs on its own wall clock, so it
	// ticks even while the simulation is suspended.
	s.overlay.Rain().Tick()

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		GetDebugState().ShowOverlay = !GetDebugState().ShowOverlay
	}

	if s.player.IsDead() {
		s.finish()
		return
	}

	switch s.session.State() {
	case StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.session.Resume()
		}
		return
	case StatePausedForUpgrade:
		if choice, skipped := s.overlay.HandleInput(); choice >= 0 || skipped {
			s.resolveUpgradeChoice(choice, skipped)
		}
		return
	case StatePausedForRelic:
		// The relic overlay blocks the whole frame but leaves the
		// simulation clocks alone.
		s.relics.HandleOverlayInput()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.session.Pause()
		return
	}

	s.elapsed += deltaTime
	s.session.ClearBroadOverlap()

	s.player.Update(deltaTime)
	s.timers.Update(deltaTime)
	s.backdrop.Update(s.camera)

	s.cannon.Update(s.elapsed, deltaTime)
	for _, sub := range s.enemySubsystems {
		sub.Update(s.elapsed, deltaTime)
	}

	// Collecting an orb can level the player up, which opens the picker
	// and suspends the simulation mid-frame. The rest of the frame is
	// skipped; the overlay branch above takes over next frame.
	s.exp.Update(s.elapsed, deltaTime)
	if s.session.State() != StateRunning {
		return
	}

	for _, ability := range s.abilities {
		if ability.Unlocked() && !ability.IsActive() {
			ability.UnlockAndActivate()
		}
	}
	s.drones.Update(s.elapsed, deltaTime)
	s.blast.Update(s.elapsed, deltaTime)
	s.strikes.Update(s.elapsed, deltaTime)

	// Touching a relic pickup opens its overlay; same mid-frame cut.
	s.relics.Update(s.elapsed, deltaTime)
	if s.session.State() != StateRunning {
		return
	}

	s.playerShots.Update(deltaTime)
	s.enemyShots.Update(deltaTime)
	s.translator.ProcessFrame()

	// The precise bounding-box pass is the authoritative overlap result;
	// the translator's broad flag is diagnostic only.
	overlapping := s.preciseOverlapPass()
	s.player.SetOverlapping(overlapping)
	s.session.SetOverlapping(overlapping)

	s.bursts.Update(deltaTime)

	playerEnt := s.player.Entity()
	s.camera.Follow(playerEnt.X, playerEnt.Y)
}

// preciseOverlapPass checks the player's bounding box against nearby
// enemy boxes, stopping at the first hit. A missing body means no overlap
// is possible.
func (s *MainScene) preciseOverlapPass() bool {
	body := s.player.Body()
	if body == nil {
		return false
	}
	playerEnt := s.player.Entity()
	for _, other := range s.world.GetEntitiesInRadius(playerEnt.X, playerEnt.Y, playerEnt.Radius+48.0) {
		if other.Type != EntityTypeEnemy || !other.Active {
			continue
		}
		if body.Intersects(other.Bounds()) {
			return true
		}
	}
	return false
}

// openUpgradePicker runs on every show-upgrade-ui event. A relic overlay
// in the way is force-closed first; the upgrade picker always wins. When
// the picker is already open the request is queued and replayed after the
// current choice resolves.
func (s *MainScene) openUpgradePicker() {
	if s.session.State() == StatePausedForUpgrade {
		s.queuedPicks++
		return
	}

	s.relics.ForceClose()

	if !s.session.EnterUpgrade() {
		s.queuedPicks++
		return
	}

	offer := s.upgrades.SelectOffer(3)
	if len(offer) == 0 {
		log.Printf("[Scene] no eligible upgrades, picker skipped")
		s.session.ExitUpgrade()
		return
	}

	s.player.BeginUpgradeSelection()
	s.hud.HideBars()
	s.overlay.Open(offer)
}

// resolveUpgradeChoice closes the picker around one decision: apply the
// chosen upgrade (or nothing on skip), restore the HUD, resume the
// simulation, and unblock movement exactly once.
func (s *MainScene) resolveUpgradeChoice(choice int, skipped bool) {
	offer := s.overlay.Offer()
	if !skipped && choice >= 0 && choice < len(offer) {
		s.upgrades.Apply(offer[choice].ID)
	}

	s.overlay.Close()
	s.hud.ShowBars()
	s.session.ExitUpgrade()
	s.player.OnUpgradeSelected()

	if s.queuedPicks > 0 {
		s.queuedPicks--
		s.openUpgradePicker()
	}
}

// finish ends the playthrough: snapshot the stats, tear down every bus
// subscription, make sure no suspension leaks, and hand off to the
// results screen.
func (s *MainScene) finish() {
	if s.finished {
		return
	}
	s.finished = true

	s.session.GameOver()
	s.overlay.Close()
	summary := s.stats.Finalize(s.exp.Level())

	s.exp.Teardown()
	s.bursts.Teardown()
	for _, sub := range s.subs {
		s.bus.Unsubscribe(sub)
	}
	s.bus.Close()
	s.timers.Clear()

	log.Printf("[Scene] run over: survived %.1fs, level %d, %d kills",
		summary.SurvivalTimeMs/1000.0, summary.LevelReached, summary.EnemiesDefeated)

	s.manager.SwitchTo(NewResultsScene(s.manager, s.config, s.assets, summary))
}

// Draw composites the battlefield, the HUD and whichever overlay is up.
func (s *MainScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{16, 18, 26, 255})

	s.renderer.RenderBackdrop(screen, s.backdrop)
	s.renderer.RenderOrbs(screen, s.exp)
	s.renderer.RenderRelicPickup(screen, s.relics)
	for _, sub := range s.enemySubsystems {
		s.renderer.RenderEnemies(screen, sub)
	}
	s.renderer.RenderProjectiles(screen, s.playerShots, color.NRGBA{255, 240, 120, 255})
	s.renderer.RenderProjectiles(screen, s.enemyShots, color.NRGBA{140, 255, 120, 255})
	s.renderer.RenderDrones(screen, s.drones)
	s.renderer.RenderBlastPulse(screen, s.blast, s.player)
	s.renderer.RenderStrikeMarkers(screen, s.strikes)
	s.renderer.RenderPlayer(screen, s.player)
	s.renderer.RenderParticles(screen, s.bursts)

	s.hud.Draw(screen, s.player, s.exp, s.session, s.elapsed)

	if GetDebugState().ShowOverlay {
		s.hud.DrawDebugInfo(screen,
			fmt.Sprintf("enemies %d  shots %d/%d  orbs %d", s.EnemyCount(), s.playerShots.ActiveCount(), s.enemyShots.ActiveCount(), s.exp.OrbCount()),
			fmt.Sprintf("overlap precise=%v broad=%v  timers %d", s.session.Overlapping(), s.session.BroadOverlap(), s.timers.PendingCount()),
		)
	}

	switch s.session.State() {
	case StatePaused:
		s.hud.DrawPauseMenu(screen)
	case StatePausedForUpgrade:
		s.renderer.RenderCoinRain(screen, s.overlay.Rain())
		s.hud.DrawUpgradeOverlay(screen, s.overlay, s.upgrades, s.assets)
	case StatePausedForRelic:
		s.hud.DrawRelicOverlay(screen, s.relics)
	}
}

// Accessors used by the headless simulator and tests.

// Session returns the scene's lifecycle state machine.
func (s *MainScene) Session() *Session { return s.session }

// Player returns the mech.
func (s *MainScene) Player() *Player { return s.player }

// Upgrades returns the upgrade catalog and ledger.
func (s *MainScene) Upgrades() *UpgradeSystem { return s.upgrades }

// Overlay returns the upgrade picker overlay.
func (s *MainScene) Overlay() *UpgradeOverlay { return s.overlay }

// Relics returns the relic pickup flow.
func (s *MainScene) Relics() *RelicSystem { return s.relics }

// Experience returns the XP subsystem.
func (s *MainScene) Experience() *ExperienceSystem { return s.exp }

// Stats returns the playthrough's stats tracker.
func (s *MainScene) Stats() *StatsTracker { return s.stats }

// World returns the spatial grid.
func (s *MainScene) World() *World { return s.world }

// Timers returns the pausable timer lane.
func (s *MainScene) Timers() *Timers { return s.timers }

// Bus returns the scene's event bus.
func (s *MainScene) Bus() *EventBus { return s.bus }

// Elapsed returns unsuspended gameplay seconds so far.
func (s *MainScene) Elapsed() float64 { return s.elapsed }

// Finished reports whether the playthrough has ended.
func (s *MainScene) Finished() bool { return s.finished }

// EnemyCount returns the live enemy total across all kinds.
func (s *MainScene) EnemyCount() int {
	n := 0
	for _, sub := range s.enemySubsystems {
		n += sub.EnemyCount()
	}
	return n
}

// ChooseUpgrade resolves the open picker with the given offer index
// without going through the keyboard. No-op while the picker is closed.
func (s *MainScene) ChooseUpgrade(choice int) {
	if !s.overlay.IsOpen() {
		return
	}
	s.resolveUpgradeChoice(choice, false)
}

// SkipUpgrade resolves the open picker as an explicit skip.
func (s *MainScene) SkipUpgrade() {
	if !s.overlay.IsOpen() {
		return
	}
	s.resolveUpgradeChoice(-1, true)
}

// ClaimRelic resolves an open relic overlay by claiming, for headless
// runs. No-op while the overlay is closed.
func (s *MainScene) ClaimRelic() {
	s.relics.ForceClose()
}
