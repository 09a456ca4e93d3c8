package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// enemyColors maps each enemy kind to its body color.
var enemyColors = map[EnemyKind]color.NRGBA{
	EnemyGrunt:   {200, 60, 60, 255},
	EnemyBrute:   {160, 40, 90, 255},
	EnemySpitter: {90, 160, 60, 255},
	EnemyWasp:    {220, 160, 40, 255},
}

// Renderer draws the battlefield through the camera. Sprites come from
// the asset manager; anything without a sprite falls back to vector
// shapes.
type Renderer struct {
	camera *Camera
	assets *AssetManager
}

// NewRenderer creates a renderer. assets may be nil; everything then
// renders as vector shapes.
func NewRenderer(camera *Camera, assets *AssetManager) *Renderer {
	return &Renderer{
		camera: camera,
		assets: assets,
	}
}

// RenderBackdrop draws the parallax debris field.
func (r *Renderer) RenderBackdrop(screen *ebiten.Image, backdrop *Backdrop) {
	backdrop.VisibleFlecks(r.camera.Width, r.camera.Height, func(x, y, size float64, shade color.NRGBA) {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), shade, false)
	})
}

// RenderPlayer draws the mech, sprite if loaded, triangle otherwise.
func (r *Renderer) RenderPlayer(screen *ebiten.Image, player *Player) {
	ent := player.Entity()
	sx, sy := r.camera.WorldToScreen(ent.X, ent.Y)

	if sprite := r.sprite("mech"); sprite != nil {
		op := &ebiten.DrawImageOptions{}
		w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
		op.GeoM.Translate(sx-float64(w)/2, sy-float64(h)/2)
		screen.DrawImage(sprite, op)
		return
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(ent.Radius), color.NRGBA{80, 200, 120, 255}, true)
}

// RenderEnemies draws every visible enemy of one subsystem.
func (r *Renderer) RenderEnemies(screen *ebiten.Image, sub *EnemySubsystem) {
	tint := enemyColors[sub.Kind()]
	for _, enemy := range sub.VisibleEnemies(r.camera) {
		sx, sy := r.camera.WorldToScreen(enemy.X, enemy.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(enemy.Radius), tint, true)

		// Health sliver for wounded enemies.
		if enemy.Health < enemy.MaxHealth {
			frac := enemy.Health / enemy.MaxHealth
			w := enemy.Radius * 2
			vector.DrawFilledRect(screen, float32(sx-enemy.Radius), float32(sy-enemy.Radius-5), float32(w*frac), 2, color.NRGBA{120, 230, 120, 255}, false)
		}
	}
}

// RenderProjectiles draws a projectile group.
func (r *Renderer) RenderProjectiles(screen *ebiten.Image, group *ProjectileGroup, tint color.NRGBA) {
	for _, p := range group.Active() {
		sx, sy := r.camera.WorldToScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(p.Radius), tint, false)
	}
}

// RenderOrbs draws the XP orbs.
func (r *Renderer) RenderOrbs(screen *ebiten.Image, exp *ExperienceSystem) {
	for _, orb := range exp.Orbs() {
		if !orb.Active {
			continue
		}
		sx, sy := r.camera.WorldToScreen(orb.X, orb.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(orb.Radius), color.NRGBA{80, 220, 255, 255}, false)
	}
}

// RenderRelicPickup draws the relic pickup if one is on the field.
func (r *Renderer) RenderRelicPickup(screen *ebiten.Image, relics *RelicSystem) {
	pickup := relics.Pickup()
	if pickup == nil || !pickup.Active {
		return
	}
	sx, sy := r.camera.WorldToScreen(pickup.X, pickup.Y)
	if sprite := r.sprite("relic"); sprite != nil {
		op := &ebiten.DrawImageOptions{}
		w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
		op.GeoM.Translate(sx-float64(w)/2, sy-float64(h)/2)
		screen.DrawImage(sprite, op)
		return
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(pickup.Radius), color.NRGBA{255, 220, 60, 255}, true)
}

// RenderDrones draws the orbiting drones.
func (r *Renderer) RenderDrones(screen *ebiten.Image, drones *DroneSystem) {
	if !drones.IsActive() {
		return
	}
	for _, dr := range drones.drones {
		sx, sy := r.camera.WorldToScreen(dr.ent.X, dr.ent.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(dr.ent.Radius), color.NRGBA{150, 200, 255, 255}, true)
	}
}

// RenderBlastPulse draws the expanding shockwave ring while it lasts.
func (r *Renderer) RenderBlastPulse(screen *ebiten.Image, blast *BlastSystem, player *Player) {
	remaining, radius := blast.PulseVisual()
	if remaining <= 0 {
		return
	}
	ent := player.Entity()
	sx, sy := r.camera.WorldToScreen(ent.X, ent.Y)
	grow := radius * (1 - remaining/0.3)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(grow), 2, color.NRGBA{120, 180, 255, 200}, true)
}

// RenderStrikeMarkers draws the pending air-strike target markers.
func (r *Renderer) RenderStrikeMarkers(screen *ebiten.Image, strikes *AirstrikeSystem) {
	for _, m := range strikes.Markers() {
		sx, sy := r.camera.WorldToScreen(m.X, m.Y)
		vector.StrokeCircle(screen, float32(sx), float32(sy), 14, 1.5, color.NRGBA{255, 90, 60, 255}, true)
		vector.StrokeLine(screen, float32(sx-10), float32(sy), float32(sx+10), float32(sy), 1.5, color.NRGBA{255, 90, 60, 255}, true)
		vector.StrokeLine(screen, float32(sx), float32(sy-10), float32(sx), float32(sy+10), 1.5, color.NRGBA{255, 90, 60, 255}, true)
	}
}

// RenderParticles draws the burst particles with age-based fade.
func (r *Renderer) RenderParticles(screen *ebiten.Image, bursts *BurstSystem) {
	for _, p := range bursts.Particles() {
		sx, sy := r.camera.WorldToScreen(p.X, p.Y)
		tint := p.Color
		fade := 1 - p.Age/p.Lifetime
		tint.A = uint8(math.Max(0, 255*fade))
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(p.Size), tint, false)
	}
}

// RenderCoinRain draws the upgrade overlay's falling coins.
func (r *Renderer) RenderCoinRain(screen *ebiten.Image, rain *CoinRain) {
	sprite := r.sprite("coin")
	for _, coin := range rain.Coins() {
		if sprite != nil {
			op := &ebiten.DrawImageOptions{}
			w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
			op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
			op.GeoM.Rotate(coin.Spin)
			op.GeoM.Translate(coin.X, coin.Y)
			screen.DrawImage(sprite, op)
			continue
		}
		vector.DrawFilledCircle(screen, float32(coin.X), float32(coin.Y), 5, color.NRGBA{255, 210, 60, 255}, false)
	}
}

// sprite returns a named sprite or nil when assets are absent.
func (r *Renderer) sprite(key string) *ebiten.Image {
	if r.assets == nil {
		return nil
	}
	return r.assets.Sprite(key)
}
