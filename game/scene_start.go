package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// StartScene is the main menu. Enter starts a fresh playthrough; every
// playthrough gets a brand-new MainScene instance so no state survives
// a replay.
type StartScene struct {
	manager *SceneManager
	config  Config
	assets  *AssetManager
	blink   float64
}

// NewStartScene creates the menu.
func NewStartScene(manager *SceneManager, config Config, assets *AssetManager) *StartScene {
	return &StartScene{
		manager: manager,
		config:  config,
		assets:  assets,
	}
}

// Update waits for the start input.
func (s *StartScene) Update(deltaTime float64) {
	s.blink += deltaTime
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		main := NewMainScene(s.manager, s.config, s.assets, NewKeyboardInput())
		s.manager.SwitchTo(main)
	}
}

// Draw renders the title card.
func (s *StartScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{12, 12, 20, 255})
	face := basicfont.Face7x13
	cx := s.config.ScreenWidth / 2
	cy := s.config.ScreenHeight / 2

	title := "LAST MECH STANDING"
	text.Draw(screen, title, face, cx-len(title)*7/2, cy-40, color.NRGBA{120, 230, 150, 255})

	if s.assets != nil {
		if sprite := s.assets.Sprite("mech"); sprite != nil {
			op := &ebiten.DrawImageOptions{}
			w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
			op.GeoM.Translate(float64(cx-w/2), float64(cy-h/2))
			screen.DrawImage(sprite, op)
		}
	}

	if math.Mod(s.blink, 1.2) < 0.8 {
		prompt := "press [Enter] to deploy"
		text.Draw(screen, prompt, face, cx-len(prompt)*7/2, cy+50, color.NRGBA{200, 200, 210, 255})
	}
}
