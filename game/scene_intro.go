package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// introLines is the opening text crawl, one line at a time.
var introLines = []string{
	"The perimeter fell at dawn.",
	"One mech remains on the wall.",
	"Hold the line as long as you can.",
}

// IntroScene plays the opening text sequence, then hands off to the
// start menu. Any key skips ahead.
type IntroScene struct {
	manager *SceneManager
	config  Config
	assets  *AssetManager

	lineIndex float64
	lineTimer float64
}

// NewIntroScene creates the intro.
func NewIntroScene(manager *SceneManager, config Config, assets *AssetManager) *IntroScene {
	return &IntroScene{
		manager: manager,
		config:  config,
		assets:  assets,
	}
}

// Update advances the crawl and skips on key press.
func (s *IntroScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.finish()
		return
	}

	s.lineTimer += deltaTime
	if s.lineTimer >= 2.2 {
		s.lineTimer = 0
		s.lineIndex++
		if int(s.lineIndex) >= len(introLines) {
			s.finish()
		}
	}
}

func (s *IntroScene) finish() {
	s.manager.SwitchTo(NewStartScene(s.manager, s.config, s.assets))
}

// Draw renders the lines revealed so far.
func (s *IntroScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{12, 12, 20, 255})
	face := basicfont.Face7x13
	cx := s.config.ScreenWidth / 2
	y := s.config.ScreenHeight/2 - len(introLines)*12

	for i, line := range introLines {
		if i > int(s.lineIndex) {
			break
		}
		text.Draw(screen, line, face, cx-len(line)*7/2, y+i*24, color.NRGBA{200, 200, 210, 255})
	}
}
