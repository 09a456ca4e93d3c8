package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// ResultsScene shows the final stats snapshot after the mech falls.
// Enter returns to the start menu.
type ResultsScene struct {
	manager *SceneManager
	config  Config
	assets  *AssetManager
	stats   GameStats
}

// NewResultsScene creates the results screen for one finished run.
func NewResultsScene(manager *SceneManager, config Config, assets *AssetManager, stats GameStats) *ResultsScene {
	return &ResultsScene{
		manager: manager,
		config:  config,
		assets:  assets,
		stats:   stats,
	}
}

// Update waits for the replay input.
func (s *ResultsScene) Update(_ float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.manager.SwitchTo(NewStartScene(s.manager, s.config, s.assets))
	}
}

// Draw renders the summary table.
func (s *ResultsScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{12, 12, 20, 255})
	face := basicfont.Face7x13
	cx := s.config.ScreenWidth / 2
	y := 80

	title := "MECH DOWN"
	text.Draw(screen, title, face, cx-len(title)*7/2, y, color.NRGBA{230, 90, 90, 255})
	y += 36

	survived := s.stats.SurvivalTimeMs / 1000.0
	lines := []string{
		fmt.Sprintf("survived    %02d:%02d", int(survived)/60, int(survived)%60),
		fmt.Sprintf("level       %d", s.stats.LevelReached),
		fmt.Sprintf("kills       %d", s.stats.EnemiesDefeated),
	}
	for _, line := range lines {
		text.Draw(screen, line, face, cx-90, y, color.White)
		y += 18
	}
	y += 18

	text.Draw(screen, "WEAPON        LV   DAMAGE      DPS", face, cx-120, y, color.NRGBA{160, 160, 170, 255})
	y += 16
	for _, w := range s.stats.Weapons {
		row := fmt.Sprintf("%-12s %3d %8.0f %8.1f", w.Name, w.Level, w.TotalDamage, w.DPS)
		text.Draw(screen, row, face, cx-120, y, color.White)
		y += 16
	}

	if len(s.stats.Relics) > 0 {
		y += 18
		text.Draw(screen, "relics: "+strings.Join(s.stats.Relics, ", "), face, cx-120, y, color.NRGBA{255, 220, 120, 255})
	}

	prompt := "press [Enter] to redeploy"
	text.Draw(screen, prompt, face, cx-len(prompt)*7/2, s.config.ScreenHeight-60, color.NRGBA{200, 200, 210, 255})
}
