package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD draws the in-game readouts: hull and XP bars, level, kill count
// and the survival clock. The bars are hidden while the upgrade picker
// is open so they don't clash with it.
type HUD struct {
	width      float64
	height     float64
	barsHidden bool
}

// NewHUD creates the HUD for a viewport size.
func NewHUD(width, height float64) *HUD {
	return &HUD{width: width, height: height}
}

// HideBars hides the hull/XP bars.
func (h *HUD) HideBars() {
	h.barsHidden = true
}

// ShowBars restores the hull/XP bars.
func (h *HUD) ShowBars() {
	h.barsHidden = false
}

// BarsHidden reports whether the bars are hidden.
func (h *HUD) BarsHidden() bool {
	return h.barsHidden
}

// Draw renders the HUD for the current frame.
func (h *HUD) Draw(screen *ebiten.Image, player *Player, exp *ExperienceSystem, session *Session, elapsed float64) {
	face := basicfont.Face7x13

	if !h.barsHidden {
		// Hull bar
		frac := player.Health() / player.MaxHealth()
		vector.DrawFilledRect(screen, 16, 16, 220, 14, color.NRGBA{40, 40, 50, 220}, false)
		vector.DrawFilledRect(screen, 16, 16, float32(220*frac), 14, color.NRGBA{90, 200, 110, 255}, false)
		text.Draw(screen, fmt.Sprintf("HULL %.0f/%.0f", player.Health(), player.MaxHealth()), face, 20, 27, color.White)

		// XP bar
		xp, threshold := exp.XP()
		vector.DrawFilledRect(screen, 16, 36, 220, 8, color.NRGBA{40, 40, 50, 220}, false)
		vector.DrawFilledRect(screen, 16, 36, float32(220*xp/threshold), 8, color.NRGBA{90, 170, 255, 255}, false)
	}

	text.Draw(screen, fmt.Sprintf("LV %d", exp.Level()), face, 250, 27, color.White)
	text.Draw(screen, fmt.Sprintf("KILLS %d", session.Kills()), face, 250, 42, color.White)

	minutes := int(elapsed) / 60
	seconds := int(elapsed) % 60
	clock := fmt.Sprintf("%02d:%02d", minutes, seconds)
	text.Draw(screen, clock, face, int(h.width)/2-18, 27, color.White)
}

// DrawPauseMenu renders the pause overlay.
func (h *HUD) DrawPauseMenu(screen *ebiten.Image) {
	dimScreen(screen, h.width, h.height)
	face := basicfont.Face7x13
	cx := int(h.width) / 2
	text.Draw(screen, "PAUSED", face, cx-24, int(h.height)/2-20, color.White)
	text.Draw(screen, "[Esc] resume", face, cx-42, int(h.height)/2+4, color.NRGBA{200, 200, 200, 255})
}

// DrawUpgradeOverlay renders the upgrade picker cards over the dimmed
// battlefield.
func (h *HUD) DrawUpgradeOverlay(screen *ebiten.Image, overlay *UpgradeOverlay, upgrades *UpgradeSystem, assets *AssetManager) {
	dimScreen(screen, h.width, h.height)
	face := basicfont.Face7x13

	offer := overlay.Offer()
	cardW, cardH := 220.0, 120.0
	totalW := cardW*float64(len(offer)) + 20*float64(len(offer)-1)
	startX := (h.width - totalW) / 2
	y := h.height/2 - cardH/2

	text.Draw(screen, "SYSTEM UPGRADE AVAILABLE", face, int(h.width)/2-90, int(y)-30, color.NRGBA{255, 220, 120, 255})

	for i, d := range offer {
		x := startX + float64(i)*(cardW+20)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(cardW), float32(cardH), color.NRGBA{30, 34, 48, 240}, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(cardW), float32(cardH), 2, color.NRGBA{110, 130, 180, 255}, false)

		if assets != nil {
			icon := assets.Icon(d.Icon)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x+10, y+10)
			screen.DrawImage(icon, op)
		}

		text.Draw(screen, fmt.Sprintf("[%d] %s", i+1, d.Name), face, int(x)+46, int(y)+24, color.White)
		text.Draw(screen, d.Description, face, int(x)+10, int(y)+60, color.NRGBA{190, 190, 200, 255})
		text.Draw(screen, fmt.Sprintf("level %d/%d", upgrades.Level(d.ID), d.MaxLevel), face, int(x)+10, int(y)+100, color.NRGBA{140, 140, 150, 255})
	}

	text.Draw(screen, "[Esc] skip", face, int(h.width)/2-34, int(y+cardH)+28, color.NRGBA{160, 160, 170, 255})
}

// DrawRelicOverlay renders the relic claim prompt.
func (h *HUD) DrawRelicOverlay(screen *ebiten.Image, relics *RelicSystem) {
	pending := relics.Pending()
	if pending == nil {
		return
	}
	dimScreen(screen, h.width, h.height)
	face := basicfont.Face7x13
	cx := int(h.width) / 2
	cy := int(h.height) / 2
	text.Draw(screen, "RELIC FOUND", face, cx-40, cy-40, color.NRGBA{255, 220, 120, 255})
	text.Draw(screen, pending.Name, face, cx-len(pending.Name)*7/2, cy-16, color.White)
	text.Draw(screen, pending.Description, face, cx-len(pending.Description)*7/2, cy+4, color.NRGBA{190, 190, 200, 255})
	text.Draw(screen, "[Enter] claim   [Backspace] leave", face, cx-115, cy+36, color.NRGBA{160, 160, 170, 255})
}

// DrawDebugInfo renders the diagnostic readout lines along the bottom
// edge. Toggled with F3.
func (h *HUD) DrawDebugInfo(screen *ebiten.Image, lines ...string) {
	y := int(h.height) - 16*len(lines) - 8
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 16, y+i*16)
	}
}

// dimScreen darkens the battlefield behind an overlay.
func dimScreen(screen *ebiten.Image, width, height float64) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), color.NRGBA{0, 0, 0, 150}, false)
}
