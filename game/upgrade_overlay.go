package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// UpgradeOverlay is the modal upgrade picker. It owns the current offer
// and the coin rain that plays behind it; the main scene owns the state
// transitions around it.
type UpgradeOverlay struct {
	offer []UpgradeDescriptor
	open  bool
	rain  *CoinRain
}

// NewUpgradeOverlay creates a closed overlay.
func NewUpgradeOverlay(rain *CoinRain) *UpgradeOverlay {
	return &UpgradeOverlay{rain: rain}
}

// Open shows the overlay with the given offer and starts the coin rain.
func (o *UpgradeOverlay) Open(offer []UpgradeDescriptor) {
	o.offer = offer
	o.open = true
	o.rain.Start()
}

// Close hides the overlay and destroys the coin rain.
func (o *UpgradeOverlay) Close() {
	o.open = false
	o.offer = nil
	o.rain.Stop()
}

// IsOpen reports whether the overlay is visible.
func (o *UpgradeOverlay) IsOpen() bool {
	return o.open
}

// Offer returns the upgrades currently on display.
func (o *UpgradeOverlay) Offer() []UpgradeDescriptor {
	return o.offer
}

// Rain returns the overlay's coin animation.
func (o *UpgradeOverlay) Rain() *CoinRain {
	return o.rain
}

// HandleInput reads the picker keys. It returns the chosen offer index,
// or -1 with skipped=true for an explicit skip, or -1/false while no
// decision has been made.
func (o *UpgradeOverlay) HandleInput() (choice int, skipped bool) {
	if !o.open {
		return -1, false
	}
	keys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}
	for i, key := range keys {
		if i < len(o.offer) && inpututil.IsKeyJustPressed(key) {
			return i, false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return -1, true
	}
	return -1, false
}
