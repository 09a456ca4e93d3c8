package game

import (
	"bytes"
	_ "embed"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/mech.svg
var mechSVG []byte

//go:embed assets/relic.svg
var relicSVG []byte

//go:embed assets/coin.svg
var coinSVG []byte

// spriteSpec declares one entry of the sprite manifest.
type spriteSpec struct {
	key    string
	svg    []byte
	width  int
	height int
}

// spriteManifest is the declarative list of every sprite the game loads.
var spriteManifest = []spriteSpec{
	{key: "mech", svg: mechSVG, width: 36, height: 36},
	{key: "relic", svg: relicSVG, width: 22, height: 22},
	{key: "coin", svg: coinSVG, width: 12, height: 12},
}

// AssetManager rasterizes the embedded SVG sprites and generates the
// procedural upgrade icons. A sprite that fails to parse degrades to a
// generated placeholder rather than failing startup.
type AssetManager struct {
	sprites map[string]*ebiten.Image
	icons   map[string]*ebiten.Image
}

// LoadAssets rasterizes the manifest into textures.
func LoadAssets() *AssetManager {
	m := &AssetManager{
		sprites: make(map[string]*ebiten.Image),
		icons:   make(map[string]*ebiten.Image),
	}
	for _, spec := range spriteManifest {
		img, err := svgToImage(spec.svg, spec.width, spec.height)
		if err != nil {
			log.Printf("[Assets] sprite %q failed to rasterize (%v), using placeholder", spec.key, err)
			img = placeholderImage(spec.key, spec.width, spec.height)
		}
		m.sprites[spec.key] = ebiten.NewImageFromImage(img)
	}
	return m
}

// Sprite returns a loaded sprite, or nil for an unknown key.
func (m *AssetManager) Sprite(key string) *ebiten.Image {
	return m.sprites[key]
}

// Icon returns the procedural icon texture for an upgrade icon key,
// generating and caching it on first use.
func (m *AssetManager) Icon(key string) *ebiten.Image {
	if icon, ok := m.icons[key]; ok {
		return icon
	}
	icon := ebiten.NewImageFromImage(placeholderImage(key, 28, 28))
	m.icons[key] = icon
	return icon
}

// svgToImage rasterizes SVG data at the given pixel size.
func svgToImage(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// placeholderImage generates a flat diamond texture whose color is
// derived from the key, so distinct keys stay distinguishable.
func placeholderImage(key string, width, height int) image.Image {
	h := fnv.New32a()
	h.Write([]byte(key))
	seed := h.Sum32()
	tint := color.NRGBA{
		R: uint8(80 + seed%160),
		G: uint8(80 + (seed>>8)%160),
		B: uint8(80 + (seed>>16)%160),
		A: 255,
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	cx, cy := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := x-cx, y-cy
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx+dy <= cx {
				img.SetNRGBA(x, y, tint)
			}
		}
	}
	return img
}
