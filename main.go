package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"mechsurvivor/game"
)

// app adapts the scene manager to the ebiten game loop with a fixed
// 60 Hz timestep.
type app struct {
	manager *game.SceneManager
	config  game.Config
}

func (a *app) Update() error {
	a.manager.Update(1.0 / 60.0)
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	a.manager.Draw(screen)
}

func (a *app) Layout(_, _ int) (int, int) {
	return a.config.ScreenWidth, a.config.ScreenHeight
}

func main() {
	tuningPath := flag.String("tuning", "tuning.yaml", "path to the balance tuning YAML file")
	flag.Parse()

	config := game.DefaultConfig()
	if err := config.LoadTuning(*tuningPath); err != nil {
		log.Fatalf("load tuning: %v", err)
	}

	assets := game.LoadAssets()
	manager := game.NewSceneManager()
	manager.SwitchTo(game.NewIntroScene(manager, config, assets))

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Last Mech Standing")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&app{manager: manager, config: config}); err != nil {
		log.Fatal(err)
	}
}
