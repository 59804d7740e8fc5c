package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	preset := flag.String("preset", "", "preset name in presets/ (basename, .yaml optional)")
	scriptName := flag.String("script", "", "tengo script to drive the first filter")
	watch := flag.Bool("watch", false, "reload presets, scripts and shaders when they change on disk")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("shaderblow: color scale")

	game := NewGame(*preset, *scriptName, *watch)
	err := ebiten.RunGame(game)
	if cerr := game.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	if err != nil {
		log.Fatal(err)
	}
}
