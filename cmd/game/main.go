package main

import (
	"log"

	"ironvolley/internal/game"
)

func main() {
	g := game.NewGame()
	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}
