package main

import "github.com/sweriko/Horde/internal/game"

func main() {
	game.RunDesktop()
}
