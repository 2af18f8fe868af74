package main

import (
	"os"

	"github.com/AndreasStokka/Kvittering/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
