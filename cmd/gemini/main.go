package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/reine-ai/gemini-go/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
