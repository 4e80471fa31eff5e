package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"msns_backend/internals/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("msns exited")
		os.Exit(1)
	}
}
