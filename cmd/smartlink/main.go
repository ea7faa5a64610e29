package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zaz600/go-smartlink-web/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Msgf("Runtime error: %v", err)
	}
}
