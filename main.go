package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"linkforge/config"
	"linkforge/database"
	"linkforge/handlers"
)

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	router := handlers.New(cfg, db, log).Router()

	log.Info().Str("addr", cfg.Server.Addr).Msg("linkforge starting")
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05 MST",
	}
	return zerolog.New(output).With().Timestamp().Logger()
}
