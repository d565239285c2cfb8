package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Laserlicht/toweroops/arena"
	"github.com/Laserlicht/toweroops/game"
	"github.com/Laserlicht/toweroops/searcher"
)

func main() {
	levelA := flag.Int("a", searcher.MaxLevel, "AI level for side A (0-4)")
	levelB := flag.Int("b", 1, "AI level for side B (0-4)")
	games := flag.Int("games", 20, "number of rounds to play")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	out := flag.String("out", "results", "results root directory")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := arena.Config{LevelA: *levelA, LevelB: *levelB, Games: *games, Seed: *seed}
	log.Info().Int("level_a", cfg.LevelA).Int("level_b", cfg.LevelB).Int("games", cfg.Games).Msg("starting match")

	records := arena.Run(cfg)

	var winsA, winsB, draws int
	for _, r := range records {
		switch r.Outcome {
		case game.Won:
			winsA++
		case game.Lost:
			winsB++
		default:
			draws++
		}
	}
	log.Info().Int("wins_a", winsA).Int("wins_b", winsB).Int("draws", draws).Msg("match finished")

	writer, err := arena.NewWriter(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create results writer")
	}
	if err := writer.WriteGameRecords(records); err != nil {
		log.Fatal().Err(err).Msg("failed to write results")
	}
	log.Info().Str("dir", writer.BaseDir()).Msg("results written")
}
