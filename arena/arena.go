// Package arena plays headless rounds between two AI levels to compare
// tiers, e.g. when retuning the evaluation weights.
package arena

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	xrand "golang.org/x/exp/rand"

	"github.com/Laserlicht/toweroops/game"
	"github.com/Laserlicht/toweroops/searcher"
)

// Config describes one match-up. LevelA plays the "player" side, LevelB the
// "computer" side. A non-zero Seed makes the whole run reproducible.
type Config struct {
	LevelA int
	LevelB int
	Games  int
	Seed   int64
}

// GameRecord is the outcome of a single round.
type GameRecord struct {
	ID       int
	LevelA   int
	LevelB   int
	Outcome  game.Outcome // from side A's perspective
	Moves    int
	TowerA   int
	TowerB   int
	Duration time.Duration
}

// Run plays cfg.Games rounds and returns one record per round.
func Run(cfg Config) []GameRecord {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	boardRNG := rand.New(rand.NewSource(seed))
	sideA := searcher.New(cfg.LevelA, searcher.WithRand(xrand.New(xrand.NewSource(uint64(seed)+1))))
	sideB := searcher.New(cfg.LevelB, searcher.WithRand(xrand.New(xrand.NewSource(uint64(seed)+2))))

	records := make([]GameRecord, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		records = append(records, playGame(i+1, cfg, boardRNG, sideA, sideB))
		log.Info().
			Int("game", i+1).
			Str("outcome", records[i].Outcome.String()).
			Int("moves", records[i].Moves).
			Msg("round finished")
	}
	return records
}

// playGame alternates the two searchers on a fresh board until the round
// terminates. Side A moves as the player, side B as the computer, so the
// GameState outcome already reads from A's perspective.
func playGame(id int, cfg Config, boardRNG *rand.Rand, sideA, sideB *searcher.Searcher) GameRecord {
	state := game.NewGameState(boardRNG)
	start := time.Now()

	aToMove := true
	for state.Outcome == game.Running {
		var col, row int
		if aToMove {
			col, row = sideA.FindMove(state.Board, state.Selection, state.TowerPlayer, state.TowerComputer)
		} else {
			col, row = sideB.FindMove(state.Board, state.Selection, state.TowerComputer, state.TowerPlayer)
		}

		if state.MakeMove(col, row, aToMove) == game.Invalid {
			// Searchers only propose legal moves on a non-exhausted axis;
			// anything else is a bug worth failing loudly on.
			log.Panic().Int("col", col).Int("row", row).Msg("searcher proposed an illegal move")
		}
		aToMove = !aToMove
	}

	return GameRecord{
		ID:       id,
		LevelA:   cfg.LevelA,
		LevelB:   cfg.LevelB,
		Outcome:  state.Outcome,
		Moves:    state.MovesMade,
		TowerA:   state.TowerPlayer,
		TowerB:   state.TowerComputer,
		Duration: time.Since(start),
	}
}
