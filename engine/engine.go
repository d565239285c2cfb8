// Package engine owns the single live round and routes every mutation through
// one mutex, so UI layers never touch GameState fields directly.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Laserlicht/toweroops/game"
	"github.com/Laserlicht/toweroops/searcher"
)

// StatsSaver persists statistics on terminal transitions. Failures are logged
// and ignored; they never block game progression.
type StatsSaver interface {
	SaveStatistics(game.Statistics) error
}

type Option func(e *Engine)

// WithRand injects the board-generation random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithAILevel sets the computer strength for the first round.
func WithAILevel(level int) Option {
	return func(e *Engine) {
		e.aiLevel = level
	}
}

// WithStatistics seeds the cumulative statistics, typically loaded from disk.
func WithStatistics(stats game.Statistics) Option {
	return func(e *Engine) {
		e.stats = stats
	}
}

// WithStatsSaver wires the persistence collaborator.
func WithStatsSaver(saver StatsSaver) Option {
	return func(e *Engine) {
		e.saver = saver
	}
}

// WithSearchOptions forwards options to every searcher the engine builds,
// e.g. a seeded tie-break source for deterministic tests.
func WithSearchOptions(options ...searcher.Option) Option {
	return func(e *Engine) {
		e.searchOptions = options
	}
}

// Engine is the single logical owner of the live GameState.
type Engine struct {
	mu            sync.Mutex
	state         *game.GameState
	rng           *rand.Rand
	saver         StatsSaver
	aiLevel       int
	stats         game.Statistics
	searchOptions []searcher.Option
}

func New(options ...Option) *Engine {
	e := &Engine{aiLevel: game.DefaultAILevel}
	for _, option := range options {
		option(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.aiLevel < 0 {
		e.aiLevel = 0
	}
	if e.aiLevel > searcher.MaxLevel {
		e.aiLevel = searcher.MaxLevel
	}

	e.state = game.NewGameState(e.rng)
	e.state.AILevel = e.aiLevel
	e.state.Stats = e.stats
	e.state.OnGameOver = e.persistStats
	return e
}

// Reset starts a fresh round, preserving statistics and the AI level.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.NewGame()
}

// Apply executes a move for the given side.
func (e *Engine) Apply(col, row int, isPlayer bool) game.MoveResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.MakeMove(col, row, isPlayer)
}

// IsLegal reports whether (col, row) would be accepted, for pointer feedback.
func (e *Engine) IsLegal(col, row int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.IsValidMove(col, row)
}

// Suggest asks the AI at the given level for a move on behalf of either side.
func (e *Engine) Suggest(level int, forPlayer bool) (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suggestLocked(level, forPlayer)
}

func (e *Engine) suggestLocked(level int, forPlayer bool) (int, int) {
	towerSelf, towerOpp := e.state.TowerComputer, e.state.TowerPlayer
	if forPlayer {
		towerSelf, towerOpp = e.state.TowerPlayer, e.state.TowerComputer
	}
	s := searcher.New(level, e.searchOptions...)
	return s.FindMove(e.state.Board, e.state.Selection, towerSelf, towerOpp)
}

// ComputerTurn lets the computer pick and play a move at the configured
// level. It is a no-op on a finished round.
func (e *Engine) ComputerTurn() game.MoveResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Outcome != game.Running {
		return game.Invalid
	}
	col, row := e.suggestLocked(e.state.AILevel, false)
	return e.state.MakeMove(col, row, false)
}

// Tip computes and stores a hint for the player, always at full strength.
func (e *Engine) Tip() (int, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Outcome != game.Running {
		return 0, 0, false
	}
	col, row := e.suggestLocked(searcher.MaxLevel, true)
	e.state.Tip = &game.Coord{Col: col, Row: row}
	return col, row, true
}

// Surrender resigns the running round on the player's behalf.
func (e *Engine) Surrender() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Surrender()
}

func (e *Engine) Stats() game.Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Stats
}

// ResetStats zeroes the counters and persists the cleared record.
func (e *Engine) ResetStats() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Stats.Reset()
	e.persistStats(e.state.Outcome, e.state.Stats)
}

func (e *Engine) AILevel() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.AILevel
}

func (e *Engine) SetAILevel(level int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if level < 0 {
		level = 0
	}
	if level > searcher.MaxLevel {
		level = searcher.MaxLevel
	}
	e.state.AILevel = level
}

func (e *Engine) UpdateHover(col, row int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.UpdateHover(col, row)
}

func (e *Engine) ClearHover() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ClearHover()
}

// Snapshot returns a copy of the current state for read-only consumers.
// The board is a value copy; mutating the snapshot never affects the live
// round.
func (e *Engine) Snapshot() game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := *e.state
	snap.OnGameOver = nil
	if e.state.Tip != nil {
		tip := *e.state.Tip
		snap.Tip = &tip
	}
	if e.state.Hovered != nil {
		hov := *e.state.Hovered
		snap.Hovered = &hov
	}
	return snap
}

func (e *Engine) persistStats(_ game.Outcome, stats game.Statistics) {
	if e.saver == nil {
		return
	}
	if err := e.saver.SaveStatistics(stats); err != nil {
		log.Warn().Err(err).Msg("failed to persist statistics")
	}
}
