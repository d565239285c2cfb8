package searcher

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/Laserlicht/toweroops/game"
)

// MaxLevel is the strongest AI level; hints always use it.
const MaxLevel = 4

type Option func(s *Searcher)

// WithRand injects the random source used for tie-breaking, so searches can
// be made deterministic in tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Searcher picks moves for one side at a fixed strength level:
// 0 random, 1 greedy, 2-4 alpha-beta minimax at depth 2, 4 and 8.
type Searcher struct {
	level int
	rng   *rand.Rand
}

func New(level int, options ...Option) *Searcher {
	s := &Searcher{level: level}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Searcher) Level() int { return s.level }

// FindMove returns one legal (col, row) on the active axis. Towers are given
// from the acting side's point of view. The board is never mutated; minimax
// branches work on copies.
func (s *Searcher) FindMove(board game.Board, sel game.Selection, towerSelf, towerOpponent int) (int, int) {
	switch s.level {
	case 0:
		return s.randomMove(&board, sel)
	case 1:
		return s.greedyMove(&board, sel)
	case 2:
		return s.minimaxMove(&board, sel, towerSelf, towerOpponent, 2)
	case 3:
		return s.minimaxMove(&board, sel, towerSelf, towerOpponent, 4)
	default:
		return s.minimaxMove(&board, sel, towerSelf, towerOpponent, 8)
	}
}

// randomMove shuffles the axis indices and takes the first non-empty cell.
// If the axis is exhausted (callers should not ask in that case) it returns
// index 0 verbatim.
func (s *Searcher) randomMove(board *game.Board, sel game.Selection) (int, int) {
	candidates := make([]int, game.BoardSize)
	for i := range candidates {
		candidates[i] = i
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, i := range candidates {
		col, row := sel.Coords(i)
		if board.Get(col, row).Kind != game.Empty {
			return col, row
		}
	}
	return sel.Coords(0)
}

// greedyMove takes the candidate with the best immediate value, breaking ties
// uniformly at random.
func (s *Searcher) greedyMove(board *game.Board, sel game.Selection) (int, int) {
	bestScore := minScore
	var best []int

	for i := 0; i < game.BoardSize; i++ {
		col, row := sel.Coords(i)
		cell := board.Get(col, row)
		if cell.Kind == game.Empty {
			continue
		}
		score := cellScore(cell)
		if score > bestScore {
			bestScore = score
			best = best[:0]
			best = append(best, i)
		} else if score == bestScore {
			best = append(best, i)
		}
	}

	if len(best) == 0 {
		return sel.Coords(0)
	}
	return sel.Coords(best[s.rng.Intn(len(best))])
}
