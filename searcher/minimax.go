package searcher

import (
	"math"

	"github.com/Laserlicht/toweroops/game"
)

const (
	minScore = math.MinInt
	maxScore = math.MaxInt
)

// searchState is one node's snapshot during minimax. It is copied for every
// branch so siblings never observe each other's speculative moves.
type searchState struct {
	board     game.Board
	selection game.Selection
	towerMe   int // the searching side (maximizer)
	towerOpp  int // the opponent (minimizer)
}

// apply mutates this snapshot with a single pick, following the same tower,
// axis-switch and clear rules as GameState.MakeMove.
func (st *searchState) apply(col, row int, maximizing bool) {
	cell := st.board.Get(col, row)

	tower := &st.towerOpp
	if maximizing {
		tower = &st.towerMe
	}
	switch cell.Kind {
	case game.Stone:
		*tower = min(*tower+cell.Value+1, game.MaxTowerHeight)
	case game.Bomb:
		*tower = max(*tower-cell.Value-1, 0)
	}

	if cell.Kind != game.Banana {
		if st.selection.Kind == game.Row {
			st.selection = game.ColumnSelection(col)
		} else {
			st.selection = game.RowSelection(row)
		}
	}

	st.board.Clear(col, row)
}

func (s *Searcher) minimaxMove(board *game.Board, sel game.Selection, towerSelf, towerOpponent, depth int) (int, int) {
	root := searchState{
		board:     *board,
		selection: sel,
		towerMe:   towerSelf,
		towerOpp:  towerOpponent,
	}

	bestScore := minScore
	var best []int

	for i := 0; i < game.BoardSize; i++ {
		col, row := sel.Coords(i)
		if board.Get(col, row).Kind == game.Empty {
			continue
		}

		child := root
		child.apply(col, row, true)

		// A move that reaches the target height wins outright; no search
		// needed.
		if child.towerMe >= game.MaxTowerHeight {
			return col, row
		}

		score := minimax(&child, depth-1, minScore, maxScore, false)
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

// minimax scores a position with alpha-beta pruning. maximizing selects whose
// pick the next ply is.
func minimax(st *searchState, depth, alpha, beta int, maximizing bool) int {
	if st.towerMe >= game.MaxTowerHeight {
		return 10000 + depth // prefer faster wins
	}
	if st.towerOpp >= game.MaxTowerHeight {
		return -10000 - depth
	}

	if st.board.SelectionExhausted(st.selection) {
		return evaluateFinal(st)
	}

	if depth <= 0 {
		return evaluate(st)
	}

	if maximizing {
		best := minScore
		for i := 0; i < game.BoardSize; i++ {
			col, row := st.selection.Coords(i)
			if st.board.Get(col, row).Kind == game.Empty {
				continue
			}

			child := *st
			child.apply(col, row, true)
			score := minimax(&child, depth-1, alpha, beta, false)

			best = max(best, score)
			alpha = max(alpha, score)
			if alpha >= beta {
				break
			}
		}
		if best == minScore {
			return evaluateFinal(st)
		}
		return best
	}

	best := maxScore
	for i := 0; i < game.BoardSize; i++ {
		col, row := st.selection.Coords(i)
		if st.board.Get(col, row).Kind == game.Empty {
			continue
		}

		child := *st
		child.apply(col, row, false)
		score := minimax(&child, depth-1, alpha, beta, true)

		best = min(best, score)
		beta = min(beta, score)
		if alpha >= beta {
			break
		}
	}
	if best == maxScore {
		return evaluateFinal(st)
	}
	return best
}
