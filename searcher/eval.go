package searcher

import "github.com/Laserlicht/toweroops/game"

// cellScore is the immediate value of picking a cell, positive when good for
// the picker. Shared by the greedy level and the minimax heuristic.
func cellScore(c game.Cell) int {
	switch c.Kind {
	case game.Stone:
		return (c.Value + 1) * 10
	case game.Bomb:
		return -(c.Value + 1) * 10
	case game.Banana:
		return 1
	default:
		return 0
	}
}

// evaluate scores a non-terminal, depth-exhausted position for the maximizer.
// The weights are hand-tuned, not derived; existing AI behavior depends on
// these exact constants.
func evaluate(st *searchState) int {
	towerDiff := (st.towerMe - st.towerOpp) * 100

	axisValue := 0
	available := 0
	for i := 0; i < game.BoardSize; i++ {
		col, row := st.selection.Coords(i)
		cell := st.board.Get(col, row)
		if cell.Kind != game.Empty {
			axisValue += cellScore(cell)
			available++
		}
	}

	boardValue := 0
	for col := 0; col < game.BoardSize; col++ {
		for row := 0; row < game.BoardSize; row++ {
			cell := st.board.Get(col, row)
			if cell.Kind != game.Empty {
				boardValue += cellScore(cell)
			}
		}
	}

	return towerDiff + axisValue*8 - boardValue/game.BoardSize + available*5
}

// evaluateFinal scores a finished position (a tower reached the target or the
// active axis is exhausted).
func evaluateFinal(st *searchState) int {
	switch {
	case st.towerMe > st.towerOpp:
		return 5000
	case st.towerMe < st.towerOpp:
		return -5000
	default:
		return 0
	}
}
