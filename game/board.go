package game

import "math/rand"

// BoardSize is the fixed edge length of the grid.
const BoardSize = 8

type CellKind uint8

const (
	Empty CellKind = iota
	Bomb
	Stone
	Banana
)

func (k CellKind) String() string {
	switch k {
	case Bomb:
		return "bomb"
	case Stone:
		return "stone"
	case Banana:
		return "banana"
	default:
		return "empty"
	}
}

// Cell is a single square on the board. Value is the strength of a stone or
// bomb (0-3) and carries no meaning for empty or banana cells.
type Cell struct {
	Kind  CellKind `json:"kind"`
	Value int      `json:"value"`
}

type SelectionKind uint8

const (
	Row SelectionKind = iota
	Column
)

// Selection is the single row or column the current mover must pick from.
type Selection struct {
	Kind  SelectionKind `json:"kind"`
	Index int           `json:"index"`
}

func RowSelection(r int) Selection    { return Selection{Kind: Row, Index: r} }
func ColumnSelection(c int) Selection { return Selection{Kind: Column, Index: c} }

// Coords maps an index along the active axis to board coordinates.
func (s Selection) Coords(i int) (col, row int) {
	if s.Kind == Row {
		return i, s.Index
	}
	return s.Index, i
}

// Contains reports whether (col, row) lies on the active axis.
func (s Selection) Contains(col, row int) bool {
	if s.Kind == Row {
		return row == s.Index
	}
	return col == s.Index
}

// Board is the 8x8 grid, indexed by (col, row). It is a value type so search
// branches can snapshot it with a plain copy.
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

// NewRandomBoard draws a fully populated board and the starting selection.
// Each cell kind comes from 11 equally likely outcomes (1 banana, 6 stone,
// 4 bomb); stone and bomb strengths are skewed toward weak pieces.
func NewRandomBoard(rng *rand.Rand) (Board, Selection) {
	var b Board
	for col := 0; col < BoardSize; col++ {
		for row := 0; row < BoardSize; row++ {
			var kind CellKind
			switch n := rng.Intn(11); {
			case n == 0:
				kind = Banana
			case n <= 6:
				kind = Stone
			default:
				kind = Bomb
			}

			value := 0
			if kind == Stone || kind == Bomb {
				switch n := rng.Intn(11); {
				case n == 0:
					value = 3
				case n <= 2:
					value = 2
				case n <= 6:
					value = 1
				default:
					value = 0
				}
			}

			b.cells[col][row] = Cell{Kind: kind, Value: value}
		}
	}

	var sel Selection
	if rng.Intn(2) == 0 {
		sel = RowSelection(rng.Intn(BoardSize))
	} else {
		sel = ColumnSelection(rng.Intn(BoardSize))
	}
	return b, sel
}

// Get returns the cell at (col, row). Out-of-range coordinates are a caller
// bug and panic via the array bounds check.
func (b *Board) Get(col, row int) Cell {
	return b.cells[col][row]
}

// Set places a cell; used by tests and synthetic positions.
func (b *Board) Set(col, row int, c Cell) {
	b.cells[col][row] = c
}

// Clear empties the cell at (col, row). Idempotent.
func (b *Board) Clear(col, row int) {
	b.cells[col][row] = Cell{}
}

// SelectionExhausted reports whether every cell along the given axis is empty.
func (b *Board) SelectionExhausted(sel Selection) bool {
	for i := 0; i < BoardSize; i++ {
		col, row := sel.Coords(i)
		if b.cells[col][row].Kind != Empty {
			return false
		}
	}
	return true
}
