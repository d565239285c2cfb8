package game

import "math/rand"

// MaxTowerHeight is the target height: the first tower to reach it wins.
const MaxTowerHeight = 20

// DefaultAILevel is the computer strength used when no setting is loaded.
const DefaultAILevel = 2

// Outcome is the round result from the human player's perspective.
type Outcome int

const (
	Running Outcome = iota
	Won
	Lost
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Drawn:
		return "drawn"
	default:
		return "running"
	}
}

// MoveResult is the only signal MakeMove emits. Invalid means the move was
// rejected without mutating anything.
type MoveResult int

const (
	Invalid MoveResult = iota
	Continue
	GameOver
)

// Coord is a board position.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// GameState holds everything for one round: the board, the active selection,
// both towers and the cumulative statistics. A single live instance exists at
// a time; callers serialize access (see engine.Engine).
type GameState struct {
	Board         Board
	Selection     Selection
	TowerPlayer   int
	TowerComputer int
	Outcome       Outcome
	MovesMade     int
	AILevel       int
	Tip           *Coord
	Hovered       *Coord
	Stats         Statistics

	// OnGameOver is invoked once per terminal transition, after the outcome
	// has been recorded into Stats. Used for best-effort persistence.
	OnGameOver func(Outcome, Statistics)

	rng *rand.Rand
}

// NewGameState draws a fresh board and returns a running round. The rng is
// kept for later NewGame resets; a seeded source makes rounds reproducible.
func NewGameState(rng *rand.Rand) *GameState {
	board, sel := NewRandomBoard(rng)
	return &GameState{
		Board:     board,
		Selection: sel,
		AILevel:   DefaultAILevel,
		rng:       rng,
	}
}

// NewGame starts a fresh round on a new board, keeping statistics and the
// configured AI level.
func (g *GameState) NewGame() {
	board, sel := NewRandomBoard(g.rng)
	g.Board = board
	g.Selection = sel
	g.TowerPlayer = 0
	g.TowerComputer = 0
	g.Outcome = Running
	g.MovesMade = 0
	g.Tip = nil
	g.Hovered = nil
}

// IsValidMove reports whether (col, row) is a legal target for the current
// selection.
func (g *GameState) IsValidMove(col, row int) bool {
	if g.Outcome != Running {
		return false
	}
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return false
	}
	return g.Selection.Contains(col, row) && g.Board.Get(col, row).Kind != Empty
}

// MakeMove executes a move at (col, row). isPlayer indicates whether the
// human is acting. It does not trigger the computer's reply; the caller owns
// turn alternation.
func (g *GameState) MakeMove(col, row int, isPlayer bool) MoveResult {
	if !g.IsValidMove(col, row) {
		return Invalid
	}

	cell := g.Board.Get(col, row)

	tower := &g.TowerComputer
	if isPlayer {
		tower = &g.TowerPlayer
	}
	switch cell.Kind {
	case Stone:
		*tower = min(*tower+cell.Value+1, MaxTowerHeight)
	case Bomb:
		*tower = max(*tower-cell.Value-1, 0)
	}

	// A banana keeps the current axis; everything else flips it.
	if cell.Kind != Banana {
		if g.Selection.Kind == Row {
			g.Selection = ColumnSelection(col)
		} else {
			g.Selection = RowSelection(row)
		}
	}

	g.Board.Clear(col, row)
	g.MovesMade++
	g.Tip = nil

	// Tower checks come before exhaustion: the acting side's win is detected
	// first even if the move also empties the new axis.
	actingTower, otherTower := g.TowerComputer, g.TowerPlayer
	actingWin, otherWin := Lost, Won
	if isPlayer {
		actingTower, otherTower = g.TowerPlayer, g.TowerComputer
		actingWin, otherWin = Won, Lost
	}
	if actingTower >= MaxTowerHeight {
		g.finish(actingWin)
		return GameOver
	}
	if otherTower >= MaxTowerHeight {
		g.finish(otherWin)
		return GameOver
	}

	if g.Board.SelectionExhausted(g.Selection) {
		switch {
		case g.TowerPlayer > g.TowerComputer:
			g.finish(Won)
		case g.TowerPlayer < g.TowerComputer:
			g.finish(Lost)
		default:
			g.finish(Drawn)
		}
		return GameOver
	}

	return Continue
}

// Surrender resigns the current round; it counts as a computer win.
func (g *GameState) Surrender() {
	if g.Outcome != Running {
		return
	}
	g.finish(Lost)
}

// UpdateHover tracks the pointer position for highlighting. Positions off the
// active axis or off the board clear the hover.
func (g *GameState) UpdateHover(col, row int) {
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		g.Hovered = nil
		return
	}
	if g.Selection.Contains(col, row) {
		g.Hovered = &Coord{Col: col, Row: row}
	} else {
		g.Hovered = nil
	}
}

func (g *GameState) ClearHover() {
	g.Hovered = nil
}

func (g *GameState) finish(o Outcome) {
	g.Outcome = o
	g.Stats.Record(o)
	if g.OnGameOver != nil {
		g.OnGameOver(o, g.Stats)
	}
}
