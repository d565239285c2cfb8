package server

import "github.com/Laserlicht/toweroops/game"

type cellDTO struct {
	Kind  string `json:"kind"`
	Value int    `json:"value"`
}

type selectionDTO struct {
	Axis  string `json:"axis"`
	Index int    `json:"index"`
}

// StatusResponse is the full game snapshot pushed to clients after every
// state change.
type StatusResponse struct {
	Board         [][]cellDTO     `json:"board"`
	Selection     selectionDTO    `json:"selection"`
	TowerPlayer   int             `json:"tower_player"`
	TowerComputer int             `json:"tower_computer"`
	Outcome       string          `json:"outcome"`
	MovesMade     int             `json:"moves_made"`
	AILevel       int             `json:"ai_level"`
	Tip           *game.Coord     `json:"tip,omitempty"`
	Stats         game.Statistics `json:"statistics"`
}

type moveRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type settingsDTO struct {
	AILevel        int     `json:"ai_level"`
	AnimationSpeed float64 `json:"animation_speed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFromState(state game.GameState) StatusResponse {
	board := make([][]cellDTO, game.BoardSize)
	for col := 0; col < game.BoardSize; col++ {
		board[col] = make([]cellDTO, game.BoardSize)
		for row := 0; row < game.BoardSize; row++ {
			cell := state.Board.Get(col, row)
			board[col][row] = cellDTO{Kind: cell.Kind.String(), Value: cell.Value}
		}
	}

	axis := "row"
	if state.Selection.Kind == game.Column {
		axis = "column"
	}

	return StatusResponse{
		Board:         board,
		Selection:     selectionDTO{Axis: axis, Index: state.Selection.Index},
		TowerPlayer:   state.TowerPlayer,
		TowerComputer: state.TowerComputer,
		Outcome:       state.Outcome.String(),
		MovesMade:     state.MovesMade,
		AILevel:       state.AILevel,
		Tip:           state.Tip,
		Stats:         state.Stats,
	}
}
