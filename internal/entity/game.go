package entity

import (
	"time"
)

const (
	PlayerX = Mark("X")
	PlayerO = Mark("O")

	EmptyCell = Mark("")
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// Mark - the content of a single cell.
type Mark string

// Next - returns the opponent mark.
func (that Mark) Next() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Board - one 3x3 snapshot of cell marks, row-major.
type Board [CellCount]Mark

// Place - returns a copy of the board with the mark set at cell.
func (that Board) Place(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Location - 1-based column and row of a cell.
type Location struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func LocationOf(cell int) Location {
	return Location{
		Col: cell%BoardSize + 1,
		Row: cell/BoardSize + 1,
	}
}

// HistoryEntry - a recorded board and the move that produced it.
type HistoryEntry struct {
	Squares  Board     `json:"squares"`
	Location *Location `json:"location,omitempty"`
}

// Game - the state owned by one session: history, viewing index, turn and move list order.
type Game struct {
	ID         string         `json:"id"`
	History    []HistoryEntry `json:"history"`
	StepNumber int            `json:"step_number"`
	XIsNext    bool           `json:"x_is_next"`
	SortDesc   bool           `json:"sort_desc"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:         id,
		History:    []HistoryEntry{{}},
		StepNumber: 0,
		XIsNext:    true,
		SortDesc:   true,
	}
}

// Current - the history entry at the viewing index.
func (that *Game) Current() HistoryEntry {
	return that.History[that.StepNumber]
}

// NextPlayer - the mark that plays at the viewing index.
func (that *Game) NextPlayer() Mark {
	if that.XIsNext {
		return PlayerX
	}
	return PlayerO
}

func (that *Game) LastStep() int {
	return len(that.History) - 1
}
