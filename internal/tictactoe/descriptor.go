package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	OutcomeInProgress = "in_progress"
	OutcomeDraw       = "draw"
	OutcomeWon        = "won"
)

const (
	OrderDescending = "Descending"
	OrderAscending  = "Ascending"
)

// MoveDescriptor - one entry of the move list.
type MoveDescriptor struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// Descriptor - everything the display layer needs to draw the game.
type Descriptor struct {
	ID         string           `json:"id"`
	Squares    entity.Board     `json:"squares"`
	WinSquares []int            `json:"win_squares"`
	Status     string           `json:"status"`
	Outcome    string           `json:"outcome"`
	Winner     entity.Mark      `json:"winner,omitempty"`
	Moves      []MoveDescriptor `json:"moves"`
	Order      string           `json:"order"`
	OrderLabel string           `json:"order_label"`
}

// Describe - builds the rendering descriptor for the viewed step.
func (that *GameController) Describe() *Descriptor {
	game := that.game
	squares := game.Current().Squares

	desc := &Descriptor{
		ID:         game.ID,
		Squares:    squares,
		WinSquares: []int{},
		Moves:      describeMoves(game),
		Order:      OrderAscending,
	}

	if game.SortDesc {
		desc.Order = OrderDescending
	}
	desc.OrderLabel = "Order of moves: " + desc.Order

	winner, won := CalculateWinner(squares)
	switch {
	case won:
		desc.WinSquares = winner.Squares[:]
		desc.Winner = winner.Player
		desc.Outcome = OutcomeWon
		desc.Status = fmt.Sprintf("Winner: %s", winner.Player)
	case squares.IsFull():
		desc.Outcome = OutcomeDraw
		desc.Status = "Draw"
	default:
		desc.Outcome = OutcomeInProgress
		desc.Status = fmt.Sprintf("Next player: %s", game.NextPlayer())
	}

	return desc
}

// describeMoves - history order when descending, reversed otherwise.
func describeMoves(game *entity.Game) []MoveDescriptor {
	moves := make([]MoveDescriptor, 0, len(game.History))
	for step, entry := range game.History {
		moves = append(moves, MoveDescriptor{
			Step:    step,
			Label:   moveLabel(step, entry.Location),
			Current: step == game.StepNumber,
		})
	}

	if !game.SortDesc {
		slices.Reverse(moves)
	}

	return moves
}

func moveLabel(step int, location *entity.Location) string {
	if step == 0 || location == nil {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d : Col %d - Row %d", step, location.Col, location.Row)
}
