package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// GameController - applies clicks from the display layer to one game.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// PlaceMark - puts the next player's mark at cell on the viewed board.
// Returns false without touching history when the board is already won or the cell is taken.
func (that *GameController) PlaceMark(cell int) (bool, error) {
	if cell < 0 || cell >= entity.CellCount {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	// moving after a jump back drops the abandoned tail
	history := that.game.History[:that.game.StepNumber+1]
	squares := history[len(history)-1].Squares

	if _, won := CalculateWinner(squares); won || squares[cell] != entity.EmptyCell {
		return false, nil
	}

	location := entity.LocationOf(cell)
	that.game.History = append(history, entity.HistoryEntry{
		Squares:  squares.Place(cell, that.game.NextPlayer()),
		Location: &location,
	})
	that.game.StepNumber = len(history)
	that.game.XIsNext = !that.game.XIsNext

	return true, nil
}

// JumpTo - moves the viewing index to step. History is left as is.
func (that *GameController) JumpTo(step int) error {
	if step < 0 || step > that.game.LastStep() {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrStepOutOfRange, step, that.game.LastStep())
	}

	that.game.StepNumber = step
	that.game.XIsNext = step%2 == 0

	return nil
}

// ToggleOrder - flips the move list order. Game logic is unaffected.
func (that *GameController) ToggleOrder() {
	that.game.SortDesc = !that.game.SortDesc
}
