package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// WinCombos - rows, then columns, then diagonals. The order decides which line wins a tie.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner - the player holding a line and the cells of that line.
type Winner struct {
	Player  entity.Mark `json:"player"`
	Squares [3]int      `json:"squares"`
}

// CalculateWinner - returns the first complete line of the board, if any.
func CalculateWinner(board entity.Board) (Winner, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return Winner{Player: a, Squares: combo}, true
		}
	}

	return Winner{}, false
}
