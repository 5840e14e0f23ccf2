package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-timetravel/mocks/usecase"
)

var (
	errRedisDown = errors.New("redis down")
	fixedNow     = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
)

func newTestManager(t *testing.T) (*GameManager, *mockedUseCase.MockgameRepo) {
	t.Helper()

	mockGameRepo := mockedUseCase.NewMockgameRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewGameManager(logger, mockGameRepo)
	manager.newID = func() string { return "g123" }
	manager.now = func() time.Time { return fixedNow }

	return manager, mockGameRepo
}

// gameAfter - a stored game with the given cells already played.
func gameAfter(t *testing.T, cells ...int) *entity.Game {
	t.Helper()

	game := entity.NewGame("g123")
	controller := tictactoe.NewGameController(game)
	for _, cell := range cells {
		applied, err := controller.PlaceMark(cell)
		require.NoError(t, err)
		require.True(t, applied)
	}

	return game
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a fresh game", func(t *testing.T) {
		// Given: a repository accepting the new game
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			CreateOrUpdate(ctx, mock.MatchedBy(func(game *entity.Game) bool {
				return game.ID == "g123" && len(game.History) == 1 && game.UpdatedAt.Equal(fixedNow)
			})).
			Return(nil).
			Once()

		// When: creating a game
		desc, err := manager.NewGame(ctx)

		// Then: the descriptor shows an empty board with X to move
		require.NoError(t, err)
		assert.Equal(t, "g123", desc.ID)
		assert.Equal(t, "Next player: X", desc.Status)
		assert.Len(t, desc.Moves, 1)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			CreateOrUpdate(ctx, mock.AnythingOfType("*entity.Game")).
			Return(errRedisDown).
			Once()

		desc, err := manager.NewGame(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, desc)
	})
}

func TestGameManager_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Describes the stored game", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t, 0, 4, 1, 5, 2), nil).
			Once()

		desc, err := manager.GetGame(ctx, "g123")

		require.NoError(t, err)
		assert.Equal(t, "Winner: X", desc.Status)
		assert.Equal(t, []int{0, 1, 2}, desc.WinSquares)
	})

	t.Run("Returns ErrGameNotFound for unknown games", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "missing").
			Return(nil, apperror.ErrGameNotFound).
			Once()

		desc, err := manager.GetGame(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, desc)
	})

	t.Run("Rejects an empty id without touching the repository", func(t *testing.T) {
		manager, _ := newTestManager(t)

		_, err := manager.GetGame(ctx, "")

		require.ErrorIs(t, err, apperror.ErrEmptyGameID)
	})
}

func TestGameManager_PlaceMark(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the game after a valid move", func(t *testing.T) {
		// Given: a new stored game
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t), nil).
			Once()

		mockGameRepo.EXPECT().
			CreateOrUpdate(ctx, mock.MatchedBy(func(game *entity.Game) bool {
				return len(game.History) == 2 && game.StepNumber == 1 && !game.XIsNext
			})).
			Return(nil).
			Once()

		// When: X plays the center
		desc, err := manager.PlaceMark(ctx, "g123", 4)

		// Then: the new board is described
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, desc.Squares[4])
		assert.Equal(t, "Next player: O", desc.Status)
	})

	t.Run("Rejected move does not write", func(t *testing.T) {
		// Given: a game where cell 0 is taken
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t, 0), nil).
			Once()

		// When: O tries cell 0
		desc, err := manager.PlaceMark(ctx, "g123", 0)

		// Then: no error, unchanged board, and CreateOrUpdate is never called
		require.NoError(t, err)
		assert.Len(t, desc.Moves, 2)
		assert.Equal(t, "Next player: O", desc.Status)
	})

	t.Run("Move after a win does not write", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t, 0, 4, 1, 5, 2), nil).
			Once()

		desc, err := manager.PlaceMark(ctx, "g123", 8)

		require.NoError(t, err)
		assert.Equal(t, "Winner: X", desc.Status)
		assert.Len(t, desc.Moves, 6)
	})

	t.Run("Invalid cell", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t), nil).
			Once()

		desc, err := manager.PlaceMark(ctx, "g123", 9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Nil(t, desc)
	})

	t.Run("Returns error if the update fails", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t), nil).
			Once()

		mockGameRepo.EXPECT().
			CreateOrUpdate(ctx, mock.AnythingOfType("*entity.Game")).
			Return(errRedisDown).
			Once()

		_, err := manager.PlaceMark(ctx, "g123", 4)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the new viewing index", func(t *testing.T) {
		// Given: a game with three moves
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t, 0, 4, 8), nil).
			Once()

		mockGameRepo.EXPECT().
			CreateOrUpdate(ctx, mock.MatchedBy(func(game *entity.Game) bool {
				return game.StepNumber == 1 && !game.XIsNext && len(game.History) == 4
			})).
			Return(nil).
			Once()

		// When: jumping to step 1
		desc, err := manager.JumpTo(ctx, "g123", 1)

		// Then: the board of step 1 is shown with O to move
		require.NoError(t, err)
		assert.Equal(t, entity.Board{entity.PlayerX}, desc.Squares)
		assert.Equal(t, "Next player: O", desc.Status)
	})

	t.Run("Out of range step", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			GetByID(ctx, "g123").
			Return(gameAfter(t, 0), nil).
			Once()

		_, err := manager.JumpTo(ctx, "g123", 5)

		require.ErrorIs(t, err, apperror.ErrStepOutOfRange)
	})
}

func TestGameManager_ToggleOrder(t *testing.T) {
	ctx := context.Background()

	manager, mockGameRepo := newTestManager(t)

	mockGameRepo.EXPECT().
		GetByID(ctx, "g123").
		Return(gameAfter(t, 0), nil).
		Once()

	mockGameRepo.EXPECT().
		CreateOrUpdate(ctx, mock.MatchedBy(func(game *entity.Game) bool {
			return !game.SortDesc
		})).
		Return(nil).
		Once()

	desc, err := manager.ToggleOrder(ctx, "g123")

	require.NoError(t, err)
	assert.Equal(t, tictactoe.OrderAscending, desc.Order)
	assert.Equal(t, 1, desc.Moves[0].Step)
}

func TestGameManager_DeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the game", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			DeleteByID(ctx, "g123").
			Return(nil).
			Once()

		require.NoError(t, manager.DeleteGame(ctx, "g123"))
	})

	t.Run("Propagates ErrGameNotFound", func(t *testing.T) {
		manager, mockGameRepo := newTestManager(t)

		mockGameRepo.EXPECT().
			DeleteByID(ctx, "g123").
			Return(apperror.ErrGameNotFound).
			Once()

		require.ErrorIs(t, manager.DeleteGame(ctx, "g123"), apperror.ErrGameNotFound)
	})
}
