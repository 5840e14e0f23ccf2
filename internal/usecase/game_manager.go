package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - runs display layer actions against the session's game.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	newID func() string
	now   func() time.Time
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,

		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (that *GameManager) NewGame(ctx context.Context) (*tictactoe.Descriptor, error) {
	game := entity.NewGame(that.newID())

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID)

	return tictactoe.NewGameController(game).Describe(), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*tictactoe.Descriptor, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewGameController(game).Describe(), nil
}

// PlaceMark - a rejected move is not an error, the unchanged game is returned.
func (that *GameManager) PlaceMark(ctx context.Context, id string, cell int) (*tictactoe.Descriptor, error) {
	log := that.logger.With("method", "PlaceMark", "gameID", id, "cell", cell)

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	controller := tictactoe.NewGameController(game)

	applied, err := controller.PlaceMark(cell)
	if err != nil {
		return nil, fmt.Errorf("failed to place mark: %w", err)
	}

	if !applied {
		log.Debug("move rejected")
		return controller.Describe(), nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Debug("mark placed", "step", game.StepNumber)

	return controller.Describe(), nil
}

func (that *GameManager) JumpTo(ctx context.Context, id string, step int) (*tictactoe.Descriptor, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	controller := tictactoe.NewGameController(game)

	if err = controller.JumpTo(step); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return controller.Describe(), nil
}

func (that *GameManager) ToggleOrder(ctx context.Context, id string) (*tictactoe.Descriptor, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	controller := tictactoe.NewGameController(game)
	controller.ToggleOrder()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return controller.Describe(), nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if id == "" {
		return apperror.ErrEmptyGameID
	}

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Debug("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	if id == "" {
		return nil, apperror.ErrEmptyGameID
	}

	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = that.now()

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
