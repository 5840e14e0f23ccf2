package websocket

import (
	"context"
	"fmt"

	gorilla "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

func (that *Server) handleNewGame(ctx context.Context, _ *Payload, conn *gorilla.Conn) error {
	desc, err := that.gameUseCase.NewGame(ctx)
	return that.reply(conn, actionNewGame, desc, err)
}

func (that *Server) handleGameState(ctx context.Context, payload *Payload, conn *gorilla.Conn) error {
	desc, err := that.gameUseCase.GetGame(ctx, payload.GameID)
	return that.reply(conn, actionGameState, desc, err)
}

func (that *Server) handlePlaceMark(ctx context.Context, payload *Payload, conn *gorilla.Conn) error {
	if payload.Cell == nil {
		return sendErrorResponse(conn, actionPlaceMark, "cell is required")
	}

	desc, err := that.gameUseCase.PlaceMark(ctx, payload.GameID, *payload.Cell)
	return that.reply(conn, actionPlaceMark, desc, err)
}

func (that *Server) handleJumpTo(ctx context.Context, payload *Payload, conn *gorilla.Conn) error {
	if payload.Step == nil {
		return sendErrorResponse(conn, actionJumpTo, "step is required")
	}

	desc, err := that.gameUseCase.JumpTo(ctx, payload.GameID, *payload.Step)
	return that.reply(conn, actionJumpTo, desc, err)
}

func (that *Server) handleToggleOrder(ctx context.Context, payload *Payload, conn *gorilla.Conn) error {
	desc, err := that.gameUseCase.ToggleOrder(ctx, payload.GameID)
	return that.reply(conn, actionToggleOrder, desc, err)
}

func (that *Server) handleDeleteGame(ctx context.Context, payload *Payload, conn *gorilla.Conn) error {
	if err := that.gameUseCase.DeleteGame(ctx, payload.GameID); err != nil {
		return that.reply(conn, actionDeleteGame, nil, err)
	}

	return sendMessage(conn, actionDeleteGame, Payload{GameID: payload.GameID})
}

// reply - sends the descriptor, or the error text when the action failed.
func (that *Server) reply(conn *gorilla.Conn, action string, desc *tictactoe.Descriptor, actionErr error) error {
	if actionErr != nil {
		that.logger.Warn("action failed", "action", action, "error", actionErr)
		return sendErrorResponse(conn, action, actionErr.Error())
	}

	if err := sendMessage(conn, action, Payload{GameID: desc.ID, Game: desc}); err != nil {
		return fmt.Errorf("failed to send game: %w", err)
	}

	return nil
}
