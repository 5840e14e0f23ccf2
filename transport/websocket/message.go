package websocket

import (
	"encoding/json"
	"fmt"

	gorilla "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	actionNewGame     = "game:new"
	actionGameState   = "game:state"
	actionPlaceMark   = "game:place"
	actionJumpTo      = "game:jump"
	actionToggleOrder = "game:order"
	actionDeleteGame  = "game:delete"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - request and response body of every action.
type Payload struct {
	GameID string                `json:"game_id,omitempty"`
	Cell   *int                  `json:"cell,omitempty"`
	Step   *int                  `json:"step,omitempty"`
	Game   *tictactoe.Descriptor `json:"game,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func sendMessage(conn *gorilla.Conn, action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadJSON,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func sendErrorResponse(conn *gorilla.Conn, action, errorMsg string) error {
	if err := sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
