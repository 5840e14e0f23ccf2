package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var errBadPathParam = errors.New("path parameter must be an integer")

type gameUseCase interface {
	NewGame(ctx context.Context) (*tictactoe.Descriptor, error)
	GetGame(ctx context.Context, id string) (*tictactoe.Descriptor, error)
	PlaceMark(ctx context.Context, id string, cell int) (*tictactoe.Descriptor, error)
	JumpTo(ctx context.Context, id string, step int) (*tictactoe.Descriptor, error)
	ToggleOrder(ctx context.Context, id string) (*tictactoe.Descriptor, error)
	DeleteGame(ctx context.Context, id string) error
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	desc, err := that.game.NewGame(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, desc)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	desc, err := that.game.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, desc)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.game.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) placeMark(w http.ResponseWriter, r *http.Request) {
	cell, err := intParam(r, "cell")
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	desc, err := that.game.PlaceMark(r.Context(), chi.URLParam(r, "id"), cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, desc)
}

func (that *handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	step, err := intParam(r, "step")
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	desc, err := that.game.JumpTo(r.Context(), chi.URLParam(r, "id"), step)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, desc)
}

func (that *handlers) toggleOrder(w http.ResponseWriter, r *http.Request) {
	desc, err := that.game.ToggleOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, desc)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrEmptyGameID):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrStepOutOfRange),
		errors.Is(err, errBadPathParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func intParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadPathParam, name)
	}

	return value, nil
}
