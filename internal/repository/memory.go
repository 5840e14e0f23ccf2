package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memoryRecord struct {
	payload   []byte
	expiresAt time.Time
}

type memoryGame struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryGameRepository - keeps games inside the process with the same expiry rules as the redis store.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		records: make(map[string]memoryRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	// stored as JSON so callers never share history slices with the store
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	record := memoryRecord{payload: gameJSON}
	if that.ttl > 0 {
		record.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.records[game.ID] = record
	that.mu.Unlock()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	record, ok := that.lookup(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	var existingGame entity.Game
	if err := json.Unmarshal(record.payload, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.lookup(id); !ok {
		return apperror.ErrGameNotFound
	}

	that.mu.Lock()
	delete(that.records, id)
	that.mu.Unlock()

	return nil
}

// lookup - returns a live record, dropping it when expired.
func (that *memoryGame) lookup(id string) (memoryRecord, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.records[id]
	if !ok {
		return memoryRecord{}, false
	}

	if !record.expiresAt.IsZero() && !that.now().Before(record.expiresAt) {
		delete(that.records, id)
		return memoryRecord{}, false
	}

	return record, true
}
