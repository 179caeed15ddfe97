package memory

import (
	"context"
	"fmt"
	"sync"

	"chronicle-server/internal/interfaces"
	"chronicle-server/internal/models"

	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.CharacterRepository = (*characterRepository)(nil)

// characterRepository is the default map-backed canon store. Values are
// copied on every read and write so callers can never mutate stored canon
// through a returned pointer.
type characterRepository struct {
	mu         sync.RWMutex
	characters map[string]models.Character
	logger     *zap.Logger
}

// NewCharacterRepository creates an in-memory CharacterRepository.
func NewCharacterRepository(logger *zap.Logger) interfaces.CharacterRepository {
	return &characterRepository{
		characters: make(map[string]models.Character),
		logger:     logger.Named("MemCharacterRepo"),
	}
}

func (r *characterRepository) Create(_ context.Context, character *models.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.characters[character.ID]; ok {
		return fmt.Errorf("персонаж %q уже существует", character.ID)
	}
	r.characters[character.ID] = copyCharacter(character)
	r.logger.Debug("Character stored", zap.String("characterID", character.ID))
	return nil
}

func (r *characterRepository) GetByID(_ context.Context, id string) (*models.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	character, ok := r.characters[id]
	if !ok {
		return nil, models.ErrCharacterNotFound
	}
	c := copyCharacter(&character)
	return &c, nil
}

func (r *characterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.characters[id]; !ok {
		return models.ErrCharacterNotFound
	}
	delete(r.characters, id)
	r.logger.Debug("Character deleted", zap.String("characterID", id))
	return nil
}

func copyCharacter(c *models.Character) models.Character {
	cp := *c
	cp.ImmutableTraits = append([]string(nil), c.ImmutableTraits...)
	return cp
}
