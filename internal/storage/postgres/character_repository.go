package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chronicle-server/internal/interfaces"
	"chronicle-server/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewCharacterRepository creates a PostgreSQL-backed CharacterRepository.
func NewCharacterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

const createCharacterQuery = `
INSERT INTO characters (id, name, canonical_appearance, personality, emotional_baseline, immutable_traits, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const getCharacterByIDQuery = `
SELECT id, name, canonical_appearance, personality, emotional_baseline, immutable_traits, created_at
FROM characters
WHERE id = $1`

const deleteCharacterQuery = `
DELETE FROM characters WHERE id = $1`

func (r *pgCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	traits, err := json.Marshal(character.ImmutableTraits)
	if err != nil {
		return fmt.Errorf("ошибка сериализации immutable_traits: %w", err)
	}

	_, err = r.db.Exec(ctx, createCharacterQuery,
		character.ID,
		character.Name,
		character.CanonicalAppearance,
		character.Personality,
		character.EmotionalBaseline,
		traits,
		character.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create character", zap.Error(err), zap.String("characterID", character.ID))
		return fmt.Errorf("ошибка создания персонажа: %w", err)
	}
	r.logger.Info("Character created", zap.String("characterID", character.ID))
	return nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, id string) (*models.Character, error) {
	character := &models.Character{}
	var traits []byte
	err := r.db.QueryRow(ctx, getCharacterByIDQuery, id).Scan(
		&character.ID,
		&character.Name,
		&character.CanonicalAppearance,
		&character.Personality,
		&character.EmotionalBaseline,
		&traits,
		&character.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to get character", zap.Error(err), zap.String("characterID", id))
		return nil, fmt.Errorf("ошибка получения персонажа: %w", err)
	}
	if err := json.Unmarshal(traits, &character.ImmutableTraits); err != nil {
		return nil, fmt.Errorf("ошибка десериализации immutable_traits: %w", err)
	}
	return character, nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, deleteCharacterQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.Error(err), zap.String("characterID", id))
		return fmt.Errorf("ошибка удаления персонажа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCharacterNotFound
	}
	r.logger.Info("Character deleted", zap.String("characterID", id))
	return nil
}
