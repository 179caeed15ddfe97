package interfaces

import (
	"context"

	"chronicle-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts a pgx pool or transaction so repositories can run inside
// either.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CharacterRepository is the canon store. Characters are immutable after
// creation: there is deliberately no update method.
type CharacterRepository interface {
	// Create persists a new character definition.
	Create(ctx context.Context, character *models.Character) error
	// GetByID returns the character or models.ErrCharacterNotFound.
	GetByID(ctx context.Context, id string) (*models.Character, error)
	// Delete removes the character definition. Deleting the character's
	// scenes is the caller's job (SceneRepository.DeleteByCharacter), so the
	// deleted scene count can be reported.
	Delete(ctx context.Context, id string) error
}

// SceneRepository is the append-only scene store. Scenes are never mutated
// after creation; they are removed only by cascade when their character is
// deleted.
type SceneRepository interface {
	// Create appends a new scene to its character's chain.
	Create(ctx context.Context, scene *models.Scene) error
	// GetByID returns the scene or models.ErrSceneNotFound.
	GetByID(ctx context.Context, id string) (*models.Scene, error)
	// ListByCharacter returns the character's scenes ordered by sceneNumber
	// ascending. An unknown character yields an empty slice, not an error.
	ListByCharacter(ctx context.Context, characterID string) ([]models.Scene, error)
	// CountByCharacter returns the number of stored scenes for the character.
	// Scene numbers are always derived from this count at creation time.
	CountByCharacter(ctx context.Context, characterID string) (int, error)
	// DeleteByCharacter removes every scene of the character and returns how
	// many were deleted.
	DeleteByCharacter(ctx context.Context, characterID string) (int, error)
}
