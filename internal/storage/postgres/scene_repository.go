package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"chronicle-server/internal/interfaces"
	"chronicle-server/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.SceneRepository = (*pgSceneRepository)(nil)

type pgSceneRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewSceneRepository creates a PostgreSQL-backed SceneRepository.
func NewSceneRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.SceneRepository {
	return &pgSceneRepository{
		db:     db,
		logger: logger.Named("PgSceneRepo"),
	}
}

const createSceneQuery = `
INSERT INTO scenes (id, character_id, scene_number, scene_description, visual_prompt,
                    emotional_state, environment, narrative_summary, edits, previous_scene_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const getSceneByIDQuery = `
SELECT id, character_id, scene_number, scene_description, visual_prompt,
       emotional_state, environment, narrative_summary, edits, previous_scene_id, created_at
FROM scenes
WHERE id = $1`

const listScenesByCharacterQuery = `
SELECT id, character_id, scene_number, scene_description, visual_prompt,
       emotional_state, environment, narrative_summary, edits, previous_scene_id, created_at
FROM scenes
WHERE character_id = $1
ORDER BY scene_number ASC`

const countScenesByCharacterQuery = `
SELECT COUNT(*) FROM scenes WHERE character_id = $1`

const deleteScenesByCharacterQuery = `
DELETE FROM scenes WHERE character_id = $1`

func (r *pgSceneRepository) Create(ctx context.Context, scene *models.Scene) error {
	edits, err := json.Marshal(scene.Edits)
	if err != nil {
		return fmt.Errorf("ошибка сериализации edits: %w", err)
	}

	// В БД пустой previous_scene_id хранится как NULL, а не как "".
	var previousID sql.NullString
	if scene.PreviousSceneID != "" {
		previousID = sql.NullString{String: scene.PreviousSceneID, Valid: true}
	}

	_, err = r.db.Exec(ctx, createSceneQuery,
		scene.ID,
		scene.CharacterID,
		scene.SceneNumber,
		scene.SceneDescription,
		scene.VisualPrompt,
		scene.EmotionalState,
		scene.Environment,
		scene.NarrativeSummary,
		edits,
		previousID,
		scene.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create scene", zap.Error(err),
			zap.String("characterID", scene.CharacterID),
			zap.Int("sceneNumber", scene.SceneNumber))
		return fmt.Errorf("ошибка создания сцены: %w", err)
	}
	r.logger.Info("Scene created", zap.String("sceneID", scene.ID), zap.Int("sceneNumber", scene.SceneNumber))
	return nil
}

func (r *pgSceneRepository) GetByID(ctx context.Context, id string) (*models.Scene, error) {
	scene, err := scanScene(r.db.QueryRow(ctx, getSceneByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSceneNotFound
		}
		r.logger.Error("Failed to get scene", zap.Error(err), zap.String("sceneID", id))
		return nil, fmt.Errorf("ошибка получения сцены: %w", err)
	}
	return scene, nil
}

func (r *pgSceneRepository) ListByCharacter(ctx context.Context, characterID string) ([]models.Scene, error) {
	rows, err := r.db.Query(ctx, listScenesByCharacterQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to list scenes", zap.Error(err), zap.String("characterID", characterID))
		return nil, fmt.Errorf("ошибка получения списка сцен: %w", err)
	}
	defer rows.Close()

	scenes := make([]models.Scene, 0)
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки сцены: %w", err)
		}
		scenes = append(scenes, *scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода строк сцен: %w", err)
	}
	return scenes, nil
}

func (r *pgSceneRepository) CountByCharacter(ctx context.Context, characterID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, countScenesByCharacterQuery, characterID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count scenes", zap.Error(err), zap.String("characterID", characterID))
		return 0, fmt.Errorf("ошибка подсчета сцен: %w", err)
	}
	return count, nil
}

func (r *pgSceneRepository) DeleteByCharacter(ctx context.Context, characterID string) (int, error) {
	tag, err := r.db.Exec(ctx, deleteScenesByCharacterQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to delete scenes", zap.Error(err), zap.String("characterID", characterID))
		return 0, fmt.Errorf("ошибка удаления сцен: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// scanScene reads one scene row; works for both QueryRow and Rows.
func scanScene(row pgx.Row) (*models.Scene, error) {
	scene := &models.Scene{}
	var edits []byte
	var previousID sql.NullString
	err := row.Scan(
		&scene.ID,
		&scene.CharacterID,
		&scene.SceneNumber,
		&scene.SceneDescription,
		&scene.VisualPrompt,
		&scene.EmotionalState,
		&scene.Environment,
		&scene.NarrativeSummary,
		&edits,
		&previousID,
		&scene.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(edits, &scene.Edits); err != nil {
		return nil, fmt.Errorf("ошибка десериализации edits: %w", err)
	}
	if previousID.Valid {
		scene.PreviousSceneID = previousID.String
	}
	return scene, nil
}
