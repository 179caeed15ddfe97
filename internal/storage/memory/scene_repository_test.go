package memory

import (
	"context"
	"errors"
	"testing"

	"chronicle-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedScenes(t *testing.T, repo *sceneRepository) {
	t.Helper()
	ctx := context.Background()

	scenes := []models.Scene{
		{ID: "scene_a2", CharacterID: "char_a", SceneNumber: 2, SceneDescription: "Second.", PreviousSceneID: "scene_a1"},
		{ID: "scene_a1", CharacterID: "char_a", SceneNumber: 1, SceneDescription: "First.", Edits: []models.AppliedEdit{}},
		{ID: "scene_b1", CharacterID: "char_b", SceneNumber: 1, SceneDescription: "Other chain."},
	}
	for i := range scenes {
		require.NoError(t, repo.Create(ctx, &scenes[i]))
	}
}

func TestSceneRepository_ListByCharacterOrdered(t *testing.T) {
	repo := NewSceneRepository(zap.NewNop()).(*sceneRepository)
	seedScenes(t, repo)

	scenes, err := repo.ListByCharacter(context.Background(), "char_a")
	require.NoError(t, err)

	require.Len(t, scenes, 2)
	assert.Equal(t, "scene_a1", scenes[0].ID)
	assert.Equal(t, "scene_a2", scenes[1].ID)
}

func TestSceneRepository_ListUnknownCharacterIsEmpty(t *testing.T) {
	repo := NewSceneRepository(zap.NewNop()).(*sceneRepository)
	seedScenes(t, repo)

	scenes, err := repo.ListByCharacter(context.Background(), "char_unknown")
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestSceneRepository_GetMissing(t *testing.T) {
	repo := NewSceneRepository(zap.NewNop()).(*sceneRepository)

	_, err := repo.GetByID(context.Background(), "scene_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSceneNotFound))
}

func TestSceneRepository_CountByCharacter(t *testing.T) {
	repo := NewSceneRepository(zap.NewNop()).(*sceneRepository)
	seedScenes(t, repo)

	count, err := repo.CountByCharacter(context.Background(), "char_a")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountByCharacter(context.Background(), "char_unknown")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSceneRepository_DeleteByCharacterLeavesOtherChains(t *testing.T) {
	repo := NewSceneRepository(zap.NewNop()).(*sceneRepository)
	seedScenes(t, repo)
	ctx := context.Background()

	deleted, err := repo.DeleteByCharacter(ctx, "char_a")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Чужая цепочка не затронута.
	remaining, err := repo.ListByCharacter(ctx, "char_b")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	_, err = repo.GetByID(ctx, "scene_a1")
	assert.True(t, errors.Is(err, models.ErrSceneNotFound))
}

func TestSceneRepository_ReturnedCopyDoesNotLeakStoredScene(t *testing.T) {
	repo := NewSceneRepository(zap.NewNop()).(*sceneRepository)
	ctx := context.Background()

	scene := &models.Scene{
		ID:          "scene_1",
		CharacterID: "char_a",
		SceneNumber: 1,
		Edits: []models.AppliedEdit{
			{Command: "original", EditType: models.EditTypeEmotionChange},
		},
	}
	require.NoError(t, repo.Create(ctx, scene))

	got, err := repo.GetByID(ctx, "scene_1")
	require.NoError(t, err)
	got.SceneDescription = "mutated"
	got.Edits[0].Command = "mutated"

	fresh, err := repo.GetByID(ctx, "scene_1")
	require.NoError(t, err)
	assert.Empty(t, fresh.SceneDescription)
	assert.Equal(t, "original", fresh.Edits[0].Command)
}
