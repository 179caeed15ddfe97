package memory

import (
	"context"
	"sort"
	"sync"

	"chronicle-server/internal/interfaces"
	"chronicle-server/internal/models"

	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.SceneRepository = (*sceneRepository)(nil)

// sceneRepository is the default map-backed scene store.
type sceneRepository struct {
	mu     sync.RWMutex
	scenes map[string]models.Scene
	logger *zap.Logger
}

// NewSceneRepository creates an in-memory SceneRepository.
func NewSceneRepository(logger *zap.Logger) interfaces.SceneRepository {
	return &sceneRepository{
		scenes: make(map[string]models.Scene),
		logger: logger.Named("MemSceneRepo"),
	}
}

func (r *sceneRepository) Create(_ context.Context, scene *models.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scenes[scene.ID] = copyScene(scene)
	r.logger.Debug("Scene stored",
		zap.String("sceneID", scene.ID),
		zap.String("characterID", scene.CharacterID),
		zap.Int("sceneNumber", scene.SceneNumber))
	return nil
}

func (r *sceneRepository) GetByID(_ context.Context, id string) (*models.Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scene, ok := r.scenes[id]
	if !ok {
		return nil, models.ErrSceneNotFound
	}
	s := copyScene(&scene)
	return &s, nil
}

func (r *sceneRepository) ListByCharacter(_ context.Context, characterID string) ([]models.Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenes := make([]models.Scene, 0)
	for _, scene := range r.scenes {
		if scene.CharacterID == characterID {
			scenes = append(scenes, copyScene(&scene))
		}
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].SceneNumber < scenes[j].SceneNumber
	})
	return scenes, nil
}

func (r *sceneRepository) CountByCharacter(_ context.Context, characterID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, scene := range r.scenes {
		if scene.CharacterID == characterID {
			count++
		}
	}
	return count, nil
}

func (r *sceneRepository) DeleteByCharacter(_ context.Context, characterID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, scene := range r.scenes {
		if scene.CharacterID == characterID {
			delete(r.scenes, id)
			deleted++
		}
	}
	r.logger.Debug("Scenes deleted for character",
		zap.String("characterID", characterID),
		zap.Int("deleted", deleted))
	return deleted, nil
}

func copyScene(s *models.Scene) models.Scene {
	cp := *s
	cp.Edits = append([]models.AppliedEdit(nil), s.Edits...)
	return cp
}
