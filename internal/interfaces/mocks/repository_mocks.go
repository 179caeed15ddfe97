package mocks

import (
	"context"

	"chronicle-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock CharacterRepository
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, character *models.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *CharacterRepository) GetByID(ctx context.Context, id string) (*models.Character, error) {
	args := m.Called(ctx, id)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}

func (m *CharacterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock SceneRepository
type SceneRepository struct {
	mock.Mock
}

func (m *SceneRepository) Create(ctx context.Context, scene *models.Scene) error {
	args := m.Called(ctx, scene)
	return args.Error(0)
}

func (m *SceneRepository) GetByID(ctx context.Context, id string) (*models.Scene, error) {
	args := m.Called(ctx, id)
	scene, _ := args.Get(0).(*models.Scene)
	return scene, args.Error(1)
}

func (m *SceneRepository) ListByCharacter(ctx context.Context, characterID string) ([]models.Scene, error) {
	args := m.Called(ctx, characterID)
	scenes, _ := args.Get(0).([]models.Scene)
	return scenes, args.Error(1)
}

func (m *SceneRepository) CountByCharacter(ctx context.Context, characterID string) (int, error) {
	args := m.Called(ctx, characterID)
	return args.Int(0), args.Error(1)
}

func (m *SceneRepository) DeleteByCharacter(ctx context.Context, characterID string) (int, error) {
	args := m.Called(ctx, characterID)
	return args.Int(0), args.Error(1)
}

// Mock RecapCache
type RecapCache struct {
	mock.Mock
}

func (m *RecapCache) Get(ctx context.Context, characterID string) (string, error) {
	args := m.Called(ctx, characterID)
	return args.String(0), args.Error(1)
}

func (m *RecapCache) Set(ctx context.Context, characterID, recap string) error {
	args := m.Called(ctx, characterID, recap)
	return args.Error(0)
}

func (m *RecapCache) Invalidate(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}
