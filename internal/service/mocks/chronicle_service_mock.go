package mocks

import (
	"context"

	"chronicle-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock ChronicleService
type ChronicleService struct {
	mock.Mock
}

func (m *ChronicleService) CreateCharacter(ctx context.Context, create models.CharacterCreate) (*models.Character, *models.Scene, error) {
	args := m.Called(ctx, create)
	character, _ := args.Get(0).(*models.Character)
	scene, _ := args.Get(1).(*models.Scene)
	return character, scene, args.Error(2)
}

func (m *ChronicleService) GetCharacter(ctx context.Context, id string) (*models.Character, error) {
	args := m.Called(ctx, id)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}

func (m *ChronicleService) GetScenes(ctx context.Context, characterID string) ([]models.Scene, error) {
	args := m.Called(ctx, characterID)
	scenes, _ := args.Get(0).([]models.Scene)
	return scenes, args.Error(1)
}

func (m *ChronicleService) SubmitEdit(ctx context.Context, characterID, sceneID, command string) (*models.EditOutcome, error) {
	args := m.Called(ctx, characterID, sceneID, command)
	outcome, _ := args.Get(0).(*models.EditOutcome)
	return outcome, args.Error(1)
}

func (m *ChronicleService) GetRecap(ctx context.Context, characterID string) (string, error) {
	args := m.Called(ctx, characterID)
	return args.String(0), args.Error(1)
}

func (m *ChronicleService) DeleteCharacter(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *ChronicleService) LoadDemoData(ctx context.Context) (*models.Character, []models.Scene, error) {
	args := m.Called(ctx)
	character, _ := args.Get(0).(*models.Character)
	scenes, _ := args.Get(1).([]models.Scene)
	return character, scenes, args.Error(2)
}
