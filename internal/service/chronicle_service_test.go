package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	aimocks "chronicle-server/internal/ai/mocks"
	"chronicle-server/internal/interfaces/mocks"
	"chronicle-server/internal/models"
	"chronicle-server/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(charRepo *mocks.CharacterRepository, sceneRepo *mocks.SceneRepository, generator *aimocks.NarrativeClient, cache *mocks.RecapCache) ChronicleService {
	// Типизированный nil в интерфейсе перестал бы быть nil, поэтому ветвимся.
	if cache == nil {
		return NewChronicleService(charRepo, sceneRepo, generator, nil, zap.NewNop())
	}
	return NewChronicleService(charRepo, sceneRepo, generator, cache, zap.NewNop())
}

func testCharacter() *models.Character {
	return &models.Character{
		ID:                  "char_test",
		Name:                "Maya Chen",
		CanonicalAppearance: "Short black hair, sharp brown eyes",
		Personality:         "Brilliant but haunted detective",
		EmotionalBaseline:   "Guarded determination",
		ImmutableTraits:     []string{"brown eyes", "leather jacket"},
		CreatedAt:           time.Now().UTC(),
	}
}

func testScene(character *models.Character) *models.Scene {
	return &models.Scene{
		ID:               "scene_test",
		CharacterID:      character.ID,
		SceneNumber:      1,
		SceneDescription: "Maya sits in her cluttered office.",
		VisualPrompt:     "Detective woman at a messy desk",
		EmotionalState:   "focused",
		Environment:      "cluttered detective office at dusk",
		NarrativeSummary: "Maya reviews the evidence.",
		Timestamp:        time.Now().UTC(),
		Edits:            []models.AppliedEdit{},
	}
}

const firstSceneResponse = `{
	"sceneDescription": "Maya sits in her cluttered office.",
	"visualPrompt": "Detective woman at a messy desk",
	"emotionalState": "focused",
	"environment": "cluttered detective office at dusk",
	"narrativeSummary": "Maya reviews the evidence."
}`

func TestCreateCharacter_Success(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	charRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Character")).Return(nil).Once()
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Name: Maya Chen")
	})).Return(firstSceneResponse, nil).Once()
	sceneRepo.On("Create", mock.Anything, mock.MatchedBy(func(scene *models.Scene) bool {
		return scene.SceneNumber == 1 && scene.PreviousSceneID == "" && len(scene.Edits) == 0
	})).Return(nil).Once()

	character, firstScene, err := svc.CreateCharacter(context.Background(), models.CharacterCreate{
		Name:                "Maya Chen",
		CanonicalAppearance: "Short black hair, sharp brown eyes",
		Personality:         "Brilliant but haunted detective",
		EmotionalBaseline:   "Guarded determination",
		ImmutableTraits:     []string{"brown eyes"},
	})

	require.NoError(t, err)
	require.NotNil(t, character)
	require.NotNil(t, firstScene)
	assert.True(t, strings.HasPrefix(character.ID, "char_"))
	assert.True(t, strings.HasPrefix(firstScene.ID, "scene_"))
	assert.Equal(t, character.ID, firstScene.CharacterID)
	assert.Equal(t, "focused", firstScene.EmotionalState)
	assert.True(t, firstScene.IsFirst())

	charRepo.AssertExpectations(t)
	sceneRepo.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestCreateCharacter_EmptyName(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	_, _, err := svc.CreateCharacter(context.Background(), models.CharacterCreate{Name: "   "})

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	charRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCharacter_RollsBackOnMalformedGeneration(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	charRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything).Return("not json at all", nil).Once()
	charRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	_, _, err := svc.CreateCharacter(context.Background(), models.CharacterCreate{
		Name:                "Maya Chen",
		CanonicalAppearance: "Short black hair",
		Personality:         "Detective",
		EmotionalBaseline:   "Guarded",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationFormat))
	sceneRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	charRepo.AssertExpectations(t)
}

func TestCreateCharacter_RollsBackOnGenerationFailure(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	genErr := models.ErrGenerationFailed
	charRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything).Return("", genErr).Once()
	charRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	_, _, err := svc.CreateCharacter(context.Background(), models.CharacterCreate{
		Name:                "Maya Chen",
		CanonicalAppearance: "Short black hair",
		Personality:         "Detective",
		EmotionalBaseline:   "Guarded",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationFailed))
	charRepo.AssertExpectations(t)
}

func TestSubmitEdit_EmptyCommand(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	_, err := svc.SubmitEdit(context.Background(), "char_test", "scene_test", "  ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSubmitEdit_SceneBelongsToOtherCharacter(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	character := testCharacter()
	foreignScene := testScene(character)
	foreignScene.CharacterID = "char_other"

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("GetByID", mock.Anything, foreignScene.ID).Return(foreignScene, nil).Once()

	_, err := svc.SubmitEdit(context.Background(), character.ID, foreignScene.ID, "Make her smile")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSceneNotFound))
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSubmitEdit_NonTailSceneRefused(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	character := testCharacter()
	scene := testScene(character) // sceneNumber 1, но в цепочке уже 3 сцены

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("GetByID", mock.Anything, scene.ID).Return(scene, nil).Once()
	sceneRepo.On("CountByCharacter", mock.Anything, character.ID).Return(3, nil).Once()

	_, err := svc.SubmitEdit(context.Background(), character.ID, scene.ID, "Make her smile")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	sceneRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitEdit_RepeatedEditOfSameSceneDoesNotForkChain(t *testing.T) {
	charRepo := memory.NewCharacterRepository(zap.NewNop())
	sceneRepo := memory.NewSceneRepository(zap.NewNop())
	generator := new(aimocks.NarrativeClient)
	svc := NewChronicleService(charRepo, sceneRepo, generator, nil, zap.NewNop())
	ctx := context.Background()

	character := testCharacter()
	require.NoError(t, charRepo.Create(ctx, character))
	scene1 := testScene(character)
	require.NoError(t, sceneRepo.Create(ctx, scene1))

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "USER EDIT COMMAND")
	})).Return(`{
		"isValid": true,
		"editType": "emotion_change",
		"constraints": [],
		"changes": {"emotionalState": "furious"},
		"narrativeDelta": "Anger takes over."
	}`, nil).Once()
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "APPROVED CHANGES")
	})).Return(firstSceneResponse, nil).Once()

	outcome, err := svc.SubmitEdit(ctx, character.ID, scene1.ID, "Make her furious")
	require.NoError(t, err)
	require.False(t, outcome.Rejected)

	// Хвост цепочки теперь сцена 2; повторное редактирование сцены 1 создало
	// бы развилку и должно быть отвергнуто без обращения к генератору.
	_, err = svc.SubmitEdit(ctx, character.ID, scene1.ID, "Move her outside")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	scenes, err := sceneRepo.ListByCharacter(ctx, character.ID)
	require.NoError(t, err)
	require.Len(t, scenes, 2)

	children := 0
	for _, s := range scenes {
		if s.PreviousSceneID == scene1.ID {
			children++
		}
	}
	assert.Equal(t, 1, children)
	generator.AssertNumberOfCalls(t, "Generate", 2)
}

func TestSubmitEdit_RejectedIsSideEffectFree(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	cache := new(mocks.RecapCache)
	svc := newTestService(charRepo, sceneRepo, generator, cache)

	character := testCharacter()
	scene := testScene(character)

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("GetByID", mock.Anything, scene.ID).Return(scene, nil).Once()
	sceneRepo.On("CountByCharacter", mock.Anything, character.ID).Return(1, nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything).Return(`{
		"isValid": false,
		"editType": "invalid",
		"rejectionReason": "Changing eye color violates an immutable trait",
		"constraints": ["brown eyes"],
		"changes": {},
		"narrativeDelta": ""
	}`, nil).Once()

	outcome, err := svc.SubmitEdit(context.Background(), character.ID, scene.ID, "Change her eyes to blue")

	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Rejected)
	assert.Equal(t, "Changing eye color violates an immutable trait", outcome.Reason)
	assert.Nil(t, outcome.NewScene)

	// Отклонение не трогает ни хранилище, ни кэш.
	sceneRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	generator.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSubmitEdit_AcceptedEnvironmentChangeCarriesEmotionForward(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	cache := new(mocks.RecapCache)
	svc := newTestService(charRepo, sceneRepo, generator, cache)

	character := testCharacter()
	scene := testScene(character)

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("GetByID", mock.Anything, scene.ID).Return(scene, nil).Once()

	analysisResponse := `{
		"isValid": true,
		"editType": "environment_change",
		"constraints": ["brown eyes"],
		"changes": {
			"emotionalState": null,
			"environment": "rainy street at night"
		},
		"narrativeDelta": "Maya steps out into the rain."
	}`
	// Генератор подменяет emotionalState — разрешенное значение должно победить.
	evolveResponse := `{
		"sceneDescription": "Maya stands in the rain.",
		"visualPrompt": "Detective woman in the rain",
		"emotionalState": "cheerful",
		"environment": "a sunny beach",
		"narrativeSummary": "Maya follows the lead outside."
	}`

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "USER EDIT COMMAND")
	})).Return(analysisResponse, nil).Once()
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "APPROVED CHANGES")
	})).Return(evolveResponse, nil).Once()

	sceneRepo.On("CountByCharacter", mock.Anything, character.ID).Return(1, nil).Once()
	sceneRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Scene")).Return(nil).Once()
	cache.On("Invalidate", mock.Anything, character.ID).Return(nil).Once()

	outcome, err := svc.SubmitEdit(context.Background(), character.ID, scene.ID, "Move the scene to a rainy street at night")

	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Rejected)
	assert.Equal(t, models.EditTypeEnvironmentChange, outcome.EditType)
	assert.Equal(t, "Maya steps out into the rain.", outcome.NarrativeDelta)

	newScene := outcome.NewScene
	require.NotNil(t, newScene)
	assert.Equal(t, 2, newScene.SceneNumber)
	assert.Equal(t, scene.ID, newScene.PreviousSceneID)
	// Carry-forward: эмоция не менялась, берется из предыдущей сцены,
	// окружение — из одобренного изменения, а не из ответа генератора.
	assert.Equal(t, "focused", newScene.EmotionalState)
	assert.Equal(t, "rainy street at night", newScene.Environment)
	require.Len(t, newScene.Edits, 1)
	assert.Equal(t, models.EditTypeEnvironmentChange, newScene.Edits[0].EditType)
	assert.Equal(t, "Maya steps out into the rain.", newScene.Edits[0].Command)

	charRepo.AssertExpectations(t)
	sceneRepo.AssertExpectations(t)
	generator.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSubmitEdit_MalformedEvolutionLeavesStoreUntouched(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	character := testCharacter()
	scene := testScene(character)

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("GetByID", mock.Anything, scene.ID).Return(scene, nil).Once()
	sceneRepo.On("CountByCharacter", mock.Anything, character.ID).Return(1, nil).Once()

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "USER EDIT COMMAND")
	})).Return(`{
		"isValid": true,
		"editType": "emotion_change",
		"constraints": [],
		"changes": {"emotionalState": "furious"},
		"narrativeDelta": "Anger takes over."
	}`, nil).Once()
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "APPROVED CHANGES")
	})).Return(`{"sceneDescription": "incomplete"}`, nil).Once()

	_, err := svc.SubmitEdit(context.Background(), character.ID, scene.ID, "Make her furious")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGenerationFormat))
	sceneRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetScenes_CharacterNotFound(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	charRepo.On("GetByID", mock.Anything, "char_missing").Return(nil, models.ErrCharacterNotFound).Once()

	_, err := svc.GetScenes(context.Background(), "char_missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrCharacterNotFound))
	sceneRepo.AssertNotCalled(t, "ListByCharacter", mock.Anything, mock.Anything)
}

func TestGetRecap_EmptyHistorySkipsGenerator(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	character := testCharacter()
	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("ListByCharacter", mock.Anything, character.ID).Return([]models.Scene{}, nil).Once()

	recap, err := svc.GetRecap(context.Background(), character.ID)

	require.NoError(t, err)
	assert.Equal(t, EmptyRecapText, recap)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGetRecap_CacheHitSkipsGenerator(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	cache := new(mocks.RecapCache)
	svc := newTestService(charRepo, sceneRepo, generator, cache)

	character := testCharacter()
	scene := testScene(character)

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("ListByCharacter", mock.Anything, character.ID).Return([]models.Scene{*scene}, nil).Once()
	cache.On("Get", mock.Anything, character.ID).Return("Maya's journey so far.", nil).Once()

	recap, err := svc.GetRecap(context.Background(), character.ID)

	require.NoError(t, err)
	assert.Equal(t, "Maya's journey so far.", recap)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestGetRecap_GeneratesAndCaches(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	cache := new(mocks.RecapCache)
	svc := newTestService(charRepo, sceneRepo, generator, cache)

	character := testCharacter()
	scene := testScene(character)

	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("ListByCharacter", mock.Anything, character.ID).Return([]models.Scene{*scene}, nil).Once()
	cache.On("Get", mock.Anything, character.ID).Return("", nil).Once()
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Scene 1: Maya sits in her cluttered office.")
	})).Return("  Maya began her hunt in a cluttered office.  ", nil).Once()
	cache.On("Set", mock.Anything, character.ID, "Maya began her hunt in a cluttered office.").Return(nil).Once()

	recap, err := svc.GetRecap(context.Background(), character.ID)

	require.NoError(t, err)
	assert.Equal(t, "Maya began her hunt in a cluttered office.", recap)
	cache.AssertExpectations(t)
}

func TestDeleteCharacter_CascadesAndReportsCount(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	cache := new(mocks.RecapCache)
	svc := newTestService(charRepo, sceneRepo, generator, cache)

	character := testCharacter()
	charRepo.On("GetByID", mock.Anything, character.ID).Return(character, nil).Once()
	sceneRepo.On("DeleteByCharacter", mock.Anything, character.ID).Return(4, nil).Once()
	charRepo.On("Delete", mock.Anything, character.ID).Return(nil).Once()
	cache.On("Invalidate", mock.Anything, character.ID).Return(nil).Once()

	deleted, err := svc.DeleteCharacter(context.Background(), character.ID)

	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
	charRepo.AssertExpectations(t)
	sceneRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestDeleteCharacter_NotFound(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	charRepo.On("GetByID", mock.Anything, "char_missing").Return(nil, models.ErrCharacterNotFound).Once()

	_, err := svc.DeleteCharacter(context.Background(), "char_missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrCharacterNotFound))
	sceneRepo.AssertNotCalled(t, "DeleteByCharacter", mock.Anything, mock.Anything)
}

func TestLoadDemoData_SeedsCharacterAndScenes(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	charRepo.On("GetByID", mock.Anything, "char_demo").Return(nil, models.ErrCharacterNotFound).Once()
	charRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Character) bool {
		return c.ID == "char_demo" && c.Name == "Maya Chen"
	})).Return(nil).Once()
	sceneRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Scene")).Return(nil).Times(4)

	character, scenes, err := svc.LoadDemoData(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "char_demo", character.ID)
	require.Len(t, scenes, 4)
	assert.Equal(t, "scene_demo_1", scenes[0].ID)
	assert.Equal(t, "scene_demo_2", scenes[1].ID)
	assert.Equal(t, "scene_demo_1", scenes[1].PreviousSceneID)
	assert.Equal(t, 4, scenes[3].SceneNumber)
	// Демо-цепочка не обращается к генератору.
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	charRepo.AssertExpectations(t)
	sceneRepo.AssertExpectations(t)
}

func TestLoadDemoData_ReplacesExistingDemo(t *testing.T) {
	charRepo := new(mocks.CharacterRepository)
	sceneRepo := new(mocks.SceneRepository)
	generator := new(aimocks.NarrativeClient)
	svc := newTestService(charRepo, sceneRepo, generator, nil)

	existing := testCharacter()
	existing.ID = "char_demo"

	charRepo.On("GetByID", mock.Anything, "char_demo").Return(existing, nil).Once()
	sceneRepo.On("DeleteByCharacter", mock.Anything, "char_demo").Return(4, nil).Once()
	charRepo.On("Delete", mock.Anything, "char_demo").Return(nil).Once()
	charRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Character")).Return(nil).Once()
	sceneRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Scene")).Return(nil).Times(4)

	_, scenes, err := svc.LoadDemoData(context.Background())

	require.NoError(t, err)
	assert.Len(t, scenes, 4)
	charRepo.AssertExpectations(t)
	sceneRepo.AssertExpectations(t)
}
