package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chronicle-server/internal/ai"
	"chronicle-server/internal/interfaces"
	"chronicle-server/internal/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// EmptyRecapText is returned for a character with no scenes, without invoking
// the narrative generator.
const EmptyRecapText = "No scenes yet to generate a recap."

// ChronicleService is the canon-constrained scene evolution pipeline.
type ChronicleService interface {
	// CreateCharacter stores the canon definition and synthesizes the first
	// scene. The operation is atomic: if first-scene generation fails, the
	// character is not left behind.
	CreateCharacter(ctx context.Context, create models.CharacterCreate) (*models.Character, *models.Scene, error)
	GetCharacter(ctx context.Context, id string) (*models.Character, error)
	// GetScenes returns the character's chain ordered by scene number.
	GetScenes(ctx context.Context, characterID string) ([]models.Scene, error)
	// SubmitEdit validates a natural-language command against canon and, if
	// approved, evolves the chain by one scene. A rejection is a terminal,
	// side-effect-free outcome, not an error.
	SubmitEdit(ctx context.Context, characterID, sceneID, command string) (*models.EditOutcome, error)
	GetRecap(ctx context.Context, characterID string) (string, error)
	// DeleteCharacter removes the character and its whole chain, returning
	// the number of deleted scenes.
	DeleteCharacter(ctx context.Context, id string) (int, error)
	// LoadDemoData seeds the built-in demo character and chain.
	LoadDemoData(ctx context.Context) (*models.Character, []models.Scene, error)
}

type chronicleService struct {
	characterRepo interfaces.CharacterRepository
	sceneRepo     interfaces.SceneRepository
	generator     ai.NarrativeClient
	recapCache    interfaces.RecapCache // nil отключает кэширование рекапов
	locks         *characterLocks
	logger        *zap.Logger
}

// NewChronicleService creates the pipeline service. recapCache may be nil to
// disable recap caching.
func NewChronicleService(
	characterRepo interfaces.CharacterRepository,
	sceneRepo interfaces.SceneRepository,
	generator ai.NarrativeClient,
	recapCache interfaces.RecapCache,
	logger *zap.Logger,
) ChronicleService {
	return &chronicleService{
		characterRepo: characterRepo,
		sceneRepo:     sceneRepo,
		generator:     generator,
		recapCache:    recapCache,
		locks:         newCharacterLocks(),
		logger:        logger.Named("ChronicleService"),
	}
}

func newCharacterID() string {
	return "char_" + uuid.NewString()
}

func newSceneID() string {
	return "scene_" + uuid.NewString()
}

func (s *chronicleService) CreateCharacter(ctx context.Context, create models.CharacterCreate) (*models.Character, *models.Scene, error) {
	if strings.TrimSpace(create.Name) == "" {
		return nil, nil, fmt.Errorf("%w: имя персонажа не задано", models.ErrInvalidInput)
	}

	character := &models.Character{
		ID:                  newCharacterID(),
		Name:                create.Name,
		CanonicalAppearance: create.CanonicalAppearance,
		Personality:         create.Personality,
		EmotionalBaseline:   create.EmotionalBaseline,
		ImmutableTraits:     append([]string(nil), create.ImmutableTraits...),
		CreatedAt:           time.Now().UTC(),
	}
	if character.ImmutableTraits == nil {
		character.ImmutableTraits = []string{}
	}

	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(character.ID)
	defer unlock()

	firstScene, err := s.synthesizeFirstScene(ctx, character)
	if err != nil {
		// Откатываем персонажа, чтобы неудачное создание не оставляло следов.
		if delErr := s.characterRepo.Delete(ctx, character.ID); delErr != nil {
			s.logger.Error("Failed to roll back character after generation failure",
				zap.Error(delErr), zap.String("characterID", character.ID))
		}
		return nil, nil, err
	}

	if err := s.sceneRepo.Create(ctx, firstScene); err != nil {
		if delErr := s.characterRepo.Delete(ctx, character.ID); delErr != nil {
			s.logger.Error("Failed to roll back character after scene store failure",
				zap.Error(delErr), zap.String("characterID", character.ID))
		}
		return nil, nil, err
	}

	charactersCreatedTotal.Inc()
	scenesCreatedTotal.With(prometheus.Labels{"kind": "first"}).Inc()
	s.logger.Info("Character created with first scene",
		zap.String("characterID", character.ID),
		zap.String("sceneID", firstScene.ID))

	return character, firstScene, nil
}

// synthesizeFirstScene builds scene number 1 for a new character. The caller
// must hold the character's lock and persist the returned scene.
func (s *chronicleService) synthesizeFirstScene(ctx context.Context, character *models.Character) (*models.Scene, error) {
	prompt := BuildFirstScenePrompt(character)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := parseScenePayload(response)
	if err != nil {
		return nil, err
	}

	return &models.Scene{
		ID:               newSceneID(),
		CharacterID:      character.ID,
		SceneNumber:      1,
		SceneDescription: payload.SceneDescription,
		VisualPrompt:     payload.VisualPrompt,
		EmotionalState:   payload.EmotionalState,
		Environment:      payload.Environment,
		NarrativeSummary: payload.NarrativeSummary,
		Timestamp:        time.Now().UTC(),
		Edits:            []models.AppliedEdit{},
	}, nil
}

func (s *chronicleService) GetCharacter(ctx context.Context, id string) (*models.Character, error) {
	return s.characterRepo.GetByID(ctx, id)
}

func (s *chronicleService) GetScenes(ctx context.Context, characterID string) ([]models.Scene, error) {
	if _, err := s.characterRepo.GetByID(ctx, characterID); err != nil {
		return nil, err
	}
	return s.sceneRepo.ListByCharacter(ctx, characterID)
}

func (s *chronicleService) SubmitEdit(ctx context.Context, characterID, sceneID, command string) (*models.EditOutcome, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("%w: пустая команда редактирования", models.ErrInvalidInput)
	}

	// Вся цепочка validate -> evolve -> store выполняется под локом
	// персонажа: одновременно возможна только одна эволюция на персонажа.
	unlock := s.locks.Lock(characterID)
	defer unlock()

	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}

	currentScene, err := s.sceneRepo.GetByID(ctx, sceneID)
	if err != nil {
		return nil, err
	}
	if currentScene.CharacterID != character.ID {
		return nil, models.ErrSceneNotFound
	}

	count, err := s.sceneRepo.CountByCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	// Цепочка — односвязный список без ветвлений: эволюция от промежуточной
	// сцены дала бы второй хвост. Редактируется только последняя сцена.
	if currentScene.SceneNumber != count {
		return nil, fmt.Errorf("%w: сцена %s не является последней в цепочке", models.ErrInvalidInput, sceneID)
	}

	analysis, err := s.validateEdit(ctx, character, currentScene, command)
	if err != nil {
		return nil, err
	}

	if !analysis.IsValid {
		editVerdictsTotal.With(prometheus.Labels{
			"verdict":   "rejected",
			"edit_type": string(analysis.EditType),
		}).Inc()
		s.logger.Info("Edit rejected",
			zap.String("characterID", characterID),
			zap.String("editType", string(analysis.EditType)),
			zap.String("reason", analysis.RejectionReason))
		return &models.EditOutcome{
			Rejected: true,
			Reason:   analysis.RejectionReason,
			EditType: analysis.EditType,
		}, nil
	}

	newScene, err := s.evolveScene(ctx, character, currentScene, analysis, count+1)
	if err != nil {
		return nil, err
	}

	// Сцена сохраняется только после успешной генерации: частичных сцен в
	// хранилище не бывает.
	if err := s.sceneRepo.Create(ctx, newScene); err != nil {
		return nil, err
	}

	s.invalidateRecap(ctx, characterID)

	editVerdictsTotal.With(prometheus.Labels{
		"verdict":   "accepted",
		"edit_type": string(analysis.EditType),
	}).Inc()
	scenesCreatedTotal.With(prometheus.Labels{"kind": "evolved"}).Inc()
	s.logger.Info("Edit applied",
		zap.String("characterID", characterID),
		zap.String("editType", string(analysis.EditType)),
		zap.String("newSceneID", newScene.ID),
		zap.Int("sceneNumber", newScene.SceneNumber))

	return &models.EditOutcome{
		Rejected:       false,
		EditType:       analysis.EditType,
		NewScene:       newScene,
		NarrativeDelta: analysis.NarrativeDelta,
	}, nil
}

// validateEdit is the trust boundary: the raw command is classified and
// canon-checked as a single combined judgment, and the classifier's output is
// structurally re-validated before anything acts on it.
func (s *chronicleService) validateEdit(ctx context.Context, character *models.Character, currentScene *models.Scene, command string) (*models.EditAnalysis, error) {
	prompt := BuildEditAnalysisPrompt(character, currentScene, command)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseEditAnalysis(response)
}

// evolveScene produces the next scene from the current one and an approved
// analysis. Carry-forward is applied here: missing change fields resolve to
// the current scene's values before generation, and the resolved values win
// over whatever the generator echoes back. The caller verifies currentScene
// is the chain tail, supplies the next scene number and persists the result.
func (s *chronicleService) evolveScene(ctx context.Context, character *models.Character, currentScene *models.Scene, analysis *models.EditAnalysis, sceneNumber int) (*models.Scene, error) {
	emotionalState := analysis.Changes.EmotionalState
	if emotionalState == "" {
		emotionalState = currentScene.EmotionalState
	}
	environment := analysis.Changes.Environment
	if environment == "" {
		environment = currentScene.Environment
	}

	prompt := BuildEvolveScenePrompt(character, currentScene, analysis, emotionalState, environment)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := parseScenePayload(response)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &models.Scene{
		ID:               newSceneID(),
		CharacterID:      character.ID,
		SceneNumber:      sceneNumber,
		SceneDescription: payload.SceneDescription,
		VisualPrompt:     payload.VisualPrompt,
		EmotionalState:   emotionalState,
		Environment:      environment,
		NarrativeSummary: payload.NarrativeSummary,
		Timestamp:        now,
		Edits: []models.AppliedEdit{
			{
				Command:   analysis.NarrativeDelta,
				EditType:  analysis.EditType,
				Timestamp: now,
			},
		},
		PreviousSceneID: currentScene.ID,
	}, nil
}

func (s *chronicleService) GetRecap(ctx context.Context, characterID string) (string, error) {
	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return "", err
	}

	scenes, err := s.sceneRepo.ListByCharacter(ctx, characterID)
	if err != nil {
		return "", err
	}

	// Пустая история — локальный short-circuit, генератор не вызывается.
	if len(scenes) == 0 {
		recapsGeneratedTotal.With(prometheus.Labels{"source": "empty"}).Inc()
		return EmptyRecapText, nil
	}

	if s.recapCache != nil {
		cached, err := s.recapCache.Get(ctx, characterID)
		if err != nil {
			s.logger.Warn("Recap cache read failed", zap.Error(err), zap.String("characterID", characterID))
		} else if cached != "" {
			recapsGeneratedTotal.With(prometheus.Labels{"source": "cached"}).Inc()
			return cached, nil
		}
	}

	prompt := BuildRecapPrompt(character, scenes)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	recap := strings.TrimSpace(response)

	if s.recapCache != nil {
		if err := s.recapCache.Set(ctx, characterID, recap); err != nil {
			s.logger.Warn("Recap cache write failed", zap.Error(err), zap.String("characterID", characterID))
		}
	}

	recapsGeneratedTotal.With(prometheus.Labels{"source": "generated"}).Inc()
	return recap, nil
}

func (s *chronicleService) DeleteCharacter(ctx context.Context, id string) (int, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.characterRepo.GetByID(ctx, id); err != nil {
		return 0, err
	}

	deleted, err := s.sceneRepo.DeleteByCharacter(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.characterRepo.Delete(ctx, id); err != nil {
		return 0, err
	}

	s.invalidateRecap(ctx, id)

	s.logger.Info("Character deleted",
		zap.String("characterID", id),
		zap.Int("deletedScenes", deleted))
	return deleted, nil
}

func (s *chronicleService) invalidateRecap(ctx context.Context, characterID string) {
	if s.recapCache == nil {
		return
	}
	if err := s.recapCache.Invalidate(ctx, characterID); err != nil {
		s.logger.Warn("Recap cache invalidation failed", zap.Error(err), zap.String("characterID", characterID))
	}
}
