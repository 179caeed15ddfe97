package service

import (
	"context"
	"errors"
	"time"

	"chronicle-server/internal/models"

	"go.uber.org/zap"
)

const demoCharacterID = "char_demo"

func demoFixtures(now time.Time) (*models.Character, []models.Scene) {
	character := &models.Character{
		ID:                  demoCharacterID,
		Name:                "Maya Chen",
		CanonicalAppearance: "Short black hair with silver streaks, sharp brown eyes, wears a worn leather jacket, has a small scar above her left eyebrow",
		Personality:         "Brilliant but haunted detective, driven by unsolved cases, struggles with trust, fiercely protective of the innocent",
		EmotionalBaseline:   "Guarded determination",
		ImmutableTraits:     []string{"brown eyes", "scar above left eyebrow", "leather jacket", "detective nature"},
		CreatedAt:           now,
	}

	scenes := []models.Scene{
		{
			ID:               "scene_demo_1",
			CharacterID:      demoCharacterID,
			SceneNumber:      1,
			SceneDescription: "Maya sits in her cluttered office, surrounded by case files and cold coffee cups. The late afternoon sun streams through dusty blinds, casting long shadows across photographs pinned to her wall.",
			VisualPrompt:     "Detective woman, short black hair with silver streaks, sharp brown eyes, small scar above left eyebrow, worn leather jacket, sitting at messy desk covered in case files, late afternoon lighting through venetian blinds, noir atmosphere",
			EmotionalState:   "focused",
			Environment:      "cluttered detective office at dusk",
			NarrativeSummary: "Maya reviews the evidence for the hundredth time, searching for the pattern everyone else missed.",
			Timestamp:        now,
			Edits:            []models.AppliedEdit{},
		},
		{
			ID:               "scene_demo_2",
			CharacterID:      demoCharacterID,
			SceneNumber:      2,
			SceneDescription: "A sudden realization crosses Maya's face as she notices something in the photographs. Her brown eyes widen, and she leans forward urgently, fingers tracing connections only she can see.",
			VisualPrompt:     "Same detective woman, brown eyes wide with realization, leaning over desk urgently, photographs spread out, dramatic lighting highlighting her scar, leather jacket partially open, moment of breakthrough",
			EmotionalState:   "breakthrough excitement",
			Environment:      "same office, now in early evening",
			NarrativeSummary: "The pattern finally reveals itself - she knows where to look next.",
			Timestamp:        now,
			Edits: []models.AppliedEdit{
				{Command: "She realizes something important", EditType: models.EditTypeEmotionChange, Timestamp: now},
			},
			PreviousSceneID: "scene_demo_1",
		},
		{
			ID:               "scene_demo_3",
			CharacterID:      demoCharacterID,
			SceneNumber:      3,
			SceneDescription: "Maya stands on a rain-soaked street corner at night, her leather jacket glistening with moisture. The neon signs reflect in puddles around her feet as she watches a building across the street, her expression tense and alert.",
			VisualPrompt:     "Detective woman, short black hair wet from rain, brown eyes vigilant, scar visible, leather jacket wet and reflecting neon lights, standing in rain on city street at night, cyberpunk noir aesthetic",
			EmotionalState:   "vigilant tension",
			Environment:      "rainy city street at night",
			NarrativeSummary: "She's close now - the suspect is inside. Years of hunting led to this moment.",
			Timestamp:        now,
			Edits: []models.AppliedEdit{
				{Command: "Move the scene to a rainy street at night", EditType: models.EditTypeEnvironmentChange, Timestamp: now},
			},
			PreviousSceneID: "scene_demo_2",
		},
		{
			ID:               "scene_demo_4",
			CharacterID:      demoCharacterID,
			SceneNumber:      4,
			SceneDescription: "Exhaustion shows on Maya's face as she leans against a brick wall in an alley. Dark circles shadow her eyes, her hair disheveled, jacket dirt-stained. But her brown eyes still burn with determination despite the fatigue.",
			VisualPrompt:     "Tired detective woman, short black hair messy, brown eyes with dark circles but still determined, visible scar, dirty worn leather jacket, leaning against brick wall in alley, harsh overhead light",
			EmotionalState:   "exhausted but resolute",
			Environment:      "dark alley, early morning",
			NarrativeSummary: "The chase has taken its toll, but Maya won't stop - she never does.",
			Timestamp:        now,
			Edits: []models.AppliedEdit{
				{Command: "Make her look exhausted and worn down", EditType: models.EditTypeVisualAdjustment, Timestamp: now},
			},
			PreviousSceneID: "scene_demo_3",
		},
	}

	return character, scenes
}

// LoadDemoData seeds the built-in Maya Chen character with a four-scene chain.
// Repeated calls replace the previous demo data.
func (s *chronicleService) LoadDemoData(ctx context.Context) (*models.Character, []models.Scene, error) {
	unlock := s.locks.Lock(demoCharacterID)
	defer unlock()

	// Предыдущая демо-цепочка вычищается, чтобы загрузка была идемпотентной.
	if _, err := s.characterRepo.GetByID(ctx, demoCharacterID); err == nil {
		if _, err := s.sceneRepo.DeleteByCharacter(ctx, demoCharacterID); err != nil {
			return nil, nil, err
		}
		if err := s.characterRepo.Delete(ctx, demoCharacterID); err != nil {
			return nil, nil, err
		}
	} else if !errors.Is(err, models.ErrCharacterNotFound) {
		return nil, nil, err
	}

	character, scenes := demoFixtures(time.Now().UTC())

	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, nil, err
	}
	for i := range scenes {
		if err := s.sceneRepo.Create(ctx, &scenes[i]); err != nil {
			return nil, nil, err
		}
	}

	s.invalidateRecap(ctx, demoCharacterID)
	s.logger.Info("Demo data loaded", zap.Int("scenes", len(scenes)))
	return character, scenes, nil
}
