package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"chronicle-server/internal/models"
)

// Prompt builders for the narrative generation collaborator. Canon fields are
// embedded verbatim; every prompt that expects structured output restates the
// exact JSON shape so responses can be validated strictly on the way back.

const firstScenePromptTemplate = `You are the Scene Orchestrator for Chronicle, a character story engine.

CHARACTER CANON (IMMUTABLE):
Name: %s
Appearance: %s
Personality: %s
Emotional Baseline: %s
Immutable Traits: %s

Generate the FIRST SCENE introducing this character. Respond ONLY with valid JSON (no markdown, no code blocks):

{
  "sceneDescription": "2-3 sentences describing the scene",
  "visualPrompt": "Detailed image generation prompt maintaining canonical appearance",
  "emotionalState": "current emotion",
  "environment": "location description",
  "narrativeSummary": "what's happening in this moment"
}

Be creative but STRICTLY honor the character canon. Output ONLY the JSON object, nothing else.`

// BuildFirstScenePrompt builds the generation request for a new character's
// introductory scene. All canon fields go in verbatim.
func BuildFirstScenePrompt(character *models.Character) string {
	return fmt.Sprintf(firstScenePromptTemplate,
		character.Name,
		character.CanonicalAppearance,
		character.Personality,
		character.EmotionalBaseline,
		strings.Join(character.ImmutableTraits, ", "),
	)
}

const editAnalysisPromptTemplate = `You are the Edit Parser for Chronicle. Analyze this edit command.

CHARACTER CANON (IMMUTABLE):
Name: %s
Appearance: %s
Personality: %s
Immutable Traits: %s

CURRENT SCENE:
%s
Emotional State: %s
Environment: %s

USER EDIT COMMAND: "%s"

Respond ONLY with valid JSON (no markdown, no code blocks):

{
  "isValid": true or false,
  "editType": "emotion_change" or "environment_change" or "new_scene" or "visual_adjustment" or "invalid",
  "rejectionReason": "why this violates canon (only if invalid)",
  "constraints": ["trait1", "trait2"],
  "changes": {
    "emotionalState": "new emotion or null",
    "environment": "new environment or null",
    "visualAdjustments": "changes to appearance/lighting/pose"
  },
  "narrativeDelta": "what changed in the story"
}

REJECT edits that:
- Change immutable traits (%s)
- Violate core personality
- Contradict canonical appearance

Output ONLY the JSON object, nothing else.`

// BuildEditAnalysisPrompt builds the combined classify-and-canon-check request
// for a raw edit command against the character's canon and the current scene.
func BuildEditAnalysisPrompt(character *models.Character, scene *models.Scene, command string) string {
	traits := strings.Join(character.ImmutableTraits, ", ")
	return fmt.Sprintf(editAnalysisPromptTemplate,
		character.Name,
		character.CanonicalAppearance,
		character.Personality,
		traits,
		scene.SceneDescription,
		scene.EmotionalState,
		scene.Environment,
		command,
		traits,
	)
}

const evolveScenePromptTemplate = `Apply this edit to create an EVOLVED scene (not a reset).

CHARACTER CANON: %s - %s

PREVIOUS SCENE:
%s

APPROVED CHANGES:
%s

Narrative Delta: %s

Respond ONLY with valid JSON for the UPDATED scene (no markdown, no code blocks):

{
  "sceneDescription": "evolved 2-3 sentences",
  "visualPrompt": "updated visual maintaining character canon",
  "emotionalState": "%s",
  "environment": "%s",
  "narrativeSummary": "what changed"
}

Output ONLY the JSON object, nothing else.`

// BuildEvolveScenePrompt builds the continuation request for an approved edit.
// Deliberately only name and canonical appearance go in, not the full canon:
// appearance continuity matters most here. emotionalState and environment are
// the already-resolved effective values (approved change or carry-forward),
// resolved by the caller, never left to the generator.
func BuildEvolveScenePrompt(character *models.Character, scene *models.Scene, analysis *models.EditAnalysis, emotionalState, environment string) string {
	changesJSON, err := json.MarshalIndent(analysis.Changes, "", "  ")
	if err != nil {
		changesJSON = []byte("{}")
	}
	return fmt.Sprintf(evolveScenePromptTemplate,
		character.Name,
		character.CanonicalAppearance,
		scene.SceneDescription,
		string(changesJSON),
		analysis.NarrativeDelta,
		emotionalState,
		environment,
	)
}

const recapPromptTemplate = `Generate a memory recap for this character's journey.

CHARACTER: %s
SCENES: %d

Journey:
%s

Provide a 3-sentence narrative summary of the character's emotional and physical journey.`

// BuildRecapPrompt folds the scene chain into a numbered journey transcript.
// Scenes are sorted by scene number here, in chain order — creation timestamps
// may diverge from chain order under retries.
func BuildRecapPrompt(character *models.Character, scenes []models.Scene) string {
	sorted := append([]models.Scene(nil), scenes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SceneNumber < sorted[j].SceneNumber
	})

	lines := make([]string, 0, len(sorted))
	for _, s := range sorted {
		lines = append(lines, fmt.Sprintf("Scene %d: %s", s.SceneNumber, s.SceneDescription))
	}

	return fmt.Sprintf(recapPromptTemplate,
		character.Name,
		len(sorted),
		strings.Join(lines, "\n"),
	)
}
