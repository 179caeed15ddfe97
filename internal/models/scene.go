package models

import "time"

// Scene is one narrative snapshot of a character. Scenes form a simple
// forward chain per character: PreviousSceneID is empty for scene number 1
// and otherwise points at the scene this one evolved from.
type Scene struct {
	ID               string        `json:"id"`
	CharacterID      string        `json:"characterId"`
	SceneNumber      int           `json:"sceneNumber"`
	SceneDescription string        `json:"sceneDescription"`
	VisualPrompt     string        `json:"visualPrompt"`
	EmotionalState   string        `json:"emotionalState"`
	Environment      string        `json:"environment"`
	NarrativeSummary string        `json:"narrativeSummary"`
	Timestamp        time.Time     `json:"timestamp"`
	// Edits is empty for the first scene of a chain; an evolved scene carries
	// exactly one record describing the edit that produced it.
	Edits           []AppliedEdit `json:"edits"`
	PreviousSceneID string        `json:"previousSceneId,omitempty"`
}

// AppliedEdit records the edit that produced a scene.
type AppliedEdit struct {
	// Command holds the narrative delta derived from the user command, not
	// the raw command text.
	Command   string    `json:"command"`
	EditType  EditType  `json:"editType"`
	Timestamp time.Time `json:"timestamp"`
}

// IsFirst reports whether the scene is the head of its character's chain.
func (s *Scene) IsFirst() bool {
	return s.PreviousSceneID == ""
}
