package models

// EditType classifies a natural-language edit command. The set is closed:
// anything outside it coming back from the narrative generator is treated as
// a malformed response, never trusted.
type EditType string

const (
	EditTypeEmotionChange     EditType = "emotion_change"
	EditTypeEnvironmentChange EditType = "environment_change"
	EditTypeNewScene          EditType = "new_scene"
	EditTypeVisualAdjustment  EditType = "visual_adjustment"
	EditTypeInvalid           EditType = "invalid"
)

// KnownEditType reports whether t belongs to the closed classification set.
func KnownEditType(t EditType) bool {
	switch t {
	case EditTypeEmotionChange, EditTypeEnvironmentChange, EditTypeNewScene,
		EditTypeVisualAdjustment, EditTypeInvalid:
		return true
	}
	return false
}

// EditChanges are the structured mutations proposed by an approved edit.
// An empty field means "carry forward the current scene's value", not
// "clear it" — an edit cannot set emotional state or environment to empty.
type EditChanges struct {
	EmotionalState    string `json:"emotionalState,omitempty"`
	Environment       string `json:"environment,omitempty"`
	VisualAdjustments string `json:"visualAdjustments,omitempty"`
}

// EditAnalysis is the validator's verdict on a single edit command. It is a
// request-scoped value and is never persisted.
type EditAnalysis struct {
	IsValid         bool        `json:"isValid"`
	EditType        EditType    `json:"editType"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	// Constraints lists the immutable traits the check considered.
	Constraints    []string    `json:"constraints"`
	Changes        EditChanges `json:"changes"`
	NarrativeDelta string      `json:"narrativeDelta"`
}

// EditOutcome is the terminal result of submitting an edit. A canon rejection
// is a legitimate business outcome, not an error: Rejected=true means the
// edit was understood and refused, and the scene chain was not touched.
type EditOutcome struct {
	Rejected       bool
	Reason         string
	EditType       EditType
	NewScene       *Scene
	NarrativeDelta string
}
