package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"chronicle-server/internal/models"
)

// Parsing of narrative generator responses. The generator is treated as an
// untrusted collaborator: its output is validated structurally (required
// fields present, editType within the closed set, coherent verdict) before
// anything downstream acts on it. Anything that fails these checks surfaces
// as models.ErrGenerationFormat, never as a silent default.

// cleanGenerationResponse очищает ответ от AI от markdown-разметки.
func cleanGenerationResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	cleaned = strings.TrimPrefix(cleaned, "```json\n")
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```\n")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "\n```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	return strings.TrimSpace(cleaned)
}

// scenePayload is the five-field structured response every scene generation
// request asks for.
type scenePayload struct {
	SceneDescription string `json:"sceneDescription"`
	VisualPrompt     string `json:"visualPrompt"`
	EmotionalState   string `json:"emotionalState"`
	Environment      string `json:"environment"`
	NarrativeSummary string `json:"narrativeSummary"`
}

// parseScenePayload parses a generation response into the five expected scene
// fields. Every field must be present and non-empty: an unfilled field (e.g.
// emotional state) is canon-critical state surfaced to the next edit cycle,
// so defaults are never substituted.
func parseScenePayload(response string) (*scenePayload, error) {
	cleaned := cleanGenerationResponse(response)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: пустой ответ", models.ErrGenerationFormat)
	}

	var payload scenePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFormat, err)
	}

	for name, value := range map[string]string{
		"sceneDescription": payload.SceneDescription,
		"visualPrompt":     payload.VisualPrompt,
		"emotionalState":   payload.EmotionalState,
		"environment":      payload.Environment,
		"narrativeSummary": payload.NarrativeSummary,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: отсутствует поле %q", models.ErrGenerationFormat, name)
		}
	}

	return &payload, nil
}

// editAnalysisPayload mirrors the classifier's JSON. Pointer fields
// distinguish "absent" from zero values during validation; change fields may
// legitimately arrive as JSON null.
type editAnalysisPayload struct {
	IsValid         *bool    `json:"isValid"`
	EditType        string   `json:"editType"`
	RejectionReason string   `json:"rejectionReason"`
	Constraints     []string `json:"constraints"`
	Changes         struct {
		EmotionalState    *string `json:"emotionalState"`
		Environment       *string `json:"environment"`
		VisualAdjustments *string `json:"visualAdjustments"`
	} `json:"changes"`
	NarrativeDelta string `json:"narrativeDelta"`
}

// normalizeChange collapses the classifier's ways of saying "unchanged":
// JSON null, empty string and the literal string "null" (the prompt offers
// "new emotion or null", and models emit all three).
func normalizeChange(value *string) string {
	if value == nil {
		return ""
	}
	trimmed := strings.TrimSpace(*value)
	if strings.EqualFold(trimmed, "null") || strings.EqualFold(trimmed, "none") {
		return ""
	}
	return trimmed
}

// parseEditAnalysis parses and structurally validates a classifier response.
// Verdict coherence is enforced here: an invalid verdict must carry a
// rejection reason, a valid verdict cannot be classified "invalid", and the
// editType must belong to the closed set. Violations are format errors — an
// infrastructure fault — not rejections.
func parseEditAnalysis(response string) (*models.EditAnalysis, error) {
	cleaned := cleanGenerationResponse(response)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: пустой ответ", models.ErrGenerationFormat)
	}

	var payload editAnalysisPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFormat, err)
	}

	if payload.IsValid == nil {
		return nil, fmt.Errorf("%w: отсутствует поле %q", models.ErrGenerationFormat, "isValid")
	}

	editType := models.EditType(strings.TrimSpace(payload.EditType))
	if !models.KnownEditType(editType) {
		return nil, fmt.Errorf("%w: неизвестный editType %q", models.ErrGenerationFormat, payload.EditType)
	}

	analysis := &models.EditAnalysis{
		IsValid:         *payload.IsValid,
		EditType:        editType,
		RejectionReason: strings.TrimSpace(payload.RejectionReason),
		Constraints:     payload.Constraints,
		Changes: models.EditChanges{
			EmotionalState:    normalizeChange(payload.Changes.EmotionalState),
			Environment:       normalizeChange(payload.Changes.Environment),
			VisualAdjustments: normalizeChange(payload.Changes.VisualAdjustments),
		},
		NarrativeDelta: strings.TrimSpace(payload.NarrativeDelta),
	}
	if analysis.Constraints == nil {
		analysis.Constraints = []string{}
	}

	if !analysis.IsValid {
		if analysis.RejectionReason == "" {
			return nil, fmt.Errorf("%w: отклонение без rejectionReason", models.ErrGenerationFormat)
		}
		return analysis, nil
	}

	if analysis.EditType == models.EditTypeInvalid {
		return nil, fmt.Errorf("%w: isValid=true при editType=invalid", models.ErrGenerationFormat)
	}
	if analysis.NarrativeDelta == "" {
		return nil, fmt.Errorf("%w: отсутствует поле %q", models.ErrGenerationFormat, "narrativeDelta")
	}

	return analysis, nil
}
