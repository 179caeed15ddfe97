package handler

import "chronicle-server/internal/models"

// APIError представляет стандартизированный ответ об ошибке.
type APIError struct {
	Message string `json:"message"`
}

// CreateCharacterRequest определяет тело запроса на создание персонажа.
type CreateCharacterRequest struct {
	Name                string   `json:"name" binding:"required"`
	CanonicalAppearance string   `json:"canonicalAppearance" binding:"required"`
	Personality         string   `json:"personality" binding:"required"`
	EmotionalBaseline   string   `json:"emotionalBaseline" binding:"required"`
	ImmutableTraits     []string `json:"immutableTraits"`
}

// CreateCharacterResponse возвращает персонажа вместе с первой сценой.
type CreateCharacterResponse struct {
	Character  *models.Character `json:"character"`
	FirstScene *models.Scene     `json:"firstScene"`
	Message    string            `json:"message"`
}

// ScenesResponse возвращает цепочку сцен персонажа по порядку.
type ScenesResponse struct {
	Scenes []models.Scene `json:"scenes"`
	Count  int            `json:"count"`
}

// SubmitEditRequest определяет тело запроса на редактирование сцены.
type SubmitEditRequest struct {
	CharacterID string `json:"characterId" binding:"required"`
	SceneID     string `json:"sceneId" binding:"required"`
	Command     string `json:"command" binding:"required"`
}

// SubmitEditResponse описывает итог редактирования: либо отклонение с
// причиной, либо новая сцена.
type SubmitEditResponse struct {
	Success        bool            `json:"success"`
	Rejected       bool            `json:"rejected"`
	Reason         string          `json:"reason,omitempty"`
	EditType       models.EditType `json:"editType"`
	NewScene       *models.Scene   `json:"newScene,omitempty"`
	NarrativeDelta string          `json:"narrativeDelta,omitempty"`
}

// RecapResponse возвращает сгенерированный рекап истории персонажа.
type RecapResponse struct {
	Recap string `json:"recap"`
}

// DeleteCharacterResponse возвращает число удаленных сцен.
type DeleteCharacterResponse struct {
	DeletedSceneCount int    `json:"deletedSceneCount"`
	Message           string `json:"message"`
}

// DemoDataResponse возвращает загруженные демо-данные.
type DemoDataResponse struct {
	Character *models.Character `json:"character"`
	Scenes    []models.Scene    `json:"scenes"`
	Message   string            `json:"message"`
}

// ServiceInfoResponse описывает сервис на корневом эндпоинте.
type ServiceInfoResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
