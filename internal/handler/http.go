package handler

import (
	"errors"
	"net/http"

	"chronicle-server/internal/models"
	"chronicle-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChronicleHandler обрабатывает HTTP запросы пайплайна сцен.
type ChronicleHandler struct {
	service service.ChronicleService
	logger  *zap.Logger
}

// NewChronicleHandler создает новый ChronicleHandler.
func NewChronicleHandler(s service.ChronicleService, logger *zap.Logger) *ChronicleHandler {
	return &ChronicleHandler{
		service: s,
		logger:  logger.Named("ChronicleHandler"),
	}
}

// RegisterRoutes регистрирует маршруты сервиса.
func (h *ChronicleHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.serviceInfo)

	api := router.Group("/api")
	{
		api.POST("/characters", h.createCharacter)
		api.GET("/characters/:id", h.getCharacter)
		api.GET("/characters/:id/scenes", h.getScenes)
		api.GET("/characters/:id/recap", h.getRecap)
		api.DELETE("/characters/:id", h.deleteCharacter)
		api.POST("/edits", h.submitEdit)
		api.POST("/demo/load", h.loadDemoData)
	}
}

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrCharacterNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Character not found"}
	case errors.Is(err, models.ErrSceneNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Scene not found"}
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrGenerationFormat):
		statusCode = http.StatusBadGateway
		apiErr = APIError{Message: "Narrative generator returned a malformed response"}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusBadGateway
		apiErr = APIError{Message: "Narrative generation failed"}
	default:
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}

	c.JSON(statusCode, apiErr)
}

// isExpectedError отделяет штатные ошибки домена от тех, что стоит логировать
// на уровне Error.
func isExpectedError(err error) bool {
	return errors.Is(err, models.ErrCharacterNotFound) ||
		errors.Is(err, models.ErrSceneNotFound) ||
		errors.Is(err, models.ErrInvalidInput)
}

func (h *ChronicleHandler) serviceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfoResponse{
		Service: "Chronicle API",
		Version: "1.0.0",
		Status:  "operational",
	})
}

func (h *ChronicleHandler) createCharacter(c *gin.Context) {
	var req CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	character, firstScene, err := h.service.CreateCharacter(c.Request.Context(), models.CharacterCreate{
		Name:                req.Name,
		CanonicalAppearance: req.CanonicalAppearance,
		Personality:         req.Personality,
		EmotionalBaseline:   req.EmotionalBaseline,
		ImmutableTraits:     req.ImmutableTraits,
	})
	if err != nil {
		if !isExpectedError(err) {
			h.logger.Error("Error creating character", zap.String("name", req.Name), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateCharacterResponse{
		Character:  character,
		FirstScene: firstScene,
		Message:    "Character created with first scene",
	})
}

func (h *ChronicleHandler) getCharacter(c *gin.Context) {
	id := c.Param("id")

	character, err := h.service.GetCharacter(c.Request.Context(), id)
	if err != nil {
		if !isExpectedError(err) {
			h.logger.Error("Error getting character", zap.String("characterID", id), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, character)
}

func (h *ChronicleHandler) getScenes(c *gin.Context) {
	id := c.Param("id")

	scenes, err := h.service.GetScenes(c.Request.Context(), id)
	if err != nil {
		if !isExpectedError(err) {
			h.logger.Error("Error listing scenes", zap.String("characterID", id), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ScenesResponse{
		Scenes: scenes,
		Count:  len(scenes),
	})
}

func (h *ChronicleHandler) submitEdit(c *gin.Context) {
	var req SubmitEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	outcome, err := h.service.SubmitEdit(c.Request.Context(), req.CharacterID, req.SceneID, req.Command)
	if err != nil {
		if !isExpectedError(err) {
			h.logger.Error("Error submitting edit",
				zap.String("characterID", req.CharacterID),
				zap.String("sceneID", req.SceneID),
				zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}

	// Отклонение канон-проверкой — это успешный ответ, а не ошибка HTTP.
	c.JSON(http.StatusOK, SubmitEditResponse{
		Success:        !outcome.Rejected,
		Rejected:       outcome.Rejected,
		Reason:         outcome.Reason,
		EditType:       outcome.EditType,
		NewScene:       outcome.NewScene,
		NarrativeDelta: outcome.NarrativeDelta,
	})
}

func (h *ChronicleHandler) getRecap(c *gin.Context) {
	id := c.Param("id")

	recap, err := h.service.GetRecap(c.Request.Context(), id)
	if err != nil {
		if !isExpectedError(err) {
			h.logger.Error("Error generating recap", zap.String("characterID", id), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecapResponse{Recap: recap})
}

func (h *ChronicleHandler) deleteCharacter(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.service.DeleteCharacter(c.Request.Context(), id)
	if err != nil {
		if !isExpectedError(err) {
			h.logger.Error("Error deleting character", zap.String("characterID", id), zap.Error(err))
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteCharacterResponse{
		DeletedSceneCount: deleted,
		Message:           "Character and scenes deleted",
	})
}

func (h *ChronicleHandler) loadDemoData(c *gin.Context) {
	character, scenes, err := h.service.LoadDemoData(c.Request.Context())
	if err != nil {
		h.logger.Error("Error loading demo data", zap.Error(err))
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DemoDataResponse{
		Character: character,
		Scenes:    scenes,
		Message:   "Demo data loaded successfully",
	})
}
