package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivial-api/internal/handler/dto"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
	"github.com/yourusername/trivial-api/internal/service"
)

// RoundHandler обрабатывает запросы, связанные с раундами
type RoundHandler struct {
	roundService *service.RoundService
}

// NewRoundHandler создает новый обработчик раундов
func NewRoundHandler(roundService *service.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

// CreateRoundRequest представляет запрос на создание раунда
type CreateRoundRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// CreateRound обрабатывает запрос на создание раунда
func (h *RoundHandler) CreateRound(c *gin.Context) {
	var req CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.roundService.CreateRound(req.UserID)
	if err != nil {
		h.handleRoundError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRoundInfoResponse(round))
}

// GetRound возвращает метаданные раунда
func (h *RoundHandler) GetRound(c *gin.Context) {
	roundID := c.MustGet("roundID").(uint) // Получаем из контекста

	round, err := h.roundService.GetRound(roundID)
	if err != nil {
		h.handleRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRoundResponse(round))
}

// GetCurrentQuestion возвращает текущий неотвеченный вопрос раунда
// или сигнал ROUND_COMPLETE, если раунд завершён
func (h *RoundHandler) GetCurrentQuestion(c *gin.Context) {
	roundID := c.MustGet("roundID").(uint) // Получаем из контекста

	current, err := h.roundService.GetCurrentQuestion(roundID)
	if err != nil {
		h.handleRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCurrentQuestionResponse(current))
}

// SubmitAnswerRequest представляет ответ на текущий вопрос раунда.
// Пустой текст допустим: при точном сравнении он просто не совпадёт
// с правильным ответом и будет записан как неправильный.
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Text       string `json:"text" binding:"omitempty,max=500"`
}

// SubmitAnswer обрабатывает ответ на текущий вопрос раунда
func (h *RoundHandler) SubmitAnswer(c *gin.Context) {
	roundID := c.MustGet("roundID").(uint) // Получаем из контекста

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.roundService.SubmitAnswer(roundID, req.QuestionID, req.Text)
	if err != nil {
		h.handleRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnswerResultResponse(result))
}

// GetResult возвращает итоговый результат завершённого раунда
func (h *RoundHandler) GetResult(c *gin.Context) {
	roundID := c.MustGet("roundID").(uint) // Получаем из контекста

	result, err := h.roundService.GetResult(roundID)
	if err != nil {
		h.handleRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRoundResultResponse(result))
}

// handleRoundError преобразует ошибки движка раундов в HTTP-статусы
func (h *RoundHandler) handleRoundError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrOutOfSequence) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in RoundHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
