package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	"github.com/yourusername/trivial-api/internal/domain/repository"
	"github.com/yourusername/trivial-api/internal/handler/dto"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
	"github.com/yourusername/trivial-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами и ответами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// parseFilterQuery разбирает необязательные query-параметры category и
// difficulty. Неизвестное значение — 400 c описанием.
func parseFilterQuery(c *gin.Context) (repository.QuestionFilter, bool) {
	var filter repository.QuestionFilter

	if raw, ok := c.GetQuery("category"); ok && raw != "" {
		category, err := entity.ParseCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Category = &category
	}
	if raw, ok := c.GetQuery("difficulty"); ok && raw != "" {
		difficulty, err := entity.ParseDifficulty(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Difficulty = &difficulty
	}

	return filter, true
}

// GetRandomQuestion возвращает случайный вопрос с необязательными фильтрами
func (h *QuestionHandler) GetRandomQuestion(c *gin.Context) {
	filter, ok := parseFilterQuery(c)
	if !ok {
		return
	}

	question, err := h.questionService.GetRandomQuestion(filter)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// GetQuestionsByCategory возвращает вопросы категории из параметра пути
func (h *QuestionHandler) GetQuestionsByCategory(c *gin.Context) {
	category := c.MustGet("category").(entity.Category) // Получаем из контекста

	questions, err := h.questionService.GetQuestions(repository.QuestionFilter{Category: &category})
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions))
}

// GetQuestionsByDifficulty возвращает вопросы сложности из параметра пути
func (h *QuestionHandler) GetQuestionsByDifficulty(c *gin.Context) {
	difficulty := c.MustGet("difficulty").(entity.Difficulty) // Получаем из контекста

	questions, err := h.questionService.GetQuestions(repository.QuestionFilter{Difficulty: &difficulty})
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions))
}

// GetQuestionByID возвращает вопрос по ID
func (h *QuestionHandler) GetQuestionByID(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	question, err := h.questionService.GetQuestionByID(questionID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// ListQuestions возвращает вопросы по комбинированному фильтру.
// Пустые фильтры означают весь пул; пустой результат — 200 и пустой список.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filter, ok := parseFilterQuery(c)
	if !ok {
		return
	}

	questions, err := h.questionService.GetQuestions(filter)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions))
}

// GetCorrectAnswer возвращает правильный ответ на вопрос
func (h *QuestionHandler) GetCorrectAnswer(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	answer, err := h.questionService.GetCorrectAnswer(questionID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CorrectAnswerResponse{
		QuestionID: questionID,
		AnswerText: answer,
	})
}

// AnswerRequest представляет вариант ответа при создании вопроса
type AnswerRequest struct {
	Text      string `json:"text" binding:"required,min=1,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// AddQuestionRequest представляет запрос на создание вопроса
type AddQuestionRequest struct {
	Category     string          `json:"category" binding:"required"`
	Difficulty   string          `json:"difficulty" binding:"required"`
	QuestionText string          `json:"question_text" binding:"required,min=3,max=500"`
	Answers      []AnswerRequest `json:"answers" binding:"omitempty,max=10,dive"`
}

// AddQuestion обрабатывает запрос на создание вопроса
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]service.AnswerInput, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = service.AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect}
	}

	question, err := h.questionService.CreateQuestion(
		entity.Category(req.Category),
		entity.Difficulty(req.Difficulty),
		req.QuestionText,
		answers,
	)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// UpdateQuestionRequest представляет запрос на частичное обновление вопроса.
// Каждое поле патча устанавливается независимо; nil — поле не меняется.
type UpdateQuestionRequest struct {
	QuestionID   uint    `json:"question_id" binding:"required"`
	Category     *string `json:"category,omitempty"`
	Difficulty   *string `json:"difficulty,omitempty"`
	QuestionText *string `json:"question_text,omitempty"`
}

// UpdateQuestion обрабатывает запрос на частичное обновление вопроса
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch repository.QuestionPatch
	if req.Category != nil {
		category, err := entity.ParseCategory(*req.Category)
		if err != nil {
			h.handleQuestionError(c, err)
			return
		}
		patch.Category = &category
	}
	if req.Difficulty != nil {
		difficulty, err := entity.ParseDifficulty(*req.Difficulty)
		if err != nil {
			h.handleQuestionError(c, err)
			return
		}
		patch.Difficulty = &difficulty
	}
	patch.QuestionText = req.QuestionText

	question, err := h.questionService.UpdateQuestion(req.QuestionID, patch)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// DeleteQuestion обрабатывает запрос на удаление вопроса.
// ID вопроса передается query-параметром question_id.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	raw, ok := c.GetQuery("question_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question_id query parameter is required"})
		return
	}
	questionID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question_id"})
		return
	}

	if err := h.questionService.DeleteQuestion(uint(questionID)); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": questionID})
}

// handleQuestionError преобразует ошибки сервиса в HTTP-статусы
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
