package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	"github.com/yourusername/trivial-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// ============================================================================
// Моки для QuestionService
// ============================================================================

// MockQuestionRepoForQuestionService реализует repository.QuestionRepository
type MockQuestionRepoForQuestionService struct {
	mock.Mock
}

func (m *MockQuestionRepoForQuestionService) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepoForQuestionService) CreateBatch(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepoForQuestionService) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) GetByIDs(ids []uint) ([]entity.Question, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) GetByFilter(filter repository.QuestionFilter) ([]entity.Question, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) GetRandom(filter repository.QuestionFilter) (*entity.Question, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) GetRandomIDs(limit int) ([]uint, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) GetCorrectAnswer(questionID uint) (string, error) {
	args := m.Called(questionID)
	return args.String(0), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) Update(id uint, patch repository.QuestionPatch) (*entity.Question, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForQuestionService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCacheRepoForQuestionService реализует repository.CacheRepository
type MockCacheRepoForQuestionService struct {
	mock.Mock
}

func (m *MockCacheRepoForQuestionService) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepoForQuestionService) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepoForQuestionService) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepoForQuestionService) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepoForQuestionService) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// ============================================================================
// Тесты GetQuestionByID (cache-aside)
// ============================================================================

func TestQuestionService_GetQuestionByID_CacheHit(t *testing.T) {
	// Arrange
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockCache.On("GetJSON", "question:5", mock.AnythingOfType("*entity.Question")).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*entity.Question)
			*dest = entity.Question{
				ID:           5,
				Category:     entity.CategoryGeography,
				Difficulty:   entity.DifficultyEasy,
				QuestionText: "What is the capital of France?",
			}
		}).
		Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	question, err := svc.GetQuestionByID(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(5), question.ID)
	assert.Equal(t, "What is the capital of France?", question.QuestionText)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestQuestionService_GetQuestionByID_CacheMissPopulatesCache(t *testing.T) {
	// Arrange
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	question := &entity.Question{ID: 5, QuestionText: "What is the capital of France?"}

	mockCache.On("GetJSON", "question:5", mock.AnythingOfType("*entity.Question")).Return(apperrors.ErrNotFound)
	mockRepo.On("GetByID", uint(5)).Return(question, nil)
	mockCache.On("SetJSON", "question:5", question, time.Hour).Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	got, err := svc.GetQuestionByID(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, question, got)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestQuestionService_GetQuestionByID_NotFoundIsNotCached(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockCache.On("GetJSON", "question:404", mock.AnythingOfType("*entity.Question")).Return(apperrors.ErrNotFound)
	mockRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	question, err := svc.GetQuestionByID(404)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Nil(t, question)
	mockCache.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// Тесты GetCorrectAnswer (cache-aside)
// ============================================================================

func TestQuestionService_GetCorrectAnswer_CacheHit(t *testing.T) {
	// Arrange
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockCache.On("Get", "answer:5").Return("Paris", nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	answer, err := svc.GetCorrectAnswer(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
	mockRepo.AssertNotCalled(t, "GetCorrectAnswer", mock.Anything)
}

func TestQuestionService_GetCorrectAnswer_CacheMissPopulatesCache(t *testing.T) {
	// Arrange
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockCache.On("Get", "answer:5").Return("", apperrors.ErrNotFound)
	mockRepo.On("GetCorrectAnswer", uint(5)).Return("Paris", nil)
	mockCache.On("Set", "answer:5", "Paris", time.Hour).Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	answer, err := svc.GetCorrectAnswer(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestQuestionService_GetCorrectAnswer_CacheFailureFallsBackToStore(t *testing.T) {
	// Недоступный кеш не ломает запрос
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockCache.On("Get", "answer:5").Return("", errors.New("connection refused"))
	mockRepo.On("GetCorrectAnswer", uint(5)).Return("Paris", nil)
	mockCache.On("Set", "answer:5", "Paris", time.Hour).Return(errors.New("connection refused"))

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	answer, err := svc.GetCorrectAnswer(5)

	// Assert
	require.NoError(t, err, "Ошибка кеша не должна влиять на результат")
	assert.Equal(t, "Paris", answer)
}

func TestQuestionService_GetCorrectAnswer_WithoutCache(t *testing.T) {
	// cacheRepo == nil: кеширование отключено
	mockRepo := new(MockQuestionRepoForQuestionService)

	mockRepo.On("GetCorrectAnswer", uint(5)).Return("Paris", nil)

	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	answer, err := svc.GetCorrectAnswer(5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
}

func TestQuestionService_GetCorrectAnswer_QuestionNotFound(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockCache.On("Get", "answer:404").Return("", apperrors.ErrNotFound)
	mockRepo.On("GetCorrectAnswer", uint(404)).Return("", apperrors.ErrNotFound)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	answer, err := svc.GetCorrectAnswer(404)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, answer)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// Тесты CreateQuestion
// ============================================================================

func TestQuestionService_CreateQuestion_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Question")).Return(nil)

	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	question, err := svc.CreateQuestion(
		entity.CategoryGeography,
		entity.DifficultyEasy,
		"What is the capital of France?",
		[]AnswerInput{
			{Text: "Paris", IsCorrect: true},
			{Text: "London", IsCorrect: false},
		},
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryGeography, question.Category)
	require.Len(t, question.Answers, 2)
	correct, ok := question.CorrectAnswer()
	require.True(t, ok)
	assert.Equal(t, "Paris", correct)
	mockRepo.AssertExpectations(t)
}

func TestQuestionService_CreateQuestion_EmptyText(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	question, err := svc.CreateQuestion(entity.CategoryGeography, entity.DifficultyEasy, "   ", nil)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, question)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuestionService_CreateQuestion_UnknownCategory(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	question, err := svc.CreateQuestion(entity.Category("cooking"), entity.DifficultyEasy, "Question?", nil)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, question)
}

func TestQuestionService_CreateQuestion_TwoCorrectAnswers(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	question, err := svc.CreateQuestion(
		entity.CategoryGeography,
		entity.DifficultyEasy,
		"Question?",
		[]AnswerInput{
			{Text: "A", IsCorrect: true},
			{Text: "B", IsCorrect: true},
		},
	)

	// Assert
	require.Error(t, err, "Не более одного правильного ответа")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, question)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// ============================================================================
// Тесты UpdateQuestion / DeleteQuestion
// ============================================================================

func TestQuestionService_UpdateQuestion_InvalidatesCache(t *testing.T) {
	// Arrange
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	newText := "Updated question?"
	patch := repository.QuestionPatch{QuestionText: &newText}
	updated := &entity.Question{ID: 5, QuestionText: newText}

	mockRepo.On("Update", uint(5), patch).Return(updated, nil)
	mockCache.On("Delete", "answer:5").Return(nil)
	mockCache.On("Delete", "question:5").Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	question, err := svc.UpdateQuestion(5, patch)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, newText, question.QuestionText)
	mockCache.AssertCalled(t, "Delete", "answer:5")
	mockCache.AssertCalled(t, "Delete", "question:5")
}

func TestQuestionService_UpdateQuestion_EmptyPatch(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	question, err := svc.UpdateQuestion(5, repository.QuestionPatch{})

	// Assert
	require.Error(t, err, "Пустой патч отклоняется")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, question)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestQuestionService_UpdateQuestion_NotFound(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	cat := entity.CategoryMusic
	patch := repository.QuestionPatch{Category: &cat}
	mockRepo.On("Update", uint(404), patch).Return(nil, apperrors.ErrNotFound)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	question, err := svc.UpdateQuestion(404, patch)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Nil(t, question)
	mockCache.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestQuestionService_DeleteQuestion_InvalidatesCache(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockRepo.On("Delete", uint(5)).Return(nil)
	mockCache.On("Delete", "answer:5").Return(nil)
	mockCache.On("Delete", "question:5").Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	err := svc.DeleteQuestion(5)

	// Assert
	require.NoError(t, err)
	mockCache.AssertCalled(t, "Delete", "answer:5")
	mockCache.AssertCalled(t, "Delete", "question:5")
}

func TestQuestionService_DeleteQuestion_ReferencedByRound(t *testing.T) {
	// Вопрос, попавший в раунд, удалить нельзя — конфликт, кеш не трогается
	mockRepo := new(MockQuestionRepoForQuestionService)
	mockCache := new(MockCacheRepoForQuestionService)

	mockRepo.On("Delete", uint(5)).
		Return(fmt.Errorf("question 5 is referenced by existing rounds: %w", apperrors.ErrConflict))

	svc := NewQuestionService(mockRepo, mockCache, time.Hour)

	// Act
	err := svc.DeleteQuestion(5)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	mockCache.AssertNotCalled(t, "Delete", mock.Anything)
}

// ============================================================================
// Тесты выборки
// ============================================================================

func TestQuestionService_GetQuestions_EmptyResultIsNotError(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)

	cat := entity.CategoryFood
	filter := repository.QuestionFilter{Category: &cat}
	mockRepo.On("GetByFilter", filter).Return([]entity.Question{}, nil)

	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	questions, err := svc.GetQuestions(filter)

	// Assert
	require.NoError(t, err, "Пустая выборка — валидный ответ")
	assert.Empty(t, questions)
}

func TestQuestionService_ImportQuestions_EmptyBatch(t *testing.T) {
	mockRepo := new(MockQuestionRepoForQuestionService)
	svc := NewQuestionService(mockRepo, nil, 0)

	// Act
	err := svc.ImportQuestions(nil)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	mockRepo.AssertNotCalled(t, "CreateBatch", mock.Anything)
}
