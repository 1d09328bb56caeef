package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	"github.com/yourusername/trivial-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// answerCacheKey формирует ключ кеша правильного ответа
func answerCacheKey(questionID uint) string {
	return fmt.Sprintf("answer:%d", questionID)
}

// questionCacheKey формирует ключ кеша вопроса
func questionCacheKey(questionID uint) string {
	return fmt.Sprintf("question:%d", questionID)
}

// AnswerInput описывает вариант ответа при создании вопроса
type AnswerInput struct {
	Text      string
	IsCorrect bool
}

// QuestionService предоставляет методы для работы с пулом вопросов.
// Правильные ответы и вопросы кешируются в Redis; ошибки кеша
// логируются и не влияют на результат запроса.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewQuestionService создает новый сервис вопросов.
// cacheRepo может быть nil — тогда кеширование отключено.
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// GetQuestionByID возвращает вопрос по ID, используя кеш поверх
// Postgres (cache-aside). Варианты ответов в кеш не попадают.
func (s *QuestionService) GetQuestionByID(id uint) (*entity.Question, error) {
	if s.cacheRepo != nil {
		var cached entity.Question
		err := s.cacheRepo.GetJSON(questionCacheKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionService] Ошибка чтения кеша вопроса %d: %v", id, err)
		}
	}

	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(questionCacheKey(id), question, s.cacheTTL); err != nil {
			log.Printf("[QuestionService] Ошибка записи кеша вопроса %d: %v", id, err)
		}
	}

	return question, nil
}

// GetQuestions возвращает вопросы по необязательным фильтрам.
// Пустой результат — валидный ответ, а не ошибка.
func (s *QuestionService) GetQuestions(filter repository.QuestionFilter) ([]entity.Question, error) {
	return s.questionRepo.GetByFilter(filter)
}

// GetRandomQuestion возвращает случайный вопрос, удовлетворяющий фильтру
func (s *QuestionService) GetRandomQuestion(filter repository.QuestionFilter) (*entity.Question, error) {
	return s.questionRepo.GetRandom(filter)
}

// GetCorrectAnswer возвращает текст правильного ответа, используя
// кеш поверх Postgres (cache-aside).
func (s *QuestionService) GetCorrectAnswer(questionID uint) (string, error) {
	key := answerCacheKey(questionID)

	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.Get(key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionService] Ошибка чтения кеша ответа %d: %v", questionID, err)
		}
	}

	answer, err := s.questionRepo.GetCorrectAnswer(questionID)
	if err != nil {
		return "", err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(key, answer, s.cacheTTL); err != nil {
			log.Printf("[QuestionService] Ошибка записи кеша ответа %d: %v", questionID, err)
		}
	}

	return answer, nil
}

// CreateQuestion создает новый вопрос с необязательным набором ответов.
// Среди переданных ответов допускается не более одного правильного.
func (s *QuestionService) CreateQuestion(
	category entity.Category,
	difficulty entity.Difficulty,
	questionText string,
	answers []AnswerInput,
) (*entity.Question, error) {
	questionText = strings.TrimSpace(questionText)
	if questionText == "" {
		return nil, fmt.Errorf("question text is required: %w", apperrors.ErrValidation)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, apperrors.ErrValidation)
	}
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("unknown difficulty %q: %w", difficulty, apperrors.ErrValidation)
	}

	correctCount := 0
	entityAnswers := make([]entity.Answer, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Text) == "" {
			return nil, fmt.Errorf("answer text is required: %w", apperrors.ErrValidation)
		}
		if a.IsCorrect {
			correctCount++
		}
		entityAnswers = append(entityAnswers, entity.Answer{
			AnswerText: a.Text,
			IsCorrect:  a.IsCorrect,
		})
	}
	if correctCount > 1 {
		return nil, fmt.Errorf("question can have at most one correct answer: %w", apperrors.ErrValidation)
	}

	question := &entity.Question{
		Category:     category,
		Difficulty:   difficulty,
		QuestionText: questionText,
		Answers:      entityAnswers,
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

// UpdateQuestion применяет частичный патч к вопросу.
// Пустой патч — ошибка валидации; патч применяется целиком или никак.
func (s *QuestionService) UpdateQuestion(id uint, patch repository.QuestionPatch) (*entity.Question, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("patch must set at least one field: %w", apperrors.ErrValidation)
	}
	if patch.QuestionText != nil && strings.TrimSpace(*patch.QuestionText) == "" {
		return nil, fmt.Errorf("question text cannot be empty: %w", apperrors.ErrValidation)
	}

	question, err := s.questionRepo.Update(id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(id)
	return question, nil
}

// DeleteQuestion удаляет вопрос вместе с его ответами
func (s *QuestionService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(id)
	return nil
}

// ImportQuestions загружает пакет вопросов в пул (используется seed-командой)
func (s *QuestionService) ImportQuestions(questions []entity.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("nothing to import: %w", apperrors.ErrValidation)
	}
	return s.questionRepo.CreateBatch(questions)
}

// invalidateCache сбрасывает кеш вопроса и правильного ответа после мутации
func (s *QuestionService) invalidateCache(questionID uint) {
	if s.cacheRepo == nil {
		return
	}
	for _, key := range []string{answerCacheKey(questionID), questionCacheKey(questionID)} {
		if err := s.cacheRepo.Delete(key); err != nil {
			log.Printf("[QuestionService] Ошибка инвалидации кеша %s: %v", key, err)
		}
	}
}
