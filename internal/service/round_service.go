package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	"github.com/yourusername/trivial-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// RoundConfig содержит настройки движка раундов
type RoundConfig struct {
	// QuestionCount — количество вопросов в одном раунде
	QuestionCount int
}

// DefaultRoundConfig возвращает конфигурацию раундов по умолчанию
func DefaultRoundConfig() *RoundConfig {
	return &RoundConfig{
		QuestionCount: 10,
	}
}

// CurrentQuestion — ответ движка на запрос текущего вопроса.
// Когда раунд завершён, Status = ROUND_COMPLETE и Question == nil.
type CurrentQuestion struct {
	Status   entity.RoundStepStatus
	Question *entity.Question
	Index    int
}

// AnswerResult — итог обработки отправленного ответа.
// CorrectAnswer раскрывается только после отправки, никогда до.
type AnswerResult struct {
	Status        entity.RoundStepStatus
	IsCorrect     bool
	CorrectAnswer string
}

// RoundResultEntry — пара вопрос/ответ в итоговом результате раунда
type RoundResultEntry struct {
	Question *entity.Question
	Response *entity.RoundQuestion
}

// RoundResult — итоговый результат завершённого раунда
type RoundResult struct {
	Round   *entity.Round
	Entries []RoundResultEntry
	Score   int
}

// RoundService реализует жизненный цикл раунда: выбор последовательности
// вопросов, строгое движение по ней вперёд, запись ответов и итоговый результат.
//
// Машина состояний раунда:
//
//	NOT_STARTED --CreateRound--> IN_PROGRESS
//	IN_PROGRESS --SubmitAnswer (index < count-1)--> IN_PROGRESS
//	IN_PROGRESS --SubmitAnswer (index == count-1)--> COMPLETED
//	IN_PROGRESS --фатальная ошибка хранилища--> ERROR
//
// COMPLETED и ERROR терминальны.
type RoundService struct {
	roundRepo    repository.RoundRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	config       *RoundConfig
}

// NewRoundService создает новый сервис раундов
func NewRoundService(
	roundRepo repository.RoundRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	config *RoundConfig,
) *RoundService {
	if config == nil {
		config = DefaultRoundConfig()
	}
	return &RoundService{
		roundRepo:    roundRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		config:       config,
	}
}

// CreateRound создает новый раунд для пользователя: выбирает случайную
// последовательность вопросов без повторений и сохраняет раунд в состоянии
// IN_PROGRESS с current_index = 0.
func (s *RoundService) CreateRound(userID uint) (*entity.Round, error) {
	// Пользователь должен существовать
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	ids, err := s.questionRepo.GetRandomIDs(s.config.QuestionCount)
	if err != nil {
		return nil, fmt.Errorf("failed to sample question pool: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("question pool is empty: %w", apperrors.ErrConflict)
	}
	// Пул меньше настроенного размера — раунд из всего пула

	questions := make([]entity.RoundQuestion, len(ids))
	for i, id := range ids {
		questions[i] = entity.RoundQuestion{
			QuestionID: id,
			Position:   i,
		}
	}

	round := &entity.Round{
		UserID:        userID,
		Status:        entity.RoundStatusInProgress,
		CurrentIndex:  0,
		QuestionCount: len(ids),
		Questions:     questions,
	}

	if err := s.roundRepo.Create(round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	return round, nil
}

// GetRound возвращает раунд по ID
func (s *RoundService) GetRound(roundID uint) (*entity.Round, error) {
	return s.roundRepo.GetByID(roundID)
}

// GetCurrentQuestion возвращает вопрос на текущем индексе раунда.
// Для неактивного раунда возвращается терминальный сигнал ROUND_COMPLETE
// вместо вопроса. Правильный ответ клиенту не раскрывается.
func (s *RoundService) GetCurrentQuestion(roundID uint) (*CurrentQuestion, error) {
	round, err := s.roundRepo.GetByID(roundID)
	if err != nil {
		return nil, err
	}

	if !round.IsInProgress() {
		return &CurrentQuestion{Status: entity.RoundStepComplete, Index: round.CurrentIndex}, nil
	}

	questionID, ok := round.CurrentQuestionID()
	if !ok {
		// Нарушение инварианта: активный раунд без вопроса на текущем индексе
		return nil, fmt.Errorf("round %d has no question at index %d: %w",
			round.ID, round.CurrentIndex, apperrors.ErrStore)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question %d: %w", questionID, err)
	}

	return &CurrentQuestion{
		Status:   entity.RoundStepQuestion,
		Question: question,
		Index:    round.CurrentIndex,
	}, nil
}

// SubmitAnswer обрабатывает ответ на текущий вопрос раунда.
// Ответ принимается только на вопрос с current_index; пропуск и повторный
// ответ запрещены (ErrOutOfSequence). Сравнение с правильным ответом —
// точное, с учётом регистра, без нормализации.
func (s *RoundService) SubmitAnswer(roundID, questionID uint, submittedText string) (*AnswerResult, error) {
	round, err := s.roundRepo.GetByID(roundID)
	if err != nil {
		return nil, err
	}

	if !round.IsInProgress() {
		return nil, fmt.Errorf("round %d is not in progress (status %s): %w",
			round.ID, round.Status, apperrors.ErrConflict)
	}

	currentID, ok := round.CurrentQuestionID()
	if !ok {
		return nil, fmt.Errorf("round %d has no question at index %d: %w",
			round.ID, round.CurrentIndex, apperrors.ErrStore)
	}
	if questionID != currentID {
		return nil, fmt.Errorf("question %d is not the current question of round %d: %w",
			questionID, round.ID, apperrors.ErrOutOfSequence)
	}

	correctAnswer, err := s.questionRepo.GetCorrectAnswer(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Выборка раунда включает только вопросы с правильным ответом,
			// так что сюда можно попасть лишь при порче данных. Раунд
			// остаётся активным: после восстановления ответа submit пройдёт.
			return nil, fmt.Errorf("question %d has no correct answer: %w",
				questionID, apperrors.ErrStore)
		}
		s.markRoundError(round.ID)
		return nil, fmt.Errorf("failed to load correct answer for question %d: %w",
			questionID, apperrors.ErrStore)
	}

	isCorrect := submittedText == correctAnswer

	newIndex := round.CurrentIndex + 1
	newStatus := entity.RoundStatusInProgress
	stepStatus := entity.RoundStepQuestion
	if newIndex == round.QuestionCount {
		newStatus = entity.RoundStatusCompleted
		stepStatus = entity.RoundStepComplete
	}

	now := time.Now()
	answer := &entity.RoundQuestion{
		RoundID:       round.ID,
		QuestionID:    questionID,
		Position:      round.CurrentIndex,
		SubmittedText: &submittedText,
		IsCorrect:     &isCorrect,
		AnsweredAt:    &now,
	}

	if err := s.roundRepo.RecordAnswer(round.ID, round.CurrentIndex, answer, newStatus); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Конкурентная запись: индекс уже сдвинут другим запросом
			return nil, err
		}
		s.markRoundError(round.ID)
		return nil, fmt.Errorf("failed to record answer for round %d: %w",
			round.ID, apperrors.ErrStore)
	}

	if newStatus == entity.RoundStatusCompleted {
		score := round.Score()
		if isCorrect {
			score++
		}
		// Статистика пользователя не входит в транзакцию раунда:
		// её потеря не откатывает принятый ответ.
		if err := s.userRepo.RecordRoundResult(round.UserID, score); err != nil {
			log.Printf("[RoundService] Не удалось обновить статистику пользователя %d: %v",
				round.UserID, err)
		}
	}

	return &AnswerResult{
		Status:        stepStatus,
		IsCorrect:     isCorrect,
		CorrectAnswer: correctAnswer,
	}, nil
}

// GetResult возвращает итоговый результат раунда: упорядоченные пары
// вопрос/ответ и суммарный счёт. Для активного раунда — ErrConflict.
func (s *RoundService) GetResult(roundID uint) (*RoundResult, error) {
	round, err := s.roundRepo.GetByID(roundID)
	if err != nil {
		return nil, err
	}

	if round.IsInProgress() {
		return nil, fmt.Errorf("round %d is still in progress: %w",
			round.ID, apperrors.ErrConflict)
	}

	ids := make([]uint, len(round.Questions))
	for i := range round.Questions {
		ids[i] = round.Questions[i].QuestionID
	}

	questions, err := s.questionRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load round questions: %w", err)
	}
	byID := make(map[uint]*entity.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	entries := make([]RoundResultEntry, len(round.Questions))
	for i := range round.Questions {
		rq := &round.Questions[i]
		entries[i] = RoundResultEntry{
			Question: byID[rq.QuestionID],
			Response: rq,
		}
	}

	return &RoundResult{
		Round:   round,
		Entries: entries,
		Score:   round.Score(),
	}, nil
}

// markRoundError переводит раунд в состояние ERROR (best effort)
func (s *RoundService) markRoundError(roundID uint) {
	if err := s.roundRepo.MarkError(roundID); err != nil {
		log.Printf("[RoundService] Не удалось перевести раунд %d в состояние ERROR: %v",
			roundID, err)
	}
}
