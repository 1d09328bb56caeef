package entity

import (
	"time"
)

// RoundStatus представляет состояние раунда
type RoundStatus string

// Состояния жизненного цикла раунда.
// COMPLETED и ERROR — терминальные, переходов из них нет.
const (
	RoundStatusNotStarted RoundStatus = "NOT_STARTED"
	RoundStatusInProgress RoundStatus = "IN_PROGRESS"
	RoundStatusCompleted  RoundStatus = "COMPLETED"
	RoundStatusError      RoundStatus = "ERROR"
)

// RoundStepStatus сообщает клиенту, есть ли в раунде ещё вопросы
type RoundStepStatus string

const (
	// RoundStepQuestion — в раунде остались неотвеченные вопросы
	RoundStepQuestion RoundStepStatus = "QUESTION"
	// RoundStepComplete — раунд завершён, вопросов больше нет
	RoundStepComplete RoundStepStatus = "ROUND_COMPLETE"
)

// Round представляет одно прохождение пользователем упорядоченной
// последовательности вопросов.
// Инварианты: 0 <= CurrentIndex <= QuestionCount, индекс только растёт;
// ответ записан для позиции i тогда и только тогда, когда i < CurrentIndex.
type Round struct {
	ID            uint            `gorm:"primaryKey" json:"round_id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Status        RoundStatus     `gorm:"size:20;not null;default:'IN_PROGRESS'" json:"status"`
	CurrentIndex  int             `gorm:"not null;default:0" json:"current_index"`
	QuestionCount int             `gorm:"not null" json:"question_count"`
	Questions     []RoundQuestion `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Round) TableName() string {
	return "rounds"
}

// IsInProgress возвращает true, если раунд активен
func (r *Round) IsInProgress() bool {
	return r.Status == RoundStatusInProgress
}

// IsTerminal возвращает true для терминальных состояний
func (r *Round) IsTerminal() bool {
	return r.Status == RoundStatusCompleted || r.Status == RoundStatusError
}

// QuestionAt возвращает RoundQuestion на указанной позиции.
// Questions должны быть загружены и упорядочены по position.
func (r *Round) QuestionAt(position int) (*RoundQuestion, bool) {
	for i := range r.Questions {
		if r.Questions[i].Position == position {
			return &r.Questions[i], true
		}
	}
	return nil, false
}

// CurrentQuestionID возвращает id вопроса на текущем индексе раунда
func (r *Round) CurrentQuestionID() (uint, bool) {
	rq, ok := r.QuestionAt(r.CurrentIndex)
	if !ok {
		return 0, false
	}
	return rq.QuestionID, true
}

// Score возвращает количество правильных ответов среди записанных
func (r *Round) Score() int {
	score := 0
	for i := range r.Questions {
		if r.Questions[i].IsCorrect != nil && *r.Questions[i].IsCorrect {
			score++
		}
	}
	return score
}

// RoundQuestion представляет позицию вопроса внутри раунда и записанный ответ.
// Поля ответа остаются NULL, пока пользователь не ответил.
type RoundQuestion struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RoundID       uint       `gorm:"not null;uniqueIndex:idx_round_questions_round_position" json:"round_id"`
	QuestionID    uint       `gorm:"not null" json:"question_id"`
	Position      int        `gorm:"not null;uniqueIndex:idx_round_questions_round_position" json:"position"`
	SubmittedText *string    `gorm:"size:500" json:"submitted_text,omitempty"`
	IsCorrect     *bool      `json:"is_correct,omitempty"`
	AnsweredAt    *time.Time `json:"answered_at,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (RoundQuestion) TableName() string {
	return "round_questions"
}

// Answered возвращает true, если ответ на позицию уже записан
func (rq *RoundQuestion) Answered() bool {
	return rq.AnsweredAt != nil
}
