package dto

import (
	"time"

	"github.com/yourusername/trivial-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Варианты ответов не включаются: правильный ответ не должен утекать
// до отправки ответа пользователем.
type QuestionResponse struct {
	QuestionID   uint      `json:"question_id"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	QuestionText string    `json:"question_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	return &QuestionResponse{
		QuestionID:   q.ID,
		Category:     string(q.Category),
		Difficulty:   string(q.Difficulty),
		QuestionText: q.QuestionText,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// NewQuestionListResponse создает список DTO для вопросов
func NewQuestionListResponse(questions []entity.Question) []*QuestionResponse {
	out := make([]*QuestionResponse, len(questions))
	for i := range questions {
		out[i] = NewQuestionResponse(&questions[i])
	}
	return out
}

// CorrectAnswerResponse представляет правильный ответ на вопрос
type CorrectAnswerResponse struct {
	QuestionID uint   `json:"question_id"`
	AnswerText string `json:"answer_text"`
}
