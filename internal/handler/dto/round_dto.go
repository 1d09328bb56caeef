package dto

import (
	"time"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	"github.com/yourusername/trivial-api/internal/service"
)

// RoundInfoResponse — ответ на создание раунда
type RoundInfoResponse struct {
	RoundID uint `json:"round_id"`
	UserID  uint `json:"user_id"`
}

// NewRoundInfoResponse создает DTO с идентификаторами нового раунда
func NewRoundInfoResponse(r *entity.Round) *RoundInfoResponse {
	return &RoundInfoResponse{
		RoundID: r.ID,
		UserID:  r.UserID,
	}
}

// RoundResponse представляет метаданные раунда
type RoundResponse struct {
	RoundID       uint      `json:"round_id"`
	UserID        uint      `json:"user_id"`
	Status        string    `json:"status"`
	CurrentIndex  int       `json:"current_index"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewRoundResponse создает DTO для раунда
func NewRoundResponse(r *entity.Round) *RoundResponse {
	if r == nil {
		return nil
	}
	return &RoundResponse{
		RoundID:       r.ID,
		UserID:        r.UserID,
		Status:        string(r.Status),
		CurrentIndex:  r.CurrentIndex,
		QuestionCount: r.QuestionCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// CurrentQuestionResponse — текущий вопрос раунда или сигнал завершения.
// При status = ROUND_COMPLETE поле question отсутствует.
type CurrentQuestionResponse struct {
	Status   string            `json:"status"`
	Index    int               `json:"index"`
	Question *QuestionResponse `json:"question,omitempty"`
}

// NewCurrentQuestionResponse создает DTO для текущего вопроса
func NewCurrentQuestionResponse(cq *service.CurrentQuestion) *CurrentQuestionResponse {
	return &CurrentQuestionResponse{
		Status:   string(cq.Status),
		Index:    cq.Index,
		Question: NewQuestionResponse(cq.Question),
	}
}

// AnswerResultResponse — результат отправки ответа.
// Правильный ответ раскрывается только здесь, после отправки.
type AnswerResultResponse struct {
	Status        string `json:"status"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// NewAnswerResultResponse создает DTO для результата ответа
func NewAnswerResultResponse(res *service.AnswerResult) *AnswerResultResponse {
	return &AnswerResultResponse{
		Status:        string(res.Status),
		IsCorrect:     res.IsCorrect,
		CorrectAnswer: res.CorrectAnswer,
	}
}

// RoundResultEntryResponse — пара вопрос/ответ в итоговом результате
type RoundResultEntryResponse struct {
	Position      int               `json:"position"`
	Question      *QuestionResponse `json:"question"`
	SubmittedText *string           `json:"submitted_text,omitempty"`
	IsCorrect     *bool             `json:"is_correct,omitempty"`
	AnsweredAt    *time.Time        `json:"answered_at,omitempty"`
}

// RoundResultResponse — итоговый результат раунда
type RoundResultResponse struct {
	RoundID   uint                        `json:"round_id"`
	UserID    uint                        `json:"user_id"`
	Status    string                      `json:"status"`
	Score     int                         `json:"score"`
	Questions []*RoundResultEntryResponse `json:"questions"`
}

// NewRoundResultResponse создает DTO для итогового результата раунда
func NewRoundResultResponse(result *service.RoundResult) *RoundResultResponse {
	entries := make([]*RoundResultEntryResponse, len(result.Entries))
	for i, entry := range result.Entries {
		entries[i] = &RoundResultEntryResponse{
			Position:      entry.Response.Position,
			Question:      NewQuestionResponse(entry.Question),
			SubmittedText: entry.Response.SubmittedText,
			IsCorrect:     entry.Response.IsCorrect,
			AnsweredAt:    entry.Response.AnsweredAt,
		}
	}
	return &RoundResultResponse{
		RoundID:   result.Round.ID,
		UserID:    result.Round.UserID,
		Status:    string(result.Round.Status),
		Score:     result.Score,
		Questions: entries,
	}
}
