package dto

import (
	"time"

	"github.com/yourusername/trivial-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	GamesPlayed int64     `json:"games_played"`
	TotalScore  int64     `json:"total_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		GamesPlayed: u.GamesPlayed,
		TotalScore:  u.TotalScore,
		CreatedAt:   u.CreatedAt,
	}
}
