package repository

import (
	"github.com/yourusername/trivial-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)

	// RecordRoundResult инкрементирует счётчики статистики пользователя
	// после завершения раунда.
	RecordRoundResult(userID uint, score int) error
}
