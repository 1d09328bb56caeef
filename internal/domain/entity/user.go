package entity

import (
	"strings"
	"time"
)

// User представляет пользователя в системе
type User struct {
	ID          uint      `gorm:"primaryKey" json:"user_id"`
	Username    string    `gorm:"size:50;not null" json:"username"`
	Email       string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	GamesPlayed int64     `gorm:"not null;default:0" json:"games_played"`
	TotalScore  int64     `gorm:"not null;default:0" json:"total_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// DeriveUsername выводит имя пользователя из email, когда оно не задано явно.
// Если локальная часть email (до '@') длиной от 3 символов — берутся первые
// два символа email, иначе первый символ.
func DeriveUsername(email string) string {
	if email == "" {
		return ""
	}
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	if len(local) >= 3 && len(email) >= 2 {
		return email[:2]
	}
	return email[:1]
}
