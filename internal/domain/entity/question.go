package entity

import (
	"fmt"
	"time"

	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// Category представляет категорию вопроса (закрытое множество строковых значений)
type Category string

// Допустимые категории вопросов
const (
	CategoryGeography     Category = "geography"
	CategoryHistory       Category = "history"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryLiterature    Category = "literature"
	CategoryEntertainment Category = "entertainment"
	CategoryArt           Category = "art"
	CategoryMusic         Category = "music"
	CategoryTechnology    Category = "technology"
	CategoryFood          Category = "food"
)

// Difficulty представляет сложность вопроса
type Difficulty string

// Допустимые уровни сложности
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Categories возвращает все допустимые категории в каноническом порядке
func Categories() []Category {
	return []Category{
		CategoryGeography, CategoryHistory, CategoryScience, CategorySports,
		CategoryLiterature, CategoryEntertainment, CategoryArt, CategoryMusic,
		CategoryTechnology, CategoryFood,
	}
}

// Difficulties возвращает все допустимые уровни сложности
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// IsValid проверяет, входит ли значение в множество допустимых категорий
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsValid проверяет, входит ли значение в множество допустимых сложностей
func (d Difficulty) IsValid() bool {
	for _, known := range Difficulties() {
		if d == known {
			return true
		}
	}
	return false
}

// ParseCategory валидирует строку как категорию.
// Неизвестное значение — ошибка валидации.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q: %w", s, apperrors.ErrValidation)
	}
	return c, nil
}

// ParseDifficulty валидирует строку как сложность
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown difficulty %q: %w", s, apperrors.ErrValidation)
	}
	return d, nil
}

// Question представляет вопрос в пуле
type Question struct {
	ID           uint       `gorm:"primaryKey" json:"question_id"`
	Category     Category   `gorm:"size:30;not null;index:idx_questions_category_difficulty" json:"category"`
	Difficulty   Difficulty `gorm:"size:10;not null;index:idx_questions_category_difficulty" json:"difficulty"`
	QuestionText string     `gorm:"size:500;not null" json:"question_text"`
	Answers      []Answer   `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"` // Скрыто от клиента
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectAnswer возвращает текст правильного ответа, если ответы загружены
func (q *Question) CorrectAnswer() (string, bool) {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a.AnswerText, true
		}
	}
	return "", false
}

// Answer представляет вариант ответа на вопрос
type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"answer_id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	AnswerText string `gorm:"size:500;not null" json:"answer_text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
