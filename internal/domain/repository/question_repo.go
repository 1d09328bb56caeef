package repository

import (
	"github.com/yourusername/trivial-api/internal/domain/entity"
)

// QuestionFilter описывает необязательные фильтры выборки вопросов.
// Пустой фильтр означает "все вопросы".
type QuestionFilter struct {
	Category   *entity.Category
	Difficulty *entity.Difficulty
}

// QuestionPatch описывает частичное обновление вопроса.
// Каждое поле устанавливается независимо; nil — поле не меняется.
type QuestionPatch struct {
	Category     *entity.Category
	Difficulty   *entity.Difficulty
	QuestionText *string
}

// Empty возвращает true, если патч не меняет ни одного поля
func (p QuestionPatch) Empty() bool {
	return p.Category == nil && p.Difficulty == nil && p.QuestionText == nil
}

// QuestionRepository определяет методы для работы с вопросами и их ответами.
// Каждый вызов атомарен на уровне хранилища.
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	GetByIDs(ids []uint) ([]entity.Question, error)
	GetByFilter(filter QuestionFilter) ([]entity.Question, error)
	GetRandom(filter QuestionFilter) (*entity.Question, error)

	// GetRandomIDs возвращает случайную выборку id вопросов без повторений
	// из всего пула, не более limit штук.
	GetRandomIDs(limit int) ([]uint, error)

	// GetCorrectAnswer возвращает текст правильного ответа на вопрос
	GetCorrectAnswer(questionID uint) (string, error)

	// Update применяет патч целиком или не применяет ничего;
	// updated_at обновляется при любом успешном патче.
	Update(id uint, patch QuestionPatch) (*entity.Question, error)
	Delete(id uint) error
}
