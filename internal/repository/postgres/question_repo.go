package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	"github.com/yourusername/trivial-api/internal/domain/repository"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// applyFilter добавляет условия фильтрации по категории и сложности
func applyFilter(tx *gorm.DB, filter repository.QuestionFilter) *gorm.DB {
	if filter.Category != nil {
		tx = tx.Where("category = ?", *filter.Category)
	}
	if filter.Difficulty != nil {
		tx = tx.Where("difficulty = ?", *filter.Difficulty)
	}
	return tx
}

// Create создает новый вопрос вместе с вариантами ответов
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch создает пакет вопросов (используется при загрузке пула)
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByIDs возвращает вопросы по списку ID (порядок не гарантируется)
func (r *QuestionRepo) GetByIDs(ids []uint) ([]entity.Question, error) {
	if len(ids) == 0 {
		return []entity.Question{}, nil
	}
	var questions []entity.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// GetByFilter возвращает вопросы по необязательным фильтрам.
// Пустой фильтр возвращает все вопросы; пустой результат — не ошибка.
func (r *QuestionRepo) GetByFilter(filter repository.QuestionFilter) ([]entity.Question, error) {
	questions := []entity.Question{}
	err := applyFilter(r.db, filter).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetRandom возвращает один случайный вопрос, удовлетворяющий фильтру
func (r *QuestionRepo) GetRandom(filter repository.QuestionFilter) (*entity.Question, error) {
	var question entity.Question
	err := applyFilter(r.db.Model(&entity.Question{}), filter).
		Order("RANDOM()").
		Take(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetRandomIDs возвращает случайную выборку id вопросов без повторений.
// Выбираются только вопросы с правильным ответом: вопрос без ответов
// допустим в пуле, но в раунде на него невозможно ответить.
// Для текущих объёмов пула ORDER BY RANDOM() достаточно; при росте
// таблицы стоит перейти на TABLESAMPLE.
func (r *QuestionRepo) GetRandomIDs(limit int) ([]uint, error) {
	var ids []uint
	answerable := r.db.Model(&entity.Answer{}).
		Select("question_id").
		Where("is_correct = ?", true)
	err := r.db.Model(&entity.Question{}).
		Where("id IN (?)", answerable).
		Order("RANDOM()").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetCorrectAnswer возвращает текст правильного ответа на вопрос
func (r *QuestionRepo) GetCorrectAnswer(questionID uint) (string, error) {
	var answer entity.Answer
	err := r.db.Where("question_id = ? AND is_correct = ?", questionID, true).
		Take(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return answer.AnswerText, nil
}

// Update применяет частичный патч к вопросу в одной транзакции.
// Либо применяются все поля патча, либо состояние не меняется.
func (r *QuestionRepo) Update(id uint, patch repository.QuestionPatch) (*entity.Question, error) {
	var updated entity.Question

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var question entity.Question
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if patch.Category != nil {
			updates["category"] = *patch.Category
		}
		if patch.Difficulty != nil {
			updates["difficulty"] = *patch.Difficulty
		}
		if patch.QuestionText != nil {
			updates["question_text"] = *patch.QuestionText
		}

		// GORM сам обновит updated_at при Updates
		if err := tx.Model(&question).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет вопрос вместе с его ответами.
// Вопрос, уже попавший в какой-либо раунд, удалить нельзя: раунды хранят
// ссылки на вопросы, и история раундов не должна терять данные.
func (r *QuestionRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.Answer{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Question{}, id)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return fmt.Errorf("question %d is referenced by existing rounds: %w", id, apperrors.ErrConflict)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
