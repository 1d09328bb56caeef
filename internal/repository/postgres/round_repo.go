package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// RoundRepo реализует repository.RoundRepository
type RoundRepo struct {
	db *gorm.DB
}

// NewRoundRepo создает новый репозиторий раундов
func NewRoundRepo(db *gorm.DB) *RoundRepo {
	return &RoundRepo{db: db}
}

// Create сохраняет раунд вместе с его вопросами в одной транзакции.
// GORM создает связанные RoundQuestions через ассоциацию.
func (r *RoundRepo) Create(round *entity.Round) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(round).Error
	})
}

// GetByID возвращает раунд с вопросами, упорядоченными по position
func (r *RoundRepo) GetByID(id uint) (*entity.Round, error) {
	var round entity.Round
	err := r.db.
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("round_questions.position")
		}).
		First(&round, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &round, nil
}

// RecordAnswer записывает ответ и сдвигает current_index в одной транзакции.
// Оптимистическая проверка current_index в WHERE сериализует конкурентные
// записи по одному раунду: из двух одновременных submit проходит одна,
// вторая получает ErrConflict.
func (r *RoundRepo) RecordAnswer(roundID uint, expectedIndex int, answer *entity.RoundQuestion, newStatus entity.RoundStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Round{}).
			Where("id = ? AND current_index = ? AND status = ?",
				roundID, expectedIndex, entity.RoundStatusInProgress).
			Updates(map[string]interface{}{
				"current_index": expectedIndex + 1,
				"status":        newStatus,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Либо раунд не существует/не активен, либо индекс уже сдвинут
			// конкурентным запросом.
			return apperrors.ErrConflict
		}

		res = tx.Model(&entity.RoundQuestion{}).
			Where("round_id = ? AND position = ? AND answered_at IS NULL", roundID, expectedIndex).
			Updates(map[string]interface{}{
				"submitted_text": answer.SubmittedText,
				"is_correct":     answer.IsCorrect,
				"answered_at":    answer.AnsweredAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrConflict
		}
		return nil
	})
}

// MarkError переводит активный раунд в терминальное состояние ERROR.
// Проверка статуса в WHERE не даёт затереть уже терминальный раунд:
// проигравший конкурентную запись запрос не должен переводить
// COMPLETED раунд в ERROR.
func (r *RoundRepo) MarkError(roundID uint) error {
	return r.db.Model(&entity.Round{}).
		Where("id = ? AND status = ?", roundID, entity.RoundStatusInProgress).
		Update("status", entity.RoundStatusError).Error
}
