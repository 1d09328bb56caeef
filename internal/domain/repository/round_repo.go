package repository

import (
	"github.com/yourusername/trivial-api/internal/domain/entity"
)

// RoundRepository определяет методы для работы с раундами.
// Мутации одного раунда сериализуются на уровне хранилища:
// RecordAnswer выполняет транзакционное обновление с оптимистической
// проверкой current_index, так что из двух конкурентных записей
// проходит ровно одна.
type RoundRepository interface {
	// Create сохраняет раунд вместе с его вопросами в одной транзакции
	Create(round *entity.Round) error

	// GetByID возвращает раунд с вопросами, упорядоченными по position
	GetByID(id uint) (*entity.Round, error)

	// RecordAnswer записывает ответ на позицию expectedIndex и сдвигает
	// current_index на единицу, переводя раунд в newStatus.
	// Возвращает apperrors.ErrConflict, если current_index уже изменился
	// (конкурентная запись) или раунд не IN_PROGRESS.
	RecordAnswer(roundID uint, expectedIndex int, answer *entity.RoundQuestion, newStatus entity.RoundStatus) error

	// MarkError переводит раунд в терминальное состояние ERROR
	MarkError(roundID uint) error
}
