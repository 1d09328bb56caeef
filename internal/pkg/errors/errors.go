package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, запрос результата
	// незавершённого раунда или параллельное изменение одного раунда).
	ErrConflict = errors.New("resource state conflict")

	// ErrOutOfSequence используется, когда ответ отправлен не на текущий вопрос раунда.
	// Раунд допускает только строгое движение вперёд: без пропусков и повторных ответов.
	ErrOutOfSequence = errors.New("answer out of sequence")

	// ErrStore используется для фатальных ошибок хранилища.
	ErrStore = errors.New("store failure")
)
