package conflictcheck

import "errors"

var (
	// ErrOverlapConflict возвращается, когда новое бронирование пересекается
	// по времени с существующим бронированием того же пользователя.
	// Это ожидаемое нарушение бизнес-правила, а не сбой системы.
	ErrOverlapConflict = errors.New("conflictcheck: booking overlaps with an existing booking")

	// ErrInternal возвращается при внутренних ошибках: сбой выборки среза
	// или некорректные значения времени в хранимых данных (нарушение
	// контракта вышестоящей валидации)
	ErrInternal = errors.New("conflictcheck: internal error")
)
