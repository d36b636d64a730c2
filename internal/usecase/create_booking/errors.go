package create_booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingFields возвращается, когда не заполнены обязательные поля
	ErrMissingFields = errors.New("create_booking: missing fields")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: invalid service")

	// ErrTimeInPast возвращается, когда время начала раньше текущего
	ErrTimeInPast = errors.New("create_booking: time in past")

	// ErrSlotConflict возвращается, когда окно пересекается с активным
	// бронированием. Конкретное время конфликта несет *ConflictError.
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Единственный класс ошибок, который имеет смысл ретраить
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError ошибка пересечения с существующим активным бронированием
// Несет время начала конфликтующего бронирования, чтобы клиент мог
// показать его и предложить другие слоты
type ConflictError struct {
	ConflictingStart time.Time
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("create_booking: slot conflicts with existing booking at %s",
		e.ConflictingStart.Format(time.RFC3339))
}

// Is позволяет проверять ошибку через errors.Is(err, ErrSlotConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
