package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

// validateRequest валидирует обязательные поля запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrMissingFields)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrMissingFields)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrMissingFields)
	}
	if len(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrMissingFields)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrMissingFields)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrMissingFields)
	}

	return nil
}

// findOverlap возвращает первое активное бронирование, чье окно
// пересекается с [newStart, newEnd), или nil, если пересечений нет
//
// Предикат пересечения: existingStart < newEnd AND existingEnd > newStart
// Строгие неравенства: бронирование, заканчивающееся ровно в newStart,
// или начинающееся ровно в newEnd, конфликтом не считается
func findOverlap(newStart, newEnd time.Time, candidates []*domain.Booking) *domain.Booking {
	for _, b := range candidates {
		// Репозиторий отдает только активные, но перепроверяем статус:
		// кандидаты могли прийти из другого источника (тесты, кэш)
		if !b.IsActive() {
			continue
		}

		if b.StartTime.Before(newEnd) && b.End().After(newStart) {
			return b
		}
	}
	return nil
}
