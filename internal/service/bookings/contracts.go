package bookings

import (
	"context"
	"time"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher интерфейс для публикации событий в брокер
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, payload any) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
