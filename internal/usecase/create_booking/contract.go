package create_booking

import (
	"context"
	"time"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListActiveStartingBefore(ctx context.Context, before time.Time) ([]*domain.Booking, error)
}

// ServiceCatalog интерфейс каталога услуг (репозиторий или кэш над ним)
type ServiceCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
