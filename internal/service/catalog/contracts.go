package catalog

import (
	"context"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// CacheInvalidator интерфейс инвалидации кеша услуг
type CacheInvalidator interface {
	Invalidate(id string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
