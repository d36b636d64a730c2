package auth

import (
	"context"
	"time"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

// AdminRepository интерфейс репозитория администраторов
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
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
