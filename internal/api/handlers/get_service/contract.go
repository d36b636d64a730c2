package get_service

import (
	"context"

	"github.com/barberx/BarberX-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	GetByID(ctx context.Context, id string) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
