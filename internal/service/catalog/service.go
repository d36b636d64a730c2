package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	serviceRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
	"github.com/barberx/BarberX-BookingService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	cache       CacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
// cache может быть nil - тогда инвалидация не выполняется
func NewService(
	serviceRepo ServiceRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List возвращает все услуги каталога, отсортированные по имени
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services")

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%s", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q, price=%d, duration=%d",
		req.Name, req.Price, req.Duration)

	svc := req.ToDomainService()
	if err := s.validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrDuplicateName) {
			s.logger.Warn("Create: service name=%q already exists", req.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
// Бронирования с денормализованными данными услуги не пересчитываются
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	req.ApplyTo(svc)
	if err := s.validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, svc)
	if err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			s.logger.Warn("Update: service id=%s not found during update", id)
			return nil, ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrDuplicateName):
			s.logger.Warn("Update: service name=%q already exists", svc.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(id)

	s.logger.Info("Update: successfully updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу из каталога
// Существующие бронирования сохраняют денормализованные имя и цену
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting service id=%s", id)

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%s not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(id)

	s.logger.Info("Delete: successfully deleted service id=%s", id)
	return nil
}

// validateService проверяет бизнес-правила каталога
func (s *Service) validateService(svc *domain.Service) error {
	name := strings.TrimSpace(svc.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if svc.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if svc.Duration > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration is too long", ErrInvalidInput)
	}
	svc.Name = name
	return nil
}

func (s *Service) invalidate(id string) {
	if s.cache != nil {
		s.cache.Invalidate(id)
	}
}
