package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	"github.com/barberx/BarberX-BookingService/internal/infra/events"
	bookingRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/booking"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// publisher может быть nil - тогда события не публикуются
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования на дату: указать Date = "2025-11-24"
// - Только подтвержденные: указать Status = "confirmed"
// - Включая завершённые и отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", *req.Date)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования
// Принимает статус в любом регистре и с синонимами (DONE, SELESAI -> completed)
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", id, req.Status)

	newStatus, ok := domain.ParseStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	oldStatus := booking.Status

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found during update", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if oldStatus != newStatus {
		s.publishStatusChanged(ctx, updated, oldStatus)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", id, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование безвозвратно
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}

// publishStatusChanged публикует событие об изменении статуса
// Ошибка публикации не влияет на результат операции
func (s *Service) publishStatusChanged(ctx context.Context, b *domain.Booking, oldStatus domain.BookingStatus) {
	if s.publisher == nil {
		return
	}

	event := events.BookingStatusChanged{
		EventID:    uuid.NewString(),
		BookingID:  b.ID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(b.Status),
		OccurredAt: s.timeProvider.Now().UTC(),
	}

	if err := s.publisher.PublishJSON(ctx, events.KeyBookingStatusChanged, event); err != nil {
		s.logger.Warn("publishStatusChanged: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}
