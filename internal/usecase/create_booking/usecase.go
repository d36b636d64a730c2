package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	"github.com/barberx/BarberX-BookingService/internal/infra/events"
	serviceRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
)

// UseCase use case создания бронирования с проверкой конфликтов слота
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      ServiceCatalog
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher может быть nil - тогда события не публикуются
func NewUseCase(
	bookingRepo BookingRepository,
	catalog ServiceCatalog,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Последовательность проверок (fail-fast, до первой ошибки, без побочных
// эффектов на любом отказе):
//  1. Обязательные поля
//  2. Существование услуги в каталоге
//  3. Время начала не в прошлом
//  4. Пересечение с активными бронированиями
//
// Шаги 4-5 (скан конфликтов + вставка) выполняются в сериализуемой
// транзакции с блокировкой строк-кандидатов: из двух конкурентных
// запросов на одно окно фиксируется ровно один, второй повторяет
// проверку и получает ConflictError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%q, service=%s, start=%s",
		req.CustomerName, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация обязательных полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Время начала не должно быть строго раньше "сейчас"
	now := uc.timeProvider.Now()
	if req.StartTime.Before(now) {
		uc.logger.Warn("CreateBooking: start time %s is in the past (now=%s)",
			req.StartTime.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, ErrTimeInPast
	}

	// 4. Вычисляем окно нового бронирования: [start, start+duration)
	newStart := req.StartTime.UTC()
	newEnd := newStart.Add(time.Duration(service.Duration) * time.Minute)

	var result *domain.Booking

	// 5. Скан конфликтов и вставка под сериализуемой транзакцией
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Кандидаты: активные бронирования, начинающиеся раньше newEnd
		// (начинающиеся в newEnd и позже пересекаться не могут)
		candidates, err := uc.bookingRepo.ListActiveStartingBefore(txCtx, newEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list active bookings: %v", err)
			return fmt.Errorf("%w: failed to list active bookings: %v", ErrInternal, err)
		}

		// 5.2. Проверяем пересечение. Окно каждого кандидата считается по
		// его собственной длительности, зафиксированной при создании,
		// а не по длительности новой услуги. Граничные касания не конфликт.
		if conflict := findOverlap(newStart, newEnd, candidates); conflict != nil {
			uc.logger.Warn("CreateBooking: slot [%s, %s) conflicts with booking id=%s at %s",
				newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339),
				conflict.ID, conflict.StartTime.Format(time.RFC3339))
			return &ConflictError{ConflictingStart: conflict.StartTime}
		}

		// 5.3. Создаем бронирование со статусом pending и денормализацией
		// данных услуги: последующие правки каталога не двигают это окно
		booking := &domain.Booking{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			ServiceID:       service.ID,
			StartTime:       newStart,
			DurationMinutes: service.Duration,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s [%s, %s)",
		result.ID, newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339))

	// Публикуем событие после коммита, fire-and-forget
	uc.publishCreated(ctx, result)

	return &Response{
		ID:              result.ID,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		ServiceID:       result.ServiceID,
		StartTime:       result.StartTime,
		EndTime:         result.End(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// publishCreated публикует событие о создании бронирования
// Ошибка публикации логируется и не влияет на результат запроса
func (uc *UseCase) publishCreated(ctx context.Context, b *domain.Booking) {
	if uc.publisher == nil {
		return
	}

	event := events.BookingCreated{
		EventID:       uuid.NewString(),
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		StartTime:     b.StartTime,
		EndTime:       b.End(),
		OccurredAt:    uc.timeProvider.Now(),
	}

	if err := uc.publisher.PublishJSON(ctx, events.KeyBookingCreated, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish %s for booking id=%s: %v",
			events.KeyBookingCreated, b.ID, err)
	}
}
