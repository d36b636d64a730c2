package models

import (
	"errors"
	"time"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Date            *string `json:"date,omitempty"`            // Фильтр по дню "2025-11-24" (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
	Limit           uint64  `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		IncludeInactive: r.IncludeInactive,
		Limit:           r.Limit,
	}

	// Дневное окно [00:00, 00:00 следующего дня)
	if r.Date != nil {
		day, err := time.ParseInLocation(domain.DateFormat, *r.Date, time.UTC)
		if err != nil {
			return filter, ErrInvalidDate
		}
		end := day.AddDate(0, 0, 1)
		filter.StartDate = &day
		filter.EndDate = &end
	}

	if r.Status != nil {
		status, ok := domain.ParseStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	ServiceID       string `json:"serviceId"`
	StartTime       string `json:"startTime"` // ISO 8601
	EndTime         string `json:"endTime"`   // ISO 8601, start + duration
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string `json:"serviceName"`
	ServicePrice int64  `json:"servicePrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		ServiceID:       b.ServiceID,
		StartTime:       b.StartTime.Format(time.RFC3339),
		EndTime:         b.End().Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
