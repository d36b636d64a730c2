package create_booking

import (
	"time"

	createBooking "github.com/barberx/BarberX-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	ServiceID     string `json:"serviceId"`
	StartTime     string `json:"startTime"` // RFC 3339, "2025-11-24T10:00:00Z"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	ServiceID       string `json:"serviceId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	ServicePrice    int64  `json:"servicePrice"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 с временем начала занятого слота
type ConflictResponse struct {
	Message      string `json:"message"`
	ConflictTime string `json:"conflictTime"` // RFC 3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		ServiceID:       resp.ServiceID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
