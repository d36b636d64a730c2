package events

import "time"

// Routing keys событий бронирований
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
)

// BookingCreated событие о созданном бронировании
type BookingCreated struct {
	EventID       string    `json:"eventId"`
	BookingID     string    `json:"bookingId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	ServiceID     string    `json:"serviceId"`
	ServiceName   string    `json:"serviceName"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// BookingStatusChanged событие об изменении статуса бронирования
type BookingStatusChanged struct {
	EventID    string    `json:"eventId"`
	BookingID  string    `json:"bookingId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}
