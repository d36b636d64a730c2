package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer appointment for a single service.
// Duration, service name and price are denormalized at creation time:
// later edits to the service catalog must not shift existing windows.
type Booking struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	ServiceID       string
	StartTime       time.Time
	DurationMinutes int
	Status          BookingStatus

	// Denormalized service data for history
	ServiceName  string
	ServicePrice int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End returns the exclusive end of the booking window
func (b *Booking) End() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking occupies its slot.
// Completed and cancelled bookings are terminal and exempt from
// the overlap invariant.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking is in a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// Overlaps reports whether the booking window intersects
// [start, start+duration). Windows are half-open, so touching
// endpoints do not overlap.
func (b *Booking) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return b.StartTime.Before(end) && b.End().After(start)
}

// statusSynonyms maps the inconsistent spellings external clients send
// to canonical statuses. The legacy admin UI used Indonesian labels.
var statusSynonyms = map[string]BookingStatus{
	"pending":   StatusPending,
	"menunggu":  StatusPending,
	"confirmed": StatusConfirmed,
	"completed": StatusCompleted,
	"done":      StatusCompleted,
	"selesai":   StatusCompleted,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"batal":     StatusCancelled,
}

// ParseStatus normalizes an external status value to the closed
// enumeration. Matching is case-insensitive and accepts legacy
// synonyms; everything downstream only ever sees canonical values.
func ParseStatus(s string) (BookingStatus, bool) {
	status, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(s))]
	return status, ok
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода, исключительно (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
	Limit           uint64         // 0 = без ограничения
}
