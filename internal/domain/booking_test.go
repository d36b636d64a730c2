package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_End(t *testing.T) {
	start := time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, DurationMinutes: 45}

	assert.Equal(t, time.Date(2025, 11, 24, 10, 45, 0, 0, time.UTC), b.End())
}

func TestBooking_Overlaps(t *testing.T) {
	start := time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC)
	existing := &Booking{StartTime: start, DurationMinutes: 45} // 10:00-10:45

	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{
			name:     "inside existing window",
			start:    start.Add(30 * time.Minute), // 10:30-11:00
			duration: 30,
			want:     true,
		},
		{
			name:     "starts exactly at existing end",
			start:    start.Add(45 * time.Minute), // 10:45-11:15
			duration: 30,
			want:     false,
		},
		{
			name:     "ends exactly at existing start",
			start:    start.Add(-30 * time.Minute), // 09:30-10:00
			duration: 30,
			want:     false,
		},
		{
			name:     "covers existing window entirely",
			start:    start.Add(-15 * time.Minute), // 09:45-11:45
			duration: 120,
			want:     true,
		},
		{
			name:     "well before",
			start:    start.Add(-2 * time.Hour),
			duration: 30,
			want:     false,
		},
		{
			name:     "well after",
			start:    start.Add(2 * time.Hour),
			duration: 30,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.start, tt.duration))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want BookingStatus
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"PENDING", StatusPending, true},
		{"Confirmed", StatusConfirmed, true},
		{"completed", StatusCompleted, true},
		{"DONE", StatusCompleted, true},
		{"SELESAI", StatusCompleted, true},
		{"selesai", StatusCompleted, true},
		{"cancelled", StatusCancelled, true},
		{"CANCELED", StatusCancelled, true},
		{"BATAL", StatusCancelled, true},
		{"  confirmed  ", StatusConfirmed, true},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
