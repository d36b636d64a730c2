package domain

import "time"

// Service represents an entry in the barbershop service catalog
type Service struct {
	ID          string
	Name        string
	Description *string
	Price       int64 // smallest currency unit
	Duration    int   // minutes, > 0
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Admin represents a dashboard administrator account
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
