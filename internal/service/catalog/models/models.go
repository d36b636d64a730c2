package models

import (
	"time"

	"github.com/barberx/BarberX-BookingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
	Duration    int     `json:"duration"` // Длительность в минутах
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// ToDomainService конвертирует request в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		ImageURL:    r.ImageURL,
	}
}

// UpdateServiceRequest запрос на частичное обновление услуги
// nil поля остаются без изменений
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// ApplyTo накладывает непустые поля запроса на domain модель
func (r *UpdateServiceRequest) ApplyTo(svc *domain.Service) {
	if r.Name != nil {
		svc.Name = *r.Name
	}
	if r.Description != nil {
		svc.Description = r.Description
	}
	if r.Price != nil {
		svc.Price = *r.Price
	}
	if r.Duration != nil {
		svc.Duration = *r.Duration
	}
	if r.ImageURL != nil {
		svc.ImageURL = r.ImageURL
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Duration    int       `json:"duration"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(svc *domain.Service) *ServiceResponse {
	if svc == nil {
		return nil
	}

	return &ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		Duration:    svc.Duration,
		ImageURL:    svc.ImageURL,
		CreatedAt:   svc.CreatedAt,
		UpdatedAt:   svc.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, svc := range services {
		if svcResp := FromDomainService(svc); svcResp != nil {
			resp.Services = append(resp.Services, *svcResp)
		}
	}

	return resp
}
