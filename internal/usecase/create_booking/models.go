package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string    // Имя клиента
	CustomerPhone string    // Телефон клиента
	ServiceID     string    // ID услуги из каталога
	StartTime     time.Time // Абсолютное время начала
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string    // ID созданного бронирования
	CustomerName    string    // Имя клиента
	CustomerPhone   string    // Телефон клиента
	ServiceID       string    // ID услуги
	StartTime       time.Time // Время начала
	EndTime         time.Time // Время окончания (start + duration)
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования (всегда pending)

	// Денормализованные данные услуги
	ServiceName  string // Название услуги
	ServicePrice int64  // Цена услуги

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
