package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 150
	MaxCustomerNameLength     = 150
	MaxCustomerPhoneLength    = 32
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слот
// Используется при сканировании пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список терминальных статусов
// Исключены из проверки пересечений: их слоты сразу доступны повторно
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
