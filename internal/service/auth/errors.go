package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken возвращается при недействительном или истёкшем токене
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingFields возвращается при пустом логине или пароле
	ErrMissingFields = errors.New("username and password are required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
