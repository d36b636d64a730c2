package models

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse ответ с JWT токеном
type LoginResponse struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}

// AdminInfo публичные данные администратора
type AdminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
