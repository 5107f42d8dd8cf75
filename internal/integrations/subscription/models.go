package subscription

// Access решение о допуске магазина к созданию бронирований
type Access struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// ErrorResponse модель ошибки от сервиса подписок
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
