package paymentprovider

// OrderRequest запрос на создание заказа у провайдера
type OrderRequest struct {
	Amount    int64  `json:"amount"` // в минимальных единицах валюты
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

// Order заказ у провайдера
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Event событие вебхука провайдера
type Event struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"` // paid | failed
}

// Статусы событий вебхука
const (
	EventStatusPaid   = "paid"
	EventStatusFailed = "failed"
)
