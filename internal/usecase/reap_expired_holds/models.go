package reap_expired_holds

// ReapResponse результат очистки
type ReapResponse struct {
	Cleaned int64
}

// CountResponse количество просроченных холдов, ожидающих очистки
type CountResponse struct {
	Count int64
}
