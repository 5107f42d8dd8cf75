package create_hold

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

const maxIdempotencyKeyLength = 255

// validateRequest нормализует и валидирует поля, которые не проверяет сервис резервирования
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is longer than %d", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if utf8.RuneCountInString(req.CustomerPhone) > domain.MaxCustomerPhoneLen {
		return fmt.Errorf("%w: customer phone is longer than %d", ErrInvalidInput, domain.MaxCustomerPhoneLen)
	}

	if req.IdempotencyKey != nil {
		key := strings.TrimSpace(*req.IdempotencyKey)
		req.IdempotencyKey = &key
		if key == "" || len(key) > maxIdempotencyKeyLength {
			return fmt.Errorf("%w: idempotency key must be 1..%d characters", ErrInvalidInput, maxIdempotencyKeyLength)
		}
	}

	return nil
}
