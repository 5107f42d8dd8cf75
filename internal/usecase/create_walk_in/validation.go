package create_walk_in

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorShopID == uuid.Nil {
		return fmt.Errorf("%w: actor shop is required", ErrInvalidInput)
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.CustomerName == "" || utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be 1..%d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerPhone == "" || utf8.RuneCountInString(req.CustomerPhone) > domain.MaxCustomerPhoneLen {
		return fmt.Errorf("%w: customer phone must be 1..%d characters", ErrInvalidInput, domain.MaxCustomerPhoneLen)
	}

	return nil
}
