package confirm_hold

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is longer than %d", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerPhone) > domain.MaxCustomerPhoneLen {
		return fmt.Errorf("%w: customer phone is longer than %d", ErrInvalidInput, domain.MaxCustomerPhoneLen)
	}

	if req.Payment != nil && strings.TrimSpace(req.Payment.ProviderOrderID) == "" {
		return fmt.Errorf("%w: payment order id is required", ErrInvalidInput)
	}

	return nil
}

// classify объясняет, почему бронирование нельзя подтвердить в момент now.
// nil означает живой холд.
func classify(b *domain.Booking, now time.Time) error {
	if b.IsDeleted() || !b.IsHold() {
		return ErrNotPending
	}
	if b.IsExpiredAt(now) {
		return ErrHoldExpired
	}
	return nil
}
