package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"provider_order_id",
	"provider_payment_id",
	"amount",
	"currency",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платеж в статусе created
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"id",
			"booking_id",
			"provider_order_id",
			"provider_payment_id",
			"amount",
			"currency",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			p.ID,
			p.BookingID,
			p.ProviderOrderID,
			p.ProviderPaymentID,
			p.Amount,
			p.Currency,
			p.Status,
			p.CreatedAt,
			p.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByProviderOrderID получает платеж по ID заказа у провайдера
func (r *Repository) GetByProviderOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"provider_order_id": orderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderOrderID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.BookingID,
		&p.ProviderOrderID,
		&p.ProviderPaymentID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderOrderID - scan payment: %v", ErrScanRow, err)
	}

	return &p, nil
}

// MarkSettled переводит платеж в paid (из created или failed) либо в failed (из created).
// Повторный вебхук получает ErrStatusChanged.
func (r *Repository) MarkSettled(ctx context.Context, orderID string, status domain.PaymentStatus, providerPaymentID *string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("provider_payment_id", providerPaymentID).
		Set("updated_at", now).
		Where(squirrel.Eq{"provider_order_id": orderID}).
		Where(squirrel.Eq{"status": status.SettledFrom()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSettled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSettled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSettled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// UpsertPaid привязывает оплаченный заказ к подтвержденному бронированию.
// Если заказа еще нет (подтверждение пришло раньше вебхука), создает запись.
func (r *Repository) UpsertPaid(ctx context.Context, p *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"id",
			"booking_id",
			"provider_order_id",
			"provider_payment_id",
			"amount",
			"currency",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			p.ID,
			p.BookingID,
			p.ProviderOrderID,
			p.ProviderPaymentID,
			p.Amount,
			p.Currency,
			domain.PaymentPaid,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix(`ON CONFLICT (provider_order_id) DO UPDATE SET
			booking_id = EXCLUDED.booking_id,
			provider_payment_id = COALESCE(EXCLUDED.provider_payment_id, payments.provider_payment_id),
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertPaid - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertPaid - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
