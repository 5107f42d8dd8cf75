package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation = "23P01"
	pqUniqueViolation    = "23505"
)

var bookingColumns = []string{
	"id",
	"shop_id",
	"staff_id",
	"service_id",
	"service_ids",
	"customer_name",
	"customer_phone",
	"start_time",
	"end_time",
	"status",
	"expires_at",
	"is_walk_in",
	"total_price",
	"total_duration_minutes",
	"idempotency_key",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронирование.
// Пересечение с живым бронированием того же мастера отсекается exclusion constraint
// и возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"shop_id",
			"staff_id",
			"service_id",
			"service_ids",
			"customer_name",
			"customer_phone",
			"start_time",
			"end_time",
			"status",
			"expires_at",
			"is_walk_in",
			"total_price",
			"total_duration_minutes",
			"idempotency_key",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.ShopID,
			booking.StaffID,
			booking.ServiceID,
			uuidArray(booking.ServiceIDs),
			booking.CustomerName,
			booking.CustomerPhone,
			booking.StartTime.UTC(),
			booking.EndTime.UTC(),
			booking.Status,
			booking.ExpiresAt,
			booking.IsWalkIn,
			booking.TotalPrice,
			booking.TotalDurationMinutes,
			booking.IdempotencyKey,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqExclusionViolation:
				return nil, ErrSlotNotAvailable
			case pqUniqueViolation:
				if pqErr.Constraint == "bookings_idempotency_key_key" {
					return nil, ErrDuplicateIdempotencyKey
				}
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID, в том числе удаленное
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIdempotencyKey получает холд по ключу идемпотентности
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByStaffStartingBetween возвращает неудаленные бронирования мастера,
// начало которых попадает в интервал (from, to). Фильтрация по живости выполняется вызывающим кодом.
func (r *Repository) ListByStaffStartingBetween(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.Gt{"start_time": from.UTC()}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffStartingBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffStartingBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByShop получает бронирования магазина за период (календарь на день)
func (r *Repository) ListByShop(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"shop_id": filter.ShopID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.GtOrEq{"start_time": filter.From.UTC()}).
		Where(squirrel.Lt{"start_time": filter.To.UTC()})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else {
		statuses := make([]string, len(domain.CalendarStatuses))
		for i, s := range domain.CalendarStatuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "staff_id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ReleaseExpiredHolds помечает удаленными просроченные холды мастера, пересекающие окно.
// Exclusion constraint не видит expires_at, поэтому такие холды освобождаются перед вставкой.
func (r *Repository) ReleaseExpiredHolds(ctx context.Context, staffID uuid.UUID, start, end, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		Where(squirrel.Lt{"start_time": end.UTC()}).
		Where(squirrel.Gt{"end_time": start.UTC()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpiredHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpiredHolds - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}

// Confirm переводит живой холд в confirmed.
// Запись проходит только если бронирование все еще pending_payment, не удалено и не истекло.
func (r *Repository) Confirm(ctx context.Context, id uuid.UUID, customerName, customerPhone string, now time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("expires_at", nil).
		Set("customer_name", customerName).
		Set("customer_phone", customerPhone).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.Gt{"expires_at": now}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// UpdateStatus меняет статус, только если текущий статус равен from
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// SoftDeleteExpiredHolds одним запросом помечает удаленными все просроченные холды.
// Условие на статус проверяется в момент записи, поэтому подтвержденный холд не затрагивается.
func (r *Repository) SoftDeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(expiredHoldsPredicate(now)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteExpiredHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteExpiredHolds - execute update: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// CountExpiredHolds считает холды, которые удалит следующий проход SoftDeleteExpiredHolds
func (r *Repository) CountExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(expiredHoldsPredicate(now)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountExpiredHolds - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountExpiredHolds - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func expiredHoldsPredicate(now time.Time) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"status": domain.StatusPendingPayment},
		squirrel.Eq{"deleted_at": nil},
		squirrel.Lt{"expires_at": now},
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		serviceIDs pq.StringArray
	)

	err := row.Scan(
		&booking.ID,
		&booking.ShopID,
		&booking.StaffID,
		&booking.ServiceID,
		&serviceIDs,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ExpiresAt,
		&booking.IsWalkIn,
		&booking.TotalPrice,
		&booking.TotalDurationMinutes,
		&booking.IdempotencyKey,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ServiceIDs, err = parseUUIDs(serviceIDs)
	if err != nil {
		return nil, err
	}

	booking.StartTime = booking.StartTime.UTC()
	booking.EndTime = booking.EndTime.UTC()

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
