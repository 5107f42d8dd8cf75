package workinghours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/psqlbuilder"
)

// Repository репозиторий рабочих часов магазинов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByShopAndDay получает рабочие часы магазина на день недели (0 = воскресенье)
func (r *Repository) GetByShopAndDay(ctx context.Context, shopID uuid.UUID, dayOfWeek int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"shop_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_closed",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopAndDay - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ShopID,
		&wh.DayOfWeek,
		&wh.OpenTime,
		&wh.CloseTime,
		&wh.IsClosed,
		&wh.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopAndDay - scan working hours: %v", ErrScanRow, err)
	}

	return &wh, nil
}

// GetByShop получает рабочие часы магазина на всю неделю
func (r *Repository) GetByShop(ctx context.Context, shopID uuid.UUID) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"shop_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_closed",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		var wh domain.WorkingHours
		if err := rows.Scan(&wh.ShopID, &wh.DayOfWeek, &wh.OpenTime, &wh.CloseTime, &wh.IsClosed, &wh.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByShop - scan row: %v", ErrScanRow, err)
		}
		week = append(week, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByShop - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

// ReplaceForShop заменяет рабочие часы магазина целиком.
// Вызывать внутри транзакции, иначе между DELETE и INSERT магазин выглядит закрытым.
func (r *Repository) ReplaceForShop(ctx context.Context, shopID uuid.UUID, week []*domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceForShop - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForShop - execute delete: %v", ErrExecQuery, err)
	}

	if len(week) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("working_hours").
		Columns("shop_id", "day_of_week", "open_time", "close_time", "is_closed", "updated_at")
	for _, wh := range week {
		insert = insert.Values(shopID, wh.DayOfWeek, wh.OpenTime, wh.CloseTime, wh.IsClosed, wh.UpdatedAt)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForShop - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForShop - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
