package workinghours

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestGetByShopAndDay(t *testing.T) {
	repo, mock := newRepo(t)
	shopID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM working_hours WHERE shop_id = $1 AND day_of_week = $2")).
		WithArgs(shopID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"shop_id", "day_of_week", "open_time", "close_time", "is_closed", "updated_at"}).
			AddRow(shopID.String(), 1, "09:00:00", "18:00:00", false, now))

	wh, err := repo.GetByShopAndDay(context.Background(), shopID, 1)
	require.NoError(t, err)

	assert.True(t, wh.IsOpen())
	assert.Equal(t, types.TimeString("09:00:00"), *wh.OpenTime)
}

func TestGetByShopAndDay_MissingRowMeansClosed(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM working_hours").WillReturnRows(sqlmock.NewRows([]string{"shop_id"}))

	_, err := repo.GetByShopAndDay(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrWorkingHoursNotFound)
}

func TestReplaceForShop(t *testing.T) {
	repo, mock := newRepo(t)
	shopID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM working_hours WHERE shop_id = $1")).
		WithArgs(shopID).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO working_hours")).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ReplaceForShop(context.Background(), shopID, []*domain.WorkingHours{
		{DayOfWeek: 1, OpenTime: ptr.Ptr(types.TimeString("09:00:00")), CloseTime: ptr.Ptr(types.TimeString("18:00:00")), UpdatedAt: now},
		{DayOfWeek: 0, IsClosed: true, UpdatedAt: now},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
