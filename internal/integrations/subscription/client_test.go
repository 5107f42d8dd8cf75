package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

func TestClient_CheckAccess(t *testing.T) {
	allowed := uuid.New()
	missing := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/shops/" + allowed.String() + "/access":
			_ = json.NewEncoder(w).Encode(Access{Allowed: true})
		case "/internal/shops/" + missing.String() + "/access":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.NewNop())

	access, err := c.CheckAccess(context.Background(), allowed)
	require.NoError(t, err)
	assert.True(t, access.Allowed)

	access, err = c.CheckAccess(context.Background(), missing)
	require.NoError(t, err)
	assert.False(t, access.Allowed)

	_, err = c.CheckAccess(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

type countingChecker struct {
	calls  int
	access *Access
	err    error
}

func (c *countingChecker) CheckAccess(context.Context, uuid.UUID) (*Access, error) {
	c.calls++
	return c.access, c.err
}

func TestCachedChecker_HitSkipsUpstream(t *testing.T) {
	db, mock := redismock.NewClientMock()
	shopID := uuid.New()
	next := &countingChecker{}

	mock.ExpectGet(cacheKey(shopID)).SetVal(`{"allowed":false,"reason":"expired"}`)

	access, err := NewCachedChecker(next, db, time.Minute, logger.NewNop()).CheckAccess(context.Background(), shopID)
	require.NoError(t, err)

	assert.False(t, access.Allowed)
	assert.Equal(t, "expired", access.Reason)
	assert.Zero(t, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedChecker_MissStoresDecision(t *testing.T) {
	db, mock := redismock.NewClientMock()
	shopID := uuid.New()
	next := &countingChecker{access: &Access{Allowed: true}}

	mock.ExpectGet(cacheKey(shopID)).RedisNil()
	mock.ExpectSet(cacheKey(shopID), []byte(`{"allowed":true}`), time.Minute).SetVal("OK")

	access, err := NewCachedChecker(next, db, time.Minute, logger.NewNop()).CheckAccess(context.Background(), shopID)
	require.NoError(t, err)

	assert.True(t, access.Allowed)
	assert.Equal(t, 1, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedChecker_RedisDownFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	shopID := uuid.New()
	next := &countingChecker{access: &Access{Allowed: true}}

	mock.ExpectGet(cacheKey(shopID)).SetErr(errors.New("connection refused"))
	mock.ExpectSet(cacheKey(shopID), []byte(`{"allowed":true}`), time.Minute).SetErr(errors.New("connection refused"))

	access, err := NewCachedChecker(next, db, time.Minute, logger.NewNop()).CheckAccess(context.Background(), shopID)
	require.NoError(t, err)
	assert.True(t, access.Allowed)
}
