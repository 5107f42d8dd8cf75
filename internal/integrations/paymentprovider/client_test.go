package paymentprovider

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_1", user)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(45050), req.Amount)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Order{ID: "order_1", Amount: req.Amount, Currency: req.Currency, Status: "created"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_1", "secret", time.Second)
	order, err := c.CreateOrder(context.Background(), 450.50, "THB", "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
}

func TestCreateOrder_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "key_1", "secret", time.Second).CreateOrder(context.Background(), 10, "THB", "x")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestParseEvent(t *testing.T) {
	c := NewClient("http://provider", "key_1", "secret", time.Second)
	body := []byte(`{"order_id":"order_1","payment_id":"pay_1","status":"paid"}`)
	signature := hex.EncodeToString(Sign([]byte("secret"), body))

	event, err := c.ParseEvent(body, signature)
	require.NoError(t, err)
	assert.Equal(t, "order_1", event.OrderID)
	assert.Equal(t, EventStatusPaid, event.Status)

	_, err = c.ParseEvent(body, hex.EncodeToString(Sign([]byte("other"), body)))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = c.ParseEvent(body, "not-hex")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	bad := []byte(`{"order_id":"order_1","status":"refunded"}`)
	_, err = c.ParseEvent(bad, hex.EncodeToString(Sign([]byte("secret"), bad)))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
