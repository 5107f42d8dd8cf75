package paymentprovider

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// Client клиент платежного провайдера
type Client struct {
	baseURL       string
	keyID         string
	webhookSecret []byte
	httpClient    *http.Client
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL, keyID, webhookSecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:       baseURL,
		keyID:         keyID,
		webhookSecret: []byte(webhookSecret),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder создает заказ на оплату
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency, reference string) (*Order, error) {
	body, err := json.Marshal(OrderRequest{
		Amount:    ToMinorUnits(amount),
		Currency:  currency,
		Reference: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: empty order id", ErrInvalidResponse)
	}

	return &order, nil
}

// ParseEvent проверяет HMAC-SHA256 подпись (hex) тела вебхука и разбирает событие
func (c *Client) ParseEvent(body []byte, signature string) (*Event, error) {
	if !c.VerifySignature(body, signature) {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if event.OrderID == "" || (event.Status != EventStatusPaid && event.Status != EventStatusFailed) {
		return nil, fmt.Errorf("%w: order_id=%q status=%q", ErrInvalidEvent, event.OrderID, event.Status)
	}

	return &event, nil
}

// VerifySignature сравнивает подпись за постоянное время
func (c *Client) VerifySignature(body []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil || len(c.webhookSecret) == 0 {
		return false
	}
	return hmac.Equal(expected, Sign(c.webhookSecret, body))
}

// Sign подпись тела вебхука
func Sign(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}

// ToMinorUnits переводит сумму в минимальные единицы валюты (сатанги, копейки)
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
