package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Transition(ctx context.Context, req *models.TransitionRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func patch(svc *mockService, shopID *uuid.UUID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+uuid.NewString()+"/status", strings.NewReader(body))
	if shopID != nil {
		req.Header.Set(middleware.HeaderShopID, shopID.String())
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Transition(t *testing.T) {
	shopID := uuid.New()
	svc := &mockService{}
	svc.On("Transition", mock.Anything, mock.MatchedBy(func(req *models.TransitionRequest) bool {
		return req.ActorShopID == shopID && req.Status == "seated"
	})).Return(&models.BookingResponse{Status: "seated"}, nil)

	rec := patch(svc, &shopID, `{"status":"seated"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"seated"`)
}

func TestHandle_Rejections(t *testing.T) {
	shopID := uuid.New()

	assert.Equal(t, http.StatusUnauthorized, patch(&mockService{}, nil, `{"status":"seated"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(&mockService{}, &shopID, `{"status":"confirmed"}`).Code)

	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: completed bookings are read-only", bookings.ErrIllegalTransition), http.StatusConflict},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrSubscriptionInactive, http.StatusPaymentRequired},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := &mockService{}
		svc.On("Transition", mock.Anything, mock.Anything).Return(nil, tt.err)

		assert.Equal(t, tt.status, patch(svc, &shopID, `{"status":"canceled"}`).Code, tt.err.Error())
	}
}

func TestHandle_IllegalTransitionNamesCurrentState(t *testing.T) {
	shopID := uuid.New()
	svc := &mockService{}
	svc.On("Transition", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: completed bookings are read-only", bookings.ErrIllegalTransition))

	rec := patch(svc, &shopID, `{"status":"seated"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "completed bookings are read-only")
}
