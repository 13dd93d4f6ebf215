package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/dto"
	"github.com/vbelyaev/escrowd/pkg/auth"
)

func NewMock(t *testing.T) (*OrderHandler, *MockService, *MockSweeper) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	sweeper := NewMockSweeper(ctrl)
	handler := New(service, sweeper)
	defer ctrl.Finish()
	return handler, service, sweeper
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, 1))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateOrderHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful creation",
			body: `{"seller_id":2,"listing_id":10,"amount":10000}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, 2, 10, int64(10000)).
					Return(&domain.Order{ID: 5, ListingID: 10, BuyerID: 1, SellerID: 2, Amount: 10000, Status: domain.OrderPendingDelivery}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"seller_id":invalid}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient funds",
			body: `{"seller_id":2,"listing_id":10,"amount":10000}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, 2, 10, int64(10000)).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Self purchase",
			body: `{"seller_id":1,"listing_id":10,"amount":10000}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, 1, 10, int64(10000)).
					Return(nil, domain.ErrValidation)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodPost, "/api/user/orders", tt.body)
			w := httptest.NewRecorder()
			handler.CreateOrder(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.OrderResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 5, body.ID)
				assert.Equal(t, string(domain.OrderPendingDelivery), body.Status)
			}
		})
	}
}

func TestGetOrderHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		orderID      string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:    "Successful retrieval",
			orderID: "5",
			prepareMock: func() {
				service.EXPECT().
					GetOrder(gomock.Any(), 5, 1).
					Return(&domain.Order{ID: 5, BuyerID: 1, SellerID: 2, Amount: 10000, Status: domain.OrderCompleted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid order id",
			orderID:      "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "Not a participant",
			orderID: "5",
			prepareMock: func() {
				service.EXPECT().GetOrder(gomock.Any(), 5, 1).Return(nil, domain.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:    "Order not found",
			orderID: "5",
			prepareMock: func() {
				service.EXPECT().GetOrder(gomock.Any(), 5, 1).Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodGet, "/api/user/orders/"+tt.orderID, ""), "id", tt.orderID)
			w := httptest.NewRecorder()
			handler.GetOrder(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetOrdersHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().
		ListOrders(gomock.Any(), 1, 50, 0).
		Return([]domain.Order{{ID: 5, BuyerID: 1}, {ID: 6, SellerID: 1}}, nil)

	r := authedRequest(http.MethodGet, "/api/user/orders", "")
	w := httptest.NewRecorder()
	handler.GetOrders(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.OrderResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Len(t, body, 2)
}

func TestConfirmDeliveryHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful confirmation",
			prepareMock: func() {
				service.EXPECT().
					ConfirmDelivery(gomock.Any(), 5, 1).
					Return(&domain.Order{ID: 5, BuyerID: 1, Status: domain.OrderCompleted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Order already resolved",
			prepareMock: func() {
				service.EXPECT().ConfirmDelivery(gomock.Any(), 5, 1).Return(nil, domain.ErrInvalidState)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/user/orders/5/confirm", ""), "id", "5")
			w := httptest.NewRecorder()
			handler.ConfirmDelivery(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestCancelOrderHandler(t *testing.T) {
	handler, service, _ := NewMock(t)

	service.EXPECT().
		Cancel(gomock.Any(), 5, gomock.Any(), "seller unresponsive").
		Return(&domain.Order{ID: 5, Status: domain.OrderCancelled}, nil)

	r := withURLParam(authedRequest(http.MethodPost, "/api/moderator/orders/5/cancel", `{"reason":"seller unresponsive"}`), "id", "5")
	w := httptest.NewRecorder()
	handler.CancelOrder(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.OrderResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Equal(t, string(domain.OrderCancelled), body.Status)
}

func TestRunAutoReleaseHandler(t *testing.T) {
	handler, _, sweeper := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Sweep reports released count",
			prepareMock: func() {
				sweeper.EXPECT().RunOnce(gomock.Any()).Return(3, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Sweep failure",
			prepareMock: func() {
				sweeper.EXPECT().RunOnce(gomock.Any()).Return(0, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodPost, "/api/orders/auto-release", "")
			w := httptest.NewRecorder()
			handler.RunAutoRelease(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.SweepResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 3, body.Released)
			}
		})
	}
}
