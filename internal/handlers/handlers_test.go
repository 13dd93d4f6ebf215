package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/vbelyaev/escrowd/docs"
	audithandlers "github.com/vbelyaev/escrowd/internal/handlers/audit"
	authhandlers "github.com/vbelyaev/escrowd/internal/handlers/auth"
	disputehandlers "github.com/vbelyaev/escrowd/internal/handlers/disputes"
	ordershandlers "github.com/vbelyaev/escrowd/internal/handlers/orders"
	wallethandlers "github.com/vbelyaev/escrowd/internal/handlers/wallet"
	"github.com/vbelyaev/escrowd/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:       authhandlers.NewMockService(ctrl),
		WalletService:     wallethandlers.NewMockService(ctrl),
		DepositService:    wallethandlers.NewMockDepositService(ctrl),
		WithdrawalService: wallethandlers.NewMockWithdrawalService(ctrl),
		OrderService:      ordershandlers.NewMockService(ctrl),
		DisputeService:    disputehandlers.NewMockService(ctrl),
		AuditService:      audithandlers.NewMockService(ctrl),
	}

	h := New(services, ordershandlers.NewMockSweeper(ctrl))
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockWalletHandler := NewMockWalletHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockDisputeHandler := NewMockDisputeHandler(ctrl)
	mockAuditHandler := NewMockAuditHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().ConfirmDeposit(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().FailDeposit(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:    mockAuthHandler,
		WalletHandler:  mockWalletHandler,
		OrderHandler:   mockOrderHandler,
		DisputeHandler: mockDisputeHandler,
		AuditHandler:   mockAuditHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"POST", "/api/deposits/ref-1/confirm", http.StatusOK},
		{"POST", "/api/deposits/ref-1/fail", http.StatusOK},
		{"GET", "/api/user/wallet", http.StatusUnauthorized},
		{"GET", "/api/user/wallet/transactions", http.StatusUnauthorized},
		{"POST", "/api/user/deposits", http.StatusUnauthorized},
		{"POST", "/api/user/withdrawals", http.StatusUnauthorized},
		{"POST", "/api/user/orders", http.StatusUnauthorized},
		{"GET", "/api/user/orders", http.StatusUnauthorized},
		{"POST", "/api/user/orders/1/confirm", http.StatusUnauthorized},
		{"POST", "/api/user/orders/1/dispute", http.StatusUnauthorized},
		{"GET", "/api/user/orders/1/dispute", http.StatusUnauthorized},
		{"POST", "/api/orders/auto-release", http.StatusUnauthorized},
		{"GET", "/api/moderator/disputes", http.StatusUnauthorized},
		{"POST", "/api/moderator/disputes/1/resolve", http.StatusUnauthorized},
		{"GET", "/api/moderator/withdrawals", http.StatusUnauthorized},
		{"POST", "/api/moderator/withdrawals/1/approve", http.StatusUnauthorized},
		{"POST", "/api/moderator/orders/1/cancel", http.StatusUnauthorized},
		{"GET", "/api/moderator/audit", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
