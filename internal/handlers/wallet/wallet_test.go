package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/dto"
	walletrepo "github.com/vbelyaev/escrowd/internal/repo/wallet-repo"
	"github.com/vbelyaev/escrowd/pkg/auth"
)

const ref = "7e6b2b3e-0f1c-4f9a-9f0a-1f2e3d4c5b6a"

func NewMock(t *testing.T) (*WalletHandler, *MockService, *MockDepositService, *MockWithdrawalService) {
	ctrl := gomock.NewController(t)
	walletService := NewMockService(ctrl)
	depositService := NewMockDepositService(ctrl)
	withdrawalService := NewMockWithdrawalService(ctrl)
	handler := New(walletService, depositService, withdrawalService)
	defer ctrl.Finish()
	return handler, walletService, depositService, withdrawalService
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

func TestGetWalletHandler(t *testing.T) {
	handler, walletService, _, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				walletService.EXPECT().
					GetByUserID(gomock.Any(), 1).
					Return(&domain.Wallet{ID: 1, UserID: 1, Balance: 50000}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Wallet not found",
			prepareMock: func() {
				walletService.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodGet, "/api/user/wallet", "")
			w := httptest.NewRecorder()
			handler.GetWallet(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.WalletResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, int64(50000), body.Balance)
			}
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, walletService, _, _ := NewMock(t)
	escrowHold := domain.TxnEscrowHold

	tests := []struct {
		name         string
		target       string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Unfiltered history",
			target: "/api/user/wallet/transactions",
			prepareMock: func() {
				walletService.EXPECT().
					History(gomock.Any(), 1, walletrepo.TxnFilter{}, 50, 0).
					Return([]domain.WalletTransaction{{ID: 17, Type: domain.TxnDeposit, Amount: 98500, Status: domain.TxnCompleted}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "Filtered by type",
			target: "/api/user/wallet/transactions?type=ESCROW_HOLD",
			prepareMock: func() {
				walletService.EXPECT().
					History(gomock.Any(), 1, walletrepo.TxnFilter{Type: &escrowHold}, 50, 0).
					Return([]domain.WalletTransaction{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Unknown type value",
			target:       "/api/user/wallet/transactions?type=BONUS",
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Unknown status value",
			target:       "/api/user/wallet/transactions?status=STUCK",
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodGet, tt.target, "")
			w := httptest.NewRecorder()
			handler.GetTransactions(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedLen > 0 {
				var body []dto.TransactionResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestInitiateDepositHandler(t *testing.T) {
	handler, _, depositService, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful initiation",
			body: `{"amount":100000}`,
			prepareMock: func() {
				depositService.EXPECT().
					Initiate(gomock.Any(), 1, int64(100000)).
					Return(&domain.Deposit{ID: 3, GrossAmount: 100000, FeeAmount: 1500, NetAmount: 98500, Status: domain.DepositPending, ExternalRef: ref}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"amount":invalid}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Non-positive amount",
			body: `{"amount":-5}`,
			prepareMock: func() {
				depositService.EXPECT().Initiate(gomock.Any(), 1, int64(-5)).Return(nil, domain.ErrValidation)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodPost, "/api/user/deposits", tt.body)
			w := httptest.NewRecorder()
			handler.InitiateDeposit(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.DepositResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, ref, body.ExternalRef)
				assert.Equal(t, int64(98500), body.NetAmount)
			}
		})
	}
}

func TestConfirmDepositHandler(t *testing.T) {
	handler, _, depositService, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful confirmation",
			prepareMock: func() {
				depositService.EXPECT().
					Confirm(gomock.Any(), ref).
					Return(&domain.Deposit{ID: 3, Status: domain.DepositCompleted, ExternalRef: ref}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown reference",
			prepareMock: func() {
				depositService.EXPECT().Confirm(gomock.Any(), ref).Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Deposit already failed",
			prepareMock: func() {
				depositService.EXPECT().Confirm(gomock.Any(), ref).Return(nil, domain.ErrInvalidState)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(httptest.NewRequest(http.MethodPost, "/api/deposits/"+ref+"/confirm", nil), "ref", ref)
			w := httptest.NewRecorder()
			handler.ConfirmDeposit(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRequestWithdrawalHandler(t *testing.T) {
	handler, _, _, withdrawalService := NewMock(t)
	const iban = "DE89370400440532013000"

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful request",
			body: `{"amount":25000,"iban":"` + iban + `"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().
					Request(gomock.Any(), 1, int64(25000), iban).
					Return(&domain.WithdrawalRequest{ID: 5, Amount: 25000, IBAN: iban, Status: domain.WithdrawalPending}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Insufficient funds",
			body: `{"amount":25000,"iban":"` + iban + `"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().
					Request(gomock.Any(), 1, int64(25000), iban).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Malformed IBAN",
			body: `{"amount":25000,"iban":"not-an-iban"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().
					Request(gomock.Any(), 1, int64(25000), "not-an-iban").
					Return(nil, domain.ErrValidation)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodPost, "/api/user/withdrawals", tt.body)
			w := httptest.NewRecorder()
			handler.RequestWithdrawal(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestApproveWithdrawalHandler(t *testing.T) {
	handler, _, _, withdrawalService := NewMock(t)

	tests := []struct {
		name         string
		requestID    string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:      "Successful approval",
			requestID: "5",
			prepareMock: func() {
				withdrawalService.EXPECT().
					Approve(gomock.Any(), 5, gomock.Any()).
					Return(&domain.WithdrawalRequest{ID: 5, Status: domain.WithdrawalApproved}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request id",
			requestID:    "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "Already reviewed",
			requestID: "5",
			prepareMock: func() {
				withdrawalService.EXPECT().Approve(gomock.Any(), 5, gomock.Any()).Return(nil, domain.ErrInvalidState)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/moderator/withdrawals/"+tt.requestID+"/approve", ""), "id", tt.requestID)
			w := httptest.NewRecorder()
			handler.ApproveWithdrawal(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRejectWithdrawalHandler(t *testing.T) {
	handler, _, _, withdrawalService := NewMock(t)

	withdrawalService.EXPECT().
		Reject(gomock.Any(), 5, gomock.Any(), "destination account could not be verified").
		Return(&domain.WithdrawalRequest{ID: 5, Status: domain.WithdrawalRejected}, nil)

	r := withURLParam(authedRequest(http.MethodPost, "/api/moderator/withdrawals/5/reject",
		`{"reason":"destination account could not be verified"}`), "id", "5")
	w := httptest.NewRecorder()
	handler.RejectWithdrawal(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.WithdrawalResponseDTO
	_ = json.NewDecoder(w.Body).Decode(&body)
	assert.Equal(t, string(domain.WithdrawalRejected), body.Status)
}
