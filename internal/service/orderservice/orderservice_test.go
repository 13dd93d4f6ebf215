package orderservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/listing"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
)

type mocks struct {
	orderRepo *MockRepo
	wallets   *MockWalletService
	inventory *listing.MockInventory
	notifier  *notify.MockNotifier
	audit     *MockAuditor
	txManager *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		orderRepo: NewMockRepo(ctrl),
		wallets:   NewMockWalletService(ctrl),
		inventory: listing.NewMockInventory(ctrl),
		notifier:  notify.NewMockNotifier(ctrl),
		audit:     NewMockAuditor(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
	}
	service := New(m.orderRepo, m.wallets, m.inventory, m.notifier, m.audit, m.txManager,
		168*time.Hour, domain.BasisPointFee(0))
	defer ctrl.Finish()
	return service, m
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestCreate(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		buyerID       int
		sellerID      int
		amount        int64
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Successful order creation",
			buyerID:  1,
			sellerID: 2,
			amount:   30000,
			prepareMock: func() {
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1, Balance: 50000}, nil)
				m.inventory.EXPECT().Reserve(gomock.Any(), 9).Return(nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
						assert.Equal(t, domain.OrderPendingDelivery, order.Status)
						assert.WithinDuration(t, time.Now().Add(168*time.Hour), order.AutoReleaseAt, time.Minute)
						order.ID = 42
						return order, nil
					})
				m.wallets.EXPECT().Debit(gomock.Any(), 1, int64(30000), domain.TxnEscrowHold, gomock.Any()).Return(17, nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedError: nil,
		},
		{
			name:          "Buyer buying from themselves is rejected",
			buyerID:       1,
			sellerID:      1,
			amount:        30000,
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "Non-positive amount is rejected",
			buyerID:       1,
			sellerID:      2,
			amount:        0,
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:     "Insufficient balance fails before reservation",
			buyerID:  1,
			sellerID: 2,
			amount:   30000,
			prepareMock: func() {
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1, Balance: 100}, nil)
			},
			expectedError: domain.ErrInsufficientFunds,
		},
		{
			name:     "Unavailable listing aborts creation",
			buyerID:  1,
			sellerID: 2,
			amount:   30000,
			prepareMock: func() {
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1, Balance: 50000}, nil)
				m.inventory.EXPECT().Reserve(gomock.Any(), 9).Return(domain.ErrConflict)
			},
			expectedError: domain.ErrConflict,
		},
		{
			name:     "Failed hold releases the reservation",
			buyerID:  1,
			sellerID: 2,
			amount:   30000,
			prepareMock: func() {
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1, Balance: 50000}, nil)
				m.inventory.EXPECT().Reserve(gomock.Any(), 9).Return(nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
				m.inventory.EXPECT().Release(gomock.Any(), 9).Return(nil)
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.Create(context.Background(), tt.buyerID, tt.sellerID, 9, tt.amount)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 42, order.ID)
			}
		})
	}
}

func TestGetOrder(t *testing.T) {
	service, m := NewMock(t)
	stored := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000}

	tests := []struct {
		name          string
		callerID      int
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Buyer can read the order",
			callerID: 1,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(stored, nil)
			},
			expectedError: nil,
		},
		{
			name:     "Seller can read the order",
			callerID: 2,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(stored, nil)
			},
			expectedError: nil,
		},
		{
			name:     "Outsider is forbidden",
			callerID: 3,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(stored, nil)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:     "Missing order",
			callerID: 1,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.GetOrder(context.Background(), 42, tt.callerID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, order)
			}
		})
	}
}

func TestConfirmDelivery(t *testing.T) {
	service, m := NewMock(t)
	pending := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderPendingDelivery}
	completed := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderCompleted}

	tests := []struct {
		name          string
		callerID      int
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Buyer confirmation releases funds to the seller",
			callerID: 1,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderCompleted).Return(completed, nil)
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 2).Return(&domain.Wallet{ID: 2, UserID: 2}, nil)
				m.wallets.EXPECT().Credit(gomock.Any(), 2, int64(30000), domain.TxnEscrowRelease, gomock.Any()).Return(21, nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedError: nil,
		},
		{
			name:     "Seller cannot confirm",
			callerID: 2,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:     "Lost transition race leaves funds untouched",
			callerID: 1,
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderCompleted).Return(nil, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.ConfirmDelivery(context.Background(), 42, tt.callerID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.OrderCompleted, order.Status)
			}
		})
	}
}

func TestAutoRelease(t *testing.T) {
	service, m := NewMock(t)
	completed := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderCompleted}

	tests := []struct {
		name        string
		prepareMock func()
		released    bool
	}{
		{
			name: "Due order is released to the seller",
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().CompleteIfDue(gomock.Any(), 42).Return(completed, nil)
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 2).Return(&domain.Wallet{ID: 2, UserID: 2}, nil)
				m.wallets.EXPECT().Credit(gomock.Any(), 2, int64(30000), domain.TxnEscrowRelease, gomock.Any()).Return(22, nil)
				m.audit.EXPECT().Record(gomock.Any(), gomock.Any(), domain.AuditOrderAutoRelease, 42, gomock.Any()).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			released: true,
		},
		{
			name: "Order already transitioned is a benign no-op",
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().CompleteIfDue(gomock.Any(), 42).Return(nil, nil)
			},
			released: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.AutoRelease(context.Background(), 42)
			assert.NoError(t, err)
			if tt.released {
				assert.NotNil(t, order)
			} else {
				assert.Nil(t, order)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	service, m := NewMock(t)
	cancelled := &domain.Order{ID: 42, ListingID: 9, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderCancelled}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Cancellation refunds the buyer and frees the listing",
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderCancelled).Return(cancelled, nil)
				m.wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1}, nil)
				m.wallets.EXPECT().Credit(gomock.Any(), 1, int64(30000), domain.TxnEscrowRefund, gomock.Any()).Return(23, nil)
				m.audit.EXPECT().Record(gomock.Any(), gomock.Any(), domain.AuditOrderCancel, 42, gomock.Any()).Return(nil)
				m.inventory.EXPECT().Release(gomock.Any(), 9).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			},
			expectedError: nil,
		},
		{
			name: "Completed order cannot be cancelled",
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderCancelled).Return(nil, nil)
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(&domain.Order{ID: 42, Status: domain.OrderCompleted}, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name: "Unknown order",
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderCancelled).Return(nil, nil)
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.Cancel(context.Background(), 42, auditservice.Actor{ID: 3}, "seller account banned")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.OrderCancelled, order.Status)
			}
		})
	}
}

func TestReleaseToSeller_PlatformFee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wallets := NewMockWalletService(ctrl)
	service := New(NewMockRepo(ctrl), wallets, listing.NewMockInventory(ctrl), notify.NewMockNotifier(ctrl),
		NewMockAuditor(ctrl), pg.NewMockTXManager(ctrl), 168*time.Hour, domain.BasisPointFee(250))

	order := &domain.Order{ID: 42, SellerID: 2, Amount: 10000}
	wallets.EXPECT().GetByUserID(gomock.Any(), 2).Return(&domain.Wallet{ID: 2, UserID: 2}, nil)
	wallets.EXPECT().Credit(gomock.Any(), 2, int64(10000), domain.TxnEscrowRelease, &order.ID).Return(30, nil)
	wallets.EXPECT().Debit(gomock.Any(), 2, int64(250), domain.TxnFee, &order.ID).Return(31, nil)

	err := service.ReleaseToSeller(context.Background(), order)
	assert.NoError(t, err)
}

func TestIsBenignRace(t *testing.T) {
	assert.True(t, IsBenignRace(domain.ErrInvalidState))
	assert.False(t, IsBenignRace(errors.New("db error")))
	assert.False(t, IsBenignRace(nil))
}
