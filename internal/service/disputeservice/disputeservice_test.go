package disputeservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"
	disputerepo "github.com/vbelyaev/escrowd/internal/repo/dispute-repo"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
)

type mocks struct {
	disputeRepo *MockRepo
	orderRepo   *MockOrderRepo
	releaser    *MockReleaser
	audit       *MockAuditor
	notifier    *notify.MockNotifier
	txManager   *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		disputeRepo: NewMockRepo(ctrl),
		orderRepo:   NewMockOrderRepo(ctrl),
		releaser:    NewMockReleaser(ctrl),
		audit:       NewMockAuditor(ctrl),
		notifier:    notify.NewMockNotifier(ctrl),
		txManager:   pg.NewMockTXManager(ctrl),
	}
	service := New(m.disputeRepo, m.orderRepo, m.releaser, m.audit, m.notifier, m.txManager)
	defer ctrl.Finish()
	return service, m
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestOpen(t *testing.T) {
	service, m := NewMock(t)
	pending := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderPendingDelivery}
	disputed := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderDisputed}

	tests := []struct {
		name          string
		callerID      int
		reason        string
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Buyer opens a dispute",
			callerID: 1,
			reason:   "item never arrived",
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderDisputed).Return(disputed, nil)
				m.disputeRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error) {
						assert.Equal(t, domain.DisputeOpen, dispute.Status)
						assert.Equal(t, 1, dispute.OpenedBy)
						dispute.ID = 7
						return dispute, nil
					})
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(
					func(ctx context.Context, event notify.Event) {
						assert.Equal(t, 2, event.UserID)
					})
			},
			expectedError: nil,
		},
		{
			name:          "Blank reason is rejected",
			callerID:      1,
			reason:        "   ",
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:     "Outsider cannot dispute",
			callerID: 3,
			reason:   "item never arrived",
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:     "Completed order is not disputable",
			callerID: 1,
			reason:   "item never arrived",
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderDisputed).Return(nil, nil)
				m.disputeRepo.EXPECT().GetByOrderID(gomock.Any(), 42).Return(nil, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name:     "Second dispute on an already disputed order is a conflict",
			callerID: 1,
			reason:   "item never arrived",
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(disputed, nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderDisputed).Return(nil, nil)
				m.disputeRepo.EXPECT().GetByOrderID(gomock.Any(), 42).Return(
					&domain.Dispute{ID: 7, OrderID: 42, Status: domain.DisputeOpen}, nil)
			},
			expectedError: domain.ErrConflict,
		},
		{
			name:     "Duplicate dispute maps to conflict",
			callerID: 1,
			reason:   "item never arrived",
			prepareMock: func() {
				m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(pending, nil)
				passThroughTx(m.txManager)
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderPendingDelivery, domain.OrderDisputed).Return(disputed, nil)
				m.disputeRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, disputerepo.ErrDuplicate)
			},
			expectedError: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			dispute, err := service.Open(context.Background(), 42, tt.callerID, tt.reason)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, dispute.ID)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	service, m := NewMock(t)
	actor := auditservice.Actor{ID: 3}
	openDispute := &domain.Dispute{ID: 7, OrderID: 42, OpenedBy: 1, Status: domain.DisputeResolved}
	disputedOrder := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Amount: 30000, Status: domain.OrderDisputed}

	tests := []struct {
		name          string
		resolution    domain.DisputeResolution
		prepareMock   func()
		expectedError error
	}{
		{
			name:       "Refund verdict returns funds to the buyer",
			resolution: domain.ResolutionRefundBuyer,
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.disputeRepo.EXPECT().Resolve(gomock.Any(), 7, domain.ResolutionRefundBuyer, 3).Return(openDispute, nil)
				refunded := *disputedOrder
				refunded.Status = domain.OrderRefunded
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderDisputed, domain.OrderRefunded).Return(&refunded, nil)
				m.releaser.EXPECT().RefundToBuyer(gomock.Any(), gomock.Any()).Return(nil)
				m.audit.EXPECT().Record(gomock.Any(), actor, domain.AuditDisputeResolve, 7, gomock.Any()).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(2)
			},
			expectedError: nil,
		},
		{
			name:       "Release verdict pays the seller",
			resolution: domain.ResolutionReleaseSeller,
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.disputeRepo.EXPECT().Resolve(gomock.Any(), 7, domain.ResolutionReleaseSeller, 3).Return(openDispute, nil)
				completed := *disputedOrder
				completed.Status = domain.OrderCompleted
				m.orderRepo.EXPECT().UpdateStatusFrom(gomock.Any(), 42, domain.OrderDisputed, domain.OrderCompleted).Return(&completed, nil)
				m.releaser.EXPECT().ReleaseToSeller(gomock.Any(), gomock.Any()).Return(nil)
				m.audit.EXPECT().Record(gomock.Any(), actor, domain.AuditDisputeResolve, 7, gomock.Any()).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(2)
			},
			expectedError: nil,
		},
		{
			name:       "Second resolution attempt is rejected",
			resolution: domain.ResolutionRefundBuyer,
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.disputeRepo.EXPECT().Resolve(gomock.Any(), 7, domain.ResolutionRefundBuyer, 3).Return(nil, nil)
				m.disputeRepo.EXPECT().GetByID(gomock.Any(), 7).Return(openDispute, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name:       "Unknown dispute",
			resolution: domain.ResolutionRefundBuyer,
			prepareMock: func() {
				passThroughTx(m.txManager)
				m.disputeRepo.EXPECT().Resolve(gomock.Any(), 7, domain.ResolutionRefundBuyer, 3).Return(nil, nil)
				m.disputeRepo.EXPECT().GetByID(gomock.Any(), 7).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			dispute, err := service.Resolve(context.Background(), 7, actor, tt.resolution)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, dispute.ID)
			}
		})
	}
}

func TestGetByOrder(t *testing.T) {
	service, m := NewMock(t)
	disputed := &domain.Order{ID: 42, BuyerID: 1, SellerID: 2, Status: domain.OrderDisputed}

	t.Run("Participant reads the dispute", func(t *testing.T) {
		m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(disputed, nil)
		m.disputeRepo.EXPECT().GetByOrderID(gomock.Any(), 42).Return(&domain.Dispute{ID: 7, OrderID: 42}, nil)
		dispute, err := service.GetByOrder(context.Background(), 42, 2)
		assert.NoError(t, err)
		assert.Equal(t, 7, dispute.ID)
	})

	t.Run("Outsider is forbidden", func(t *testing.T) {
		m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(disputed, nil)
		_, err := service.GetByOrder(context.Background(), 42, 3)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("No dispute for order", func(t *testing.T) {
		m.orderRepo.EXPECT().GetByID(gomock.Any(), 42).Return(disputed, nil)
		m.disputeRepo.EXPECT().GetByOrderID(gomock.Any(), 42).Return(nil, nil)
		_, err := service.GetByOrder(context.Background(), 42, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
