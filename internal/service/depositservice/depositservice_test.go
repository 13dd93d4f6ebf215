package depositservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
)

const ref = "7e6b2b3e-0f1c-4f9a-9f0a-1f2e3d4c5b6a"

func NewMock(t *testing.T) (*Service, *MockRepo, *MockWalletService, *MockAuditor, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	depositRepo := NewMockRepo(ctrl)
	wallets := NewMockWalletService(ctrl)
	audit := NewMockAuditor(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(depositRepo, wallets, audit, txManager, domain.BasisPointFee(150))
	defer ctrl.Finish()
	return service, depositRepo, wallets, audit, txManager
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestInitiate(t *testing.T) {
	service, depositRepo, wallets, _, _ := NewMock(t)

	tests := []struct {
		name          string
		amount        int64
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Creates pending deposit with fee preview",
			amount: 100000,
			prepareMock: func() {
				wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1}, nil)
				depositRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
						assert.Equal(t, domain.DepositPending, deposit.Status)
						assert.Equal(t, int64(1500), deposit.FeeAmount)
						assert.Equal(t, int64(98500), deposit.NetAmount)
						assert.NotEmpty(t, deposit.ExternalRef)
						deposit.ID = 3
						return deposit, nil
					})
			},
			expectedError: nil,
		},
		{
			name:          "Non-positive amount is rejected",
			amount:        -100,
			prepareMock:   func() {},
			expectedError: domain.ErrValidation,
		},
		{
			name:   "Unknown user",
			amount: 100000,
			prepareMock: func() {
				wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			deposit, err := service.Initiate(context.Background(), 1, tt.amount)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 3, deposit.ID)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	service, depositRepo, wallets, audit, txManager := NewMock(t)
	pending := &domain.Deposit{ID: 3, UserID: 1, GrossAmount: 100000, Status: domain.DepositPending, ExternalRef: ref}
	completed := &domain.Deposit{ID: 3, UserID: 1, GrossAmount: 100000, FeeAmount: 1500, NetAmount: 98500, Status: domain.DepositCompleted, ExternalRef: ref}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "First confirmation credits the net amount",
			prepareMock: func() {
				passThroughTx(txManager)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(pending, nil)
				depositRepo.EXPECT().Complete(gomock.Any(), ref, int64(1500), int64(98500)).Return(completed, nil)
				wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1}, nil)
				wallets.EXPECT().Credit(gomock.Any(), 1, int64(98500), domain.TxnDeposit, nil).Return(2, nil)
				audit.EXPECT().Record(gomock.Any(), auditservice.System, domain.AuditDepositConfirm, 3,
					map[string]any{"gross": int64(100000), "fee": int64(1500), "net": int64(98500)}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "Audit failure aborts the confirmation",
			prepareMock: func() {
				passThroughTx(txManager)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(pending, nil)
				depositRepo.EXPECT().Complete(gomock.Any(), ref, int64(1500), int64(98500)).Return(completed, nil)
				wallets.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Wallet{ID: 1, UserID: 1}, nil)
				wallets.EXPECT().Credit(gomock.Any(), 1, int64(98500), domain.TxnDeposit, nil).Return(2, nil)
				audit.EXPECT().Record(gomock.Any(), auditservice.System, domain.AuditDepositConfirm, 3, gomock.Any()).
					Return(assert.AnError)
			},
			expectedError: assert.AnError,
		},
		{
			name: "Replayed confirmation is idempotent",
			prepareMock: func() {
				passThroughTx(txManager)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(completed, nil)
				depositRepo.EXPECT().Complete(gomock.Any(), ref, int64(1500), int64(98500)).Return(nil, nil)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(completed, nil)
			},
			expectedError: nil,
		},
		{
			name: "Confirming a failed deposit is invalid",
			prepareMock: func() {
				failed := &domain.Deposit{ID: 3, UserID: 1, GrossAmount: 100000, Status: domain.DepositFailed, ExternalRef: ref}
				passThroughTx(txManager)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(failed, nil)
				depositRepo.EXPECT().Complete(gomock.Any(), ref, int64(1500), int64(98500)).Return(nil, nil)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(failed, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name: "Unknown reference",
			prepareMock: func() {
				passThroughTx(txManager)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			deposit, err := service.Confirm(context.Background(), ref)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.DepositCompleted, deposit.Status)
				assert.Equal(t, int64(98500), deposit.NetAmount)
			}
		})
	}
}

func TestFail(t *testing.T) {
	service, depositRepo, _, _, _ := NewMock(t)
	failed := &domain.Deposit{ID: 3, UserID: 1, Status: domain.DepositFailed, ExternalRef: ref}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Pending deposit is failed without ledger effect",
			prepareMock: func() {
				depositRepo.EXPECT().SetStatusFrom(gomock.Any(), ref, domain.DepositPending, domain.DepositFailed).Return(failed, nil)
			},
			expectedError: nil,
		},
		{
			name: "Failing a completed deposit is invalid",
			prepareMock: func() {
				depositRepo.EXPECT().SetStatusFrom(gomock.Any(), ref, domain.DepositPending, domain.DepositFailed).Return(nil, nil)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(&domain.Deposit{ID: 3, Status: domain.DepositCompleted}, nil)
			},
			expectedError: domain.ErrInvalidState,
		},
		{
			name: "Unknown reference",
			prepareMock: func() {
				depositRepo.EXPECT().SetStatusFrom(gomock.Any(), ref, domain.DepositPending, domain.DepositFailed).Return(nil, nil)
				depositRepo.EXPECT().GetByExternalRef(gomock.Any(), ref).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			deposit, err := service.Fail(context.Background(), ref)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.DepositFailed, deposit.Status)
			}
		})
	}
}
