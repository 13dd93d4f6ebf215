package withdrawalservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/pkg/validate"
)

type Repo interface {
	Create(ctx context.Context, wr *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error)
	GetByID(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error)
	Review(ctx context.Context, requestID int, to domain.WithdrawalStatus, reviewerID int) (*domain.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int, limit, offset int) ([]domain.WithdrawalRequest, error)
	ListByStatus(ctx context.Context, status domain.WithdrawalStatus, limit, offset int) ([]domain.WithdrawalRequest, error)
}

type WalletService interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	Credit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error)
	Debit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error)
}

type Auditor interface {
	Record(ctx context.Context, actor auditservice.Actor, action string, targetID int, details any) error
}

// Service reserves funds at request time, not at approval time, so two
// concurrent withdrawal requests can never spend the same balance twice.
// APPROVED only signals the out-of-scope payout system; the ledger was
// already debited. REJECTED appends the compensating credit.
type Service struct {
	withdrawalRepo Repo
	wallets        WalletService
	audit          Auditor
	notifier       notify.Notifier
	txManager      pg.TXManager
}

func New(withdrawalRepo Repo, wallets WalletService, audit Auditor, notifier notify.Notifier, txManager pg.TXManager) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		wallets:        wallets,
		audit:          audit,
		notifier:       notifier,
		txManager:      txManager,
	}
}

func (s *Service) Request(ctx context.Context, userID int, amount int64, iban string) (*domain.WithdrawalRequest, error) {
	if amount <= 0 || !validate.IsIBAN(iban) {
		return nil, domain.ErrValidation
	}

	wallet, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	request := &domain.WithdrawalRequest{
		UserID: userID,
		Amount: amount,
		IBAN:   iban,
		Status: domain.WithdrawalPending,
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.wallets.Debit(ctx, wallet.ID, amount, domain.TxnWithdrawal, nil); err != nil {
			return err
		}
		_, err := s.withdrawalRepo.Create(ctx, request)
		return err
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *Service) Approve(ctx context.Context, requestID int, actor auditservice.Actor) (*domain.WithdrawalRequest, error) {
	var approved *domain.WithdrawalRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		reviewed, err := s.withdrawalRepo.Review(ctx, requestID, domain.WithdrawalApproved, actor.ID)
		if err != nil {
			return err
		}
		if reviewed == nil {
			return s.reviewMiss(ctx, requestID)
		}
		if err := s.audit.Record(ctx, actor, domain.AuditWithdrawalApprove, reviewed.ID, map[string]any{
			"user_id": reviewed.UserID,
			"amount":  reviewed.Amount,
		}); err != nil {
			return err
		}
		approved = reviewed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindWithdrawalReviewed, UserID: approved.UserID, Message: string(domain.WithdrawalApproved)})
	return approved, nil
}

func (s *Service) Reject(ctx context.Context, requestID int, actor auditservice.Actor, reason string) (*domain.WithdrawalRequest, error) {
	var rejected *domain.WithdrawalRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		reviewed, err := s.withdrawalRepo.Review(ctx, requestID, domain.WithdrawalRejected, actor.ID)
		if err != nil {
			return err
		}
		if reviewed == nil {
			return s.reviewMiss(ctx, requestID)
		}

		wallet, err := s.wallets.GetByUserID(ctx, reviewed.UserID)
		if err != nil {
			return err
		}
		// Compensating credit restores the reservation taken at request time.
		if _, err := s.wallets.Credit(ctx, wallet.ID, reviewed.Amount, domain.TxnWithdrawal, nil); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, actor, domain.AuditWithdrawalReject, reviewed.ID, map[string]any{
			"user_id": reviewed.UserID,
			"amount":  reviewed.Amount,
			"reason":  reason,
		}); err != nil {
			return err
		}
		rejected = reviewed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindWithdrawalReviewed, UserID: rejected.UserID, Message: string(domain.WithdrawalRejected)})
	return rejected, nil
}

func (s *Service) reviewMiss(ctx context.Context, requestID int) error {
	existing, err := s.withdrawalRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

func (s *Service) ListForUser(ctx context.Context, userID, limit, offset int) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawalRepo.ListByStatus(ctx, domain.WithdrawalPending, limit, offset)
	if err != nil {
		zap.L().Error("failed to list pending withdrawal requests", zap.Error(err))
		return nil, err
	}
	return requests, nil
}
