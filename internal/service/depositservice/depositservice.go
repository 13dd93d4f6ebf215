package depositservice

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
)

type Repo interface {
	Create(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error)
	GetByExternalRef(ctx context.Context, externalRef string) (*domain.Deposit, error)
	Complete(ctx context.Context, externalRef string, fee, net int64) (*domain.Deposit, error)
	SetStatusFrom(ctx context.Context, externalRef string, from, to domain.DepositStatus) (*domain.Deposit, error)
	ListByUser(ctx context.Context, userID int, limit, offset int) ([]domain.Deposit, error)
}

type WalletService interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	Credit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error)
}

type Auditor interface {
	Record(ctx context.Context, actor auditservice.Actor, action string, targetID int, details any) error
}

// Service turns verified payment-gateway confirmations into ledger credits.
// The external reference is the idempotency key: the unique constraint plus
// the conditional status update guarantee the credit happens exactly once
// no matter how often the gateway replays the callback.
type Service struct {
	depositRepo Repo
	wallets     WalletService
	audit       Auditor
	txManager   pg.TXManager
	fee         domain.FeeSchedule
}

func New(depositRepo Repo, wallets WalletService, audit Auditor, txManager pg.TXManager, fee domain.FeeSchedule) *Service {
	return &Service{
		depositRepo: depositRepo,
		wallets:     wallets,
		audit:       audit,
		txManager:   txManager,
		fee:         fee,
	}
}

func (s *Service) Initiate(ctx context.Context, userID int, grossAmount int64) (*domain.Deposit, error) {
	if grossAmount <= 0 {
		return nil, domain.ErrValidation
	}
	if _, err := s.wallets.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	fee := s.fee(grossAmount)
	deposit := &domain.Deposit{
		UserID:      userID,
		GrossAmount: grossAmount,
		FeeAmount:   fee,
		NetAmount:   grossAmount - fee,
		Status:      domain.DepositPending,
		ExternalRef: uuid.NewString(),
	}
	if _, err := s.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// Confirm completes a deposit and credits the wallet in one atomic unit.
// The fee is computed from the schedule configured at confirmation time.
// A replayed confirmation of an already-completed deposit returns it
// unchanged with no side effects.
func (s *Service) Confirm(ctx context.Context, externalRef string) (*domain.Deposit, error) {
	var confirmed *domain.Deposit
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		pending, err := s.depositRepo.GetByExternalRef(ctx, externalRef)
		if err != nil {
			return err
		}
		if pending == nil {
			return domain.ErrNotFound
		}

		fee := s.fee(pending.GrossAmount)
		claimed, err := s.depositRepo.Complete(ctx, externalRef, fee, pending.GrossAmount-fee)
		if err != nil {
			return err
		}
		if claimed == nil {
			// Lost the claim: either replay of a completed deposit
			// (idempotent no-op) or a FAILED one (invalid).
			existing, err := s.depositRepo.GetByExternalRef(ctx, externalRef)
			if err != nil {
				return err
			}
			if existing != nil && existing.Status == domain.DepositCompleted {
				confirmed = existing
				return nil
			}
			return domain.ErrInvalidState
		}

		wallet, err := s.wallets.GetByUserID(ctx, claimed.UserID)
		if err != nil {
			return err
		}
		if _, err := s.wallets.Credit(ctx, wallet.ID, claimed.NetAmount, domain.TxnDeposit, nil); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, auditservice.System, domain.AuditDepositConfirm, claimed.ID, map[string]any{
			"gross": claimed.GrossAmount,
			"fee":   claimed.FeeAmount,
			"net":   claimed.NetAmount,
		}); err != nil {
			return err
		}

		zap.L().Info("deposit confirmed",
			zap.String("externalRef", externalRef),
			zap.Int64("net", claimed.NetAmount),
			zap.Int64("fee", claimed.FeeAmount))
		confirmed = claimed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// Fail moves a PENDING deposit to FAILED with no ledger effect.
func (s *Service) Fail(ctx context.Context, externalRef string) (*domain.Deposit, error) {
	failed, err := s.depositRepo.SetStatusFrom(ctx, externalRef, domain.DepositPending, domain.DepositFailed)
	if err != nil {
		return nil, err
	}
	if failed == nil {
		existing, err := s.depositRepo.GetByExternalRef(ctx, externalRef)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrInvalidState
	}
	return failed, nil
}

func (s *Service) ListForUser(ctx context.Context, userID, limit, offset int) ([]domain.Deposit, error) {
	deposits, err := s.depositRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list deposits", zap.Error(err))
		return nil, err
	}
	return deposits, nil
}
