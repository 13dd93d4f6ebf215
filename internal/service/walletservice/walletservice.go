package walletservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
	walletrepo "github.com/vbelyaev/escrowd/internal/repo/wallet-repo"
)

type WalletRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	GetByID(ctx context.Context, walletID int) (*domain.Wallet, error)
	Create(ctx context.Context, userID int) (*domain.Wallet, error)
	ApplyDelta(ctx context.Context, walletID int, delta int64) (*domain.Wallet, error)
	AppendTransaction(ctx context.Context, txn *domain.WalletTransaction) (*domain.WalletTransaction, error)
	ListTransactions(ctx context.Context, walletID int, filter walletrepo.TxnFilter, limit, offset int) ([]domain.WalletTransaction, error)
}

// Service is the wallet ledger: the only component allowed to move a
// balance, and every move appends exactly one transaction row inside the
// same atomic unit.
type Service struct {
	walletRepo WalletRepo
	txManager  pg.TXManager
}

func New(walletRepo WalletRepo, txManager pg.TXManager) *Service {
	return &Service{
		walletRepo: walletRepo,
		txManager:  txManager,
	}
}

func (s *Service) CreateWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.Create(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrNotFound
	}
	return wallet, nil
}

// Credit appends a ledger transaction and raises the balance as one atomic
// unit. relatedOrderID ties escrow movements to their order.
func (s *Service) Credit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}
	return s.apply(ctx, walletID, amount, txnType, relatedOrderID)
}

// Debit is the mirror of Credit; it fails with ErrInsufficientFunds rather
// than ever letting the balance go negative.
func (s *Service) Debit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}
	return s.apply(ctx, walletID, -amount, txnType, relatedOrderID)
}

func (s *Service) apply(ctx context.Context, walletID int, delta int64, txnType domain.TransactionType, relatedOrderID *int) (int, error) {
	var txnID int
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn := &domain.WalletTransaction{
			WalletID:       walletID,
			Type:           txnType,
			Amount:         delta,
			RelatedOrderID: relatedOrderID,
			Status:         domain.TxnCompleted,
		}
		if _, err := s.walletRepo.AppendTransaction(ctx, txn); err != nil {
			return err
		}

		wallet, err := s.walletRepo.ApplyDelta(ctx, walletID, delta)
		if err != nil {
			return err
		}
		if wallet == nil {
			// The guard rejected the update; the appended row rolls back
			// with the transaction.
			existing, err := s.walletRepo.GetByID(ctx, walletID)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientFunds
		}
		txnID = txn.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return txnID, nil
}

func (s *Service) History(ctx context.Context, userID int, filter walletrepo.TxnFilter, limit, offset int) ([]domain.WalletTransaction, error) {
	wallet, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	txns, err := s.walletRepo.ListTransactions(ctx, wallet.ID, filter, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch transaction history", zap.Error(err))
		return nil, err
	}
	return txns, nil
}
