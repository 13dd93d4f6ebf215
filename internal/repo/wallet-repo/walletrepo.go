package walletrepo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        SELECT id, user_id, balance, updated_at
        FROM wallets
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) GetByID(ctx context.Context, walletID int) (*domain.Wallet, error) {
	query := `
        SELECT id, user_id, balance, updated_at
        FROM wallets
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, walletID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get wallet by id", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        INSERT INTO wallets (user_id, balance)
        VALUES ($1, 0)
        RETURNING id, user_id, balance, updated_at
    `
	row := r.db.QueryRow(ctx, query, userID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to create wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

// ApplyDelta adjusts the balance by a signed amount. The conditional guard
// keeps the balance non-negative; a nil result means the guard rejected the
// update (or the wallet does not exist) and no row was touched.
func (r *Repository) ApplyDelta(ctx context.Context, walletID int, delta int64) (*domain.Wallet, error) {
	query := `
        UPDATE wallets
        SET balance = balance + $1, updated_at = now()
        WHERE id = $2 AND balance + $1 >= 0
        RETURNING id, user_id, balance, updated_at
    `
	row := r.db.QueryRow(ctx, query, delta, walletID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to apply balance delta", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) AppendTransaction(ctx context.Context, txn *domain.WalletTransaction) (*domain.WalletTransaction, error) {
	query := `
        INSERT INTO wallet_transactions (wallet_id, type, amount, related_order_id, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, txn.WalletID, txn.Type, txn.Amount, txn.RelatedOrderID, txn.Status).
		Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		zap.L().Error("failed to append wallet transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

type TxnFilter struct {
	Type   *domain.TransactionType
	Status *domain.TransactionStatus
}

func (r *Repository) ListTransactions(ctx context.Context, walletID int, filter TxnFilter, limit, offset int) ([]domain.WalletTransaction, error) {
	query := `
        SELECT id, wallet_id, type, amount, related_order_id, status, created_at
        FROM wallet_transactions
        WHERE wallet_id = $1`
	args := []any{walletID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += " AND type = $" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch wallet transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		var txn domain.WalletTransaction
		err := rows.Scan(&txn.ID, &txn.WalletID, &txn.Type, &txn.Amount, &txn.RelatedOrderID, &txn.Status, &txn.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan wallet transaction row", zap.Error(err))
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
