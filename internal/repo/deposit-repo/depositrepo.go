package depositrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
)

const depositColumns = "id, user_id, gross_amount, fee_amount, net_amount, status, external_ref, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var d domain.Deposit
	err := row.Scan(&d.ID, &d.UserID, &d.GrossAmount, &d.FeeAmount, &d.NetAmount, &d.Status, &d.ExternalRef, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
	query := `
        INSERT INTO deposits (user_id, gross_amount, fee_amount, net_amount, status, external_ref)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, deposit.UserID, deposit.GrossAmount, deposit.FeeAmount,
		deposit.NetAmount, deposit.Status, deposit.ExternalRef).Scan(&deposit.ID, &deposit.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

func (r *Repository) GetByExternalRef(ctx context.Context, externalRef string) (*domain.Deposit, error) {
	query := `
        SELECT ` + depositColumns + `
        FROM deposits
        WHERE external_ref = $1
    `
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, externalRef))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

// Complete claims a PENDING deposit exactly once, recording the fee
// computed at confirmation time. A nil result means another confirmation
// already claimed the reference.
func (r *Repository) Complete(ctx context.Context, externalRef string, fee, net int64) (*domain.Deposit, error) {
	query := `
        UPDATE deposits
        SET status = 'COMPLETED', fee_amount = $2, net_amount = $3
        WHERE external_ref = $1 AND status = 'PENDING'
        RETURNING ` + depositColumns
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, externalRef, fee, net))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to complete deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

// SetStatusFrom transitions PENDING deposits exactly once; a nil result
// means another transition already claimed the reference.
func (r *Repository) SetStatusFrom(ctx context.Context, externalRef string, from, to domain.DepositStatus) (*domain.Deposit, error) {
	query := `
        UPDATE deposits
        SET status = $3
        WHERE external_ref = $1 AND status = $2
        RETURNING ` + depositColumns
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, externalRef, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to transition deposit", zap.Error(err))
		return nil, err
	}
	return deposit, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int, limit, offset int) ([]domain.Deposit, error) {
	query := `
        SELECT ` + depositColumns + `
        FROM deposits
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch deposits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		err := rows.Scan(&d.ID, &d.UserID, &d.GrossAmount, &d.FeeAmount, &d.NetAmount, &d.Status, &d.ExternalRef, &d.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan deposit row", zap.Error(err))
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, nil
}
