package withdrawalrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
)

const withdrawalColumns = "id, user_id, amount, iban, status, reviewed_by, reviewed_at, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var wr domain.WithdrawalRequest
	err := row.Scan(&wr.ID, &wr.UserID, &wr.Amount, &wr.IBAN, &wr.Status, &wr.ReviewedBy, &wr.ReviewedAt, &wr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &wr, nil
}

func (r *Repository) Create(ctx context.Context, wr *domain.WithdrawalRequest) (*domain.WithdrawalRequest, error) {
	query := `
        INSERT INTO withdrawal_requests (user_id, amount, iban, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, wr.UserID, wr.Amount, wr.IBAN, wr.Status).Scan(&wr.ID, &wr.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create withdrawal request", zap.Error(err))
		return nil, err
	}
	return wr, nil
}

func (r *Repository) GetByID(ctx context.Context, requestID int) (*domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawal_requests
        WHERE id = $1
    `
	wr, err := scanWithdrawal(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get withdrawal request", zap.Error(err))
		return nil, err
	}
	return wr, nil
}

// Review records a terminal moderator decision; only PENDING requests move.
func (r *Repository) Review(ctx context.Context, requestID int, to domain.WithdrawalStatus, reviewerID int) (*domain.WithdrawalRequest, error) {
	query := `
        UPDATE withdrawal_requests
        SET status = $2, reviewed_by = $3, reviewed_at = now()
        WHERE id = $1 AND status = 'PENDING'
        RETURNING ` + withdrawalColumns
	wr, err := scanWithdrawal(r.db.QueryRow(ctx, query, requestID, to, reviewerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to review withdrawal request", zap.Error(err))
		return nil, err
	}
	return wr, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int, limit, offset int) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawal_requests
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	return r.list(ctx, query, userID, limit, offset)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.WithdrawalStatus, limit, offset int) ([]domain.WithdrawalRequest, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawal_requests
        WHERE status = $1
        ORDER BY created_at ASC, id ASC
        LIMIT $2 OFFSET $3
    `
	return r.list(ctx, query, status, limit, offset)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.WithdrawalRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var requests []domain.WithdrawalRequest
	for rows.Next() {
		var wr domain.WithdrawalRequest
		err := rows.Scan(&wr.ID, &wr.UserID, &wr.Amount, &wr.IBAN, &wr.Status, &wr.ReviewedBy, &wr.ReviewedAt, &wr.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, wr)
	}
	return requests, nil
}
