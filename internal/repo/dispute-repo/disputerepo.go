package disputerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
)

const disputeColumns = "id, order_id, opened_by, reason, status, resolution, resolved_by, resolved_at, created_at"

// ErrDuplicate is returned when an order already has a dispute.
var ErrDuplicate = errors.New("dispute already exists for order")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanDispute(row pgx.Row) (*domain.Dispute, error) {
	var d domain.Dispute
	err := row.Scan(&d.ID, &d.OrderID, &d.OpenedBy, &d.Reason, &d.Status, &d.Resolution, &d.ResolvedBy, &d.ResolvedAt, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error) {
	query := `
        INSERT INTO disputes (order_id, opened_by, reason, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, dispute.OrderID, dispute.OpenedBy, dispute.Reason, dispute.Status).
		Scan(&dispute.ID, &dispute.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		zap.L().Error("failed to create dispute", zap.Error(err))
		return nil, err
	}
	return dispute, nil
}

func (r *Repository) GetByID(ctx context.Context, disputeID int) (*domain.Dispute, error) {
	query := `
        SELECT ` + disputeColumns + `
        FROM disputes
        WHERE id = $1
    `
	dispute, err := scanDispute(r.db.QueryRow(ctx, query, disputeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get dispute", zap.Error(err))
		return nil, err
	}
	return dispute, nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID int) (*domain.Dispute, error) {
	query := `
        SELECT ` + disputeColumns + `
        FROM disputes
        WHERE order_id = $1
    `
	dispute, err := scanDispute(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get dispute by order", zap.Error(err))
		return nil, err
	}
	return dispute, nil
}

// Resolve records the moderator decision; only OPEN disputes move.
func (r *Repository) Resolve(ctx context.Context, disputeID int, resolution domain.DisputeResolution, moderatorID int) (*domain.Dispute, error) {
	query := `
        UPDATE disputes
        SET status = 'RESOLVED', resolution = $2, resolved_by = $3, resolved_at = now()
        WHERE id = $1 AND status = 'OPEN'
        RETURNING ` + disputeColumns
	dispute, err := scanDispute(r.db.QueryRow(ctx, query, disputeID, resolution, moderatorID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to resolve dispute", zap.Error(err))
		return nil, err
	}
	return dispute, nil
}

func (r *Repository) List(ctx context.Context, status *domain.DisputeStatus, limit, offset int) ([]domain.Dispute, error) {
	query := `
        SELECT ` + disputeColumns + `
        FROM disputes
        WHERE ($1::text IS NULL OR status = $1)
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch disputes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var disputes []domain.Dispute
	for rows.Next() {
		var d domain.Dispute
		err := rows.Scan(&d.ID, &d.OrderID, &d.OpenedBy, &d.Reason, &d.Status, &d.Resolution, &d.ResolvedBy, &d.ResolvedAt, &d.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan dispute row", zap.Error(err))
			return nil, err
		}
		disputes = append(disputes, d)
	}
	return disputes, nil
}
