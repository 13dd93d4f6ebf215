package orderrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/pg"
)

const orderColumns = "id, listing_id, buyer_id, seller_id, amount, status, created_at, auto_release_at, completed_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.ListingID, &order.BuyerID, &order.SellerID, &order.Amount,
		&order.Status, &order.CreatedAt, &order.AutoReleaseAt, &order.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (listing_id, buyer_id, seller_id, amount, status, auto_release_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, order.ListingID, order.BuyerID, order.SellerID,
		order.Amount, order.Status, order.AutoReleaseAt).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) GetByID(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE id = $1
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

// UpdateStatusFrom is the compare-and-swap behind every order transition.
// A nil result means another caller already moved the order out of the
// expected state; the caller must not proceed with any ledger movement.
func (r *Repository) UpdateStatusFrom(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $3, completed_at = CASE WHEN $3 = 'COMPLETED' THEN now() ELSE completed_at END
        WHERE id = $1 AND status = $2
        RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to transition order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

// CompleteIfDue additionally requires the auto-release deadline to have
// passed, making the sweep trigger a no-op for orders still inside the hold.
func (r *Repository) CompleteIfDue(ctx context.Context, orderID int) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = 'COMPLETED', completed_at = now()
        WHERE id = $1 AND status = 'PENDING_DELIVERY' AND auto_release_at <= now()
        RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to auto-complete order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindDueForRelease(ctx context.Context, limit uint32) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE status = 'PENDING_DELIVERY' AND auto_release_at <= now()
        ORDER BY auto_release_at ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("failed to fetch due orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.ListingID, &order.BuyerID, &order.SellerID, &order.Amount,
			&order.Status, &order.CreatedAt, &order.AutoReleaseAt, &order.CompletedAt)
		if err != nil {
			zap.L().Error("failed to scan due order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int, limit, offset int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE buyer_id = $1 OR seller_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.ListingID, &order.BuyerID, &order.SellerID, &order.Amount,
			&order.Status, &order.CreatedAt, &order.AutoReleaseAt, &order.CompletedAt)
		if err != nil {
			zap.L().Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
