package auditrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

// Append is the only write path; audit rows are never updated or deleted.
func (r *Repository) Append(ctx context.Context, entry *domain.AuditEntry) (*domain.AuditEntry, error) {
	query := `
        INSERT INTO audit_log (actor_id, action, target_id, details, ip_address, user_agent)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, entry.ActorID, entry.Action, entry.TargetID,
		entry.Details, entry.IPAddress, entry.UserAgent).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("failed to append audit entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

type Filter struct {
	ActorID  *int
	Action   *string
	TargetID *int
	From     *time.Time
	To       *time.Time
}

func (r *Repository) List(ctx context.Context, filter Filter, limit, offset int) ([]domain.AuditEntry, error) {
	query := `
        SELECT id, actor_id, action, target_id, details, ip_address, user_agent, created_at
        FROM audit_log
        WHERE 1=1`
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		query += " AND " + clause + " $" + strconv.Itoa(len(args))
	}
	if filter.ActorID != nil {
		add("actor_id =", *filter.ActorID)
	}
	if filter.Action != nil {
		add("action =", *filter.Action)
	}
	if filter.TargetID != nil {
		add("target_id =", *filter.TargetID)
	}
	if filter.From != nil {
		add("created_at >=", *filter.From)
	}
	if filter.To != nil {
		add("created_at <=", *filter.To)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch audit entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetID, &e.Details, &e.IPAddress, &e.UserAgent, &e.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan audit row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
