package auditservice

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	auditrepo "github.com/vbelyaev/escrowd/internal/repo/audit-repo"
)

type AuditRepo interface {
	Append(ctx context.Context, entry *domain.AuditEntry) (*domain.AuditEntry, error)
	List(ctx context.Context, filter auditrepo.Filter, limit, offset int) ([]domain.AuditEntry, error)
}

// Actor identifies who performed a privileged action and from where.
// Caller identity is always passed explicitly; there is no ambient session.
type Actor struct {
	ID        int
	IPAddress string
	UserAgent string
}

// System is the actor recorded for transitions no human triggered, such as
// the auto-release sweep.
var System = Actor{ID: 0}

type Service struct {
	auditRepo AuditRepo
}

func New(auditRepo AuditRepo) *Service {
	return &Service{
		auditRepo: auditRepo,
	}
}

// Record appends one immutable entry per privileged action. Runs inside the
// caller's transaction when one is in flight, so a rolled-back action leaves
// no audit trace.
func (s *Service) Record(ctx context.Context, actor Actor, action string, targetID int, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		zap.L().Error("failed to marshal audit details", zap.Error(err))
		return err
	}
	entry := &domain.AuditEntry{
		ActorID:   actor.ID,
		Action:    action,
		TargetID:  targetID,
		Details:   payload,
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	}
	if _, err := s.auditRepo.Append(ctx, entry); err != nil {
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter auditrepo.Filter, limit, offset int) ([]domain.AuditEntry, error) {
	entries, err := s.auditRepo.List(ctx, filter, limit, offset)
	if err != nil {
		zap.L().Error("failed to list audit entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
