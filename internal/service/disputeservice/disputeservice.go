package disputeservice

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"
	disputerepo "github.com/vbelyaev/escrowd/internal/repo/dispute-repo"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/internal/service/orderservice"
)

type Repo interface {
	Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error)
	GetByID(ctx context.Context, disputeID int) (*domain.Dispute, error)
	GetByOrderID(ctx context.Context, orderID int) (*domain.Dispute, error)
	Resolve(ctx context.Context, disputeID int, resolution domain.DisputeResolution, moderatorID int) (*domain.Dispute, error)
	List(ctx context.Context, status *domain.DisputeStatus, limit, offset int) ([]domain.Dispute, error)
}

type OrderRepo interface {
	GetByID(ctx context.Context, orderID int) (*domain.Order, error)
	UpdateStatusFrom(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error)
}

// Releaser performs the single seller credit or buyer refund for an order;
// the order service owns that logic so both release paths stay identical.
type Releaser interface {
	ReleaseToSeller(ctx context.Context, order *domain.Order) error
	RefundToBuyer(ctx context.Context, order *domain.Order) error
}

type Auditor interface {
	Record(ctx context.Context, actor auditservice.Actor, action string, targetID int, details any) error
}

// Service suspends the escrow timeline while a dispute is open and funnels
// the moderator decision back into the order state machine as the only way
// a DISPUTED order reaches a terminal state.
type Service struct {
	disputeRepo Repo
	orderRepo   OrderRepo
	releaser    Releaser
	audit       Auditor
	notifier    notify.Notifier
	txManager   pg.TXManager
}

func New(disputeRepo Repo, orderRepo OrderRepo, releaser Releaser, audit Auditor,
	notifier notify.Notifier, txManager pg.TXManager) *Service {
	return &Service{
		disputeRepo: disputeRepo,
		orderRepo:   orderRepo,
		releaser:    releaser,
		audit:       audit,
		notifier:    notifier,
		txManager:   txManager,
	}
}

// Open flips the order to DISPUTED atomically with creating the dispute,
// which removes it from auto-release eligibility. Only one dispute per
// order can ever exist.
func (s *Service) Open(ctx context.Context, orderID, callerID int, reason string) (*domain.Dispute, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrValidation
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if callerID != order.BuyerID && callerID != order.SellerID {
		return nil, domain.ErrForbidden
	}

	dispute := &domain.Dispute{
		OrderID:  orderID,
		OpenedBy: callerID,
		Reason:   reason,
		Status:   domain.DisputeOpen,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		updated, err := s.orderRepo.UpdateStatusFrom(ctx, orderID, domain.OrderPendingDelivery, domain.OrderDisputed)
		if err != nil {
			return err
		}
		if updated == nil {
			// DISPUTED because a dispute already exists is a duplicate,
			// not a bad transition.
			existing, err := s.disputeRepo.GetByOrderID(ctx, orderID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrConflict
			}
			return domain.ErrInvalidState
		}
		if _, err := s.disputeRepo.Create(ctx, dispute); err != nil {
			if errors.Is(err, disputerepo.ErrDuplicate) {
				return domain.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	counterparty := order.SellerID
	if callerID == order.SellerID {
		counterparty = order.BuyerID
	}
	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindDisputeOpened, UserID: counterparty, OrderID: orderID, Message: reason})
	return dispute, nil
}

// Resolve is the sole release trigger for a DISPUTED order. The dispute
// row's OPEN check and the order's DISPUTED check are both conditional
// updates inside one transaction, so a decision lands exactly once.
func (s *Service) Resolve(ctx context.Context, disputeID int, actor auditservice.Actor, resolution domain.DisputeResolution) (*domain.Dispute, error) {
	var resolved *domain.Dispute
	var order *domain.Order

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		dispute, err := s.disputeRepo.Resolve(ctx, disputeID, resolution, actor.ID)
		if err != nil {
			return err
		}
		if dispute == nil {
			existing, err := s.disputeRepo.GetByID(ctx, disputeID)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrNotFound
			}
			return domain.ErrInvalidState
		}

		target := domain.OrderRefunded
		if resolution == domain.ResolutionReleaseSeller {
			target = domain.OrderCompleted
		}
		updated, err := s.orderRepo.UpdateStatusFrom(ctx, dispute.OrderID, domain.OrderDisputed, target)
		if err != nil {
			return err
		}
		if updated == nil {
			zap.L().Error("dispute resolved but order not in DISPUTED state", zap.Int("orderID", dispute.OrderID))
			return domain.ErrInvalidState
		}

		if resolution == domain.ResolutionReleaseSeller {
			err = s.releaser.ReleaseToSeller(ctx, updated)
		} else {
			err = s.releaser.RefundToBuyer(ctx, updated)
		}
		if err != nil {
			return err
		}

		if err := s.audit.Record(ctx, actor, domain.AuditDisputeResolve, dispute.ID, map[string]any{
			"order_id":   dispute.OrderID,
			"resolution": resolution,
			"amount":     updated.Amount,
		}); err != nil {
			return err
		}

		resolved = dispute
		order = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := notify.Event{Kind: notify.KindDisputeResolved, OrderID: order.ID, Message: string(resolution)}
	event.UserID = order.BuyerID
	s.notifier.Notify(ctx, event)
	event.UserID = order.SellerID
	s.notifier.Notify(ctx, event)

	return resolved, nil
}

func (s *Service) GetByOrder(ctx context.Context, orderID, callerID int) (*domain.Dispute, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if callerID != order.BuyerID && callerID != order.SellerID {
		return nil, domain.ErrForbidden
	}

	dispute, err := s.disputeRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, domain.ErrNotFound
	}
	return dispute, nil
}

func (s *Service) List(ctx context.Context, status *domain.DisputeStatus, limit, offset int) ([]domain.Dispute, error) {
	disputes, err := s.disputeRepo.List(ctx, status, limit, offset)
	if err != nil {
		zap.L().Error("failed to list disputes", zap.Error(err))
		return nil, err
	}
	return disputes, nil
}

var _ Releaser = (*orderservice.Service)(nil)
