package orderservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/listing"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, orderID int) (*domain.Order, error)
	UpdateStatusFrom(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, error)
	CompleteIfDue(ctx context.Context, orderID int) (*domain.Order, error)
	FindDueForRelease(ctx context.Context, limit uint32) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int, limit, offset int) ([]domain.Order, error)
}

type WalletService interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	Credit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error)
	Debit(ctx context.Context, walletID int, amount int64, txnType domain.TransactionType, relatedOrderID *int) (int, error)
}

type Auditor interface {
	Record(ctx context.Context, actor auditservice.Actor, action string, targetID int, details any) error
}

// Service owns the order lifecycle. Every transition out of
// PENDING_DELIVERY or DISPUTED is a compare-and-swap on the status column;
// only the caller whose conditional update commits performs the single
// ledger release or refund for the order.
type Service struct {
	orderRepo   Repo
	wallets     WalletService
	inventory   listing.Inventory
	notifier    notify.Notifier
	audit       Auditor
	txManager   pg.TXManager
	holdFor     time.Duration
	platformFee domain.FeeSchedule
}

func New(orderRepo Repo, wallets WalletService, inventory listing.Inventory, notifier notify.Notifier,
	audit Auditor, txManager pg.TXManager, holdFor time.Duration, platformFee domain.FeeSchedule) *Service {
	return &Service{
		orderRepo:   orderRepo,
		wallets:     wallets,
		inventory:   inventory,
		notifier:    notifier,
		audit:       audit,
		txManager:   txManager,
		holdFor:     holdFor,
		platformFee: platformFee,
	}
}

// Create reserves the listing, takes the escrow hold from the buyer and
// opens the order in PENDING_DELIVERY. The reservation is an external call
// and therefore happens before the database transaction; it is released
// again if the hold cannot be taken.
func (s *Service) Create(ctx context.Context, buyerID, sellerID, listingID int, amount int64) (*domain.Order, error) {
	if amount <= 0 || buyerID == sellerID {
		return nil, domain.ErrValidation
	}

	buyerWallet, err := s.wallets.GetByUserID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if buyerWallet.Balance < amount {
		return nil, domain.ErrInsufficientFunds
	}

	if err := s.inventory.Reserve(ctx, listingID); err != nil {
		zap.L().Info("listing reservation failed", zap.Int("listingID", listingID), zap.Error(err))
		return nil, err
	}

	order := &domain.Order{
		ListingID:     listingID,
		BuyerID:       buyerID,
		SellerID:      sellerID,
		Amount:        amount,
		Status:        domain.OrderPendingDelivery,
		AutoReleaseAt: time.Now().Add(s.holdFor),
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		_, err := s.wallets.Debit(ctx, buyerWallet.ID, amount, domain.TxnEscrowHold, &order.ID)
		return err
	})
	if err != nil {
		if relErr := s.inventory.Release(ctx, listingID); relErr != nil {
			zap.L().Error("failed to release listing after aborted order", zap.Int("listingID", listingID), zap.Error(relErr))
		}
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindOrderCreated, UserID: sellerID, OrderID: order.ID})
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID, callerID int) (*domain.Order, error) {
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
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID, limit, offset int) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// ConfirmDelivery is the buyer's release trigger. The conditional update is
// the first atomic step: whoever moves the order out of PENDING_DELIVERY
// first wins, and the loser sees ErrInvalidState without touching funds.
func (s *Service) ConfirmDelivery(ctx context.Context, orderID, callerID int) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if callerID != order.BuyerID {
		return nil, domain.ErrForbidden
	}

	var completed *domain.Order
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		updated, err := s.orderRepo.UpdateStatusFrom(ctx, orderID, domain.OrderPendingDelivery, domain.OrderCompleted)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrInvalidState
		}
		if err := s.ReleaseToSeller(ctx, updated); err != nil {
			return err
		}
		completed = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindOrderCompleted, UserID: completed.SellerID, OrderID: completed.ID})
	return completed, nil
}

// AutoRelease is the timeout trigger. It is idempotent and safe to race:
// the conditional update requires status PENDING_DELIVERY and a passed
// deadline, so a second invocation (or a concurrent buyer confirmation)
// finds nothing to do and reports a benign no-op via a nil order.
func (s *Service) AutoRelease(ctx context.Context, orderID int) (*domain.Order, error) {
	var completed *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		updated, err := s.orderRepo.CompleteIfDue(ctx, orderID)
		if err != nil {
			return err
		}
		if updated == nil {
			return nil
		}
		if err := s.ReleaseToSeller(ctx, updated); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, auditservice.System, domain.AuditOrderAutoRelease, updated.ID, map[string]any{
			"seller_id": updated.SellerID,
			"amount":    updated.Amount,
		}); err != nil {
			return err
		}
		completed = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, nil
	}

	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindOrderAutoRelease, UserID: completed.SellerID, OrderID: completed.ID})
	return completed, nil
}

// Cancel is a moderator action on a not-yet-resolved order: refund the
// escrow hold to the buyer and return the listing to the market.
func (s *Service) Cancel(ctx context.Context, orderID int, actor auditservice.Actor, reason string) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		updated, err := s.orderRepo.UpdateStatusFrom(ctx, orderID, domain.OrderPendingDelivery, domain.OrderCancelled)
		if err != nil {
			return err
		}
		if updated == nil {
			existing, err := s.orderRepo.GetByID(ctx, orderID)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrNotFound
			}
			return domain.ErrInvalidState
		}
		if err := s.RefundToBuyer(ctx, updated); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, actor, domain.AuditOrderCancel, updated.ID, map[string]any{
			"buyer_id": updated.BuyerID,
			"amount":   updated.Amount,
			"reason":   reason,
		}); err != nil {
			return err
		}
		cancelled = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if relErr := s.inventory.Release(ctx, cancelled.ListingID); relErr != nil {
		zap.L().Error("failed to release listing after cancel", zap.Int("listingID", cancelled.ListingID), zap.Error(relErr))
	}
	s.notifier.Notify(ctx, notify.Event{Kind: notify.KindOrderCancelled, UserID: cancelled.BuyerID, OrderID: cancelled.ID})
	return cancelled, nil
}

// ReleaseToSeller credits the seller with the escrowed amount and, when a
// platform fee is configured, appends a separate FEE debit so the cut is
// visible in the ledger. Must run inside the transaction that won the
// status transition.
func (s *Service) ReleaseToSeller(ctx context.Context, order *domain.Order) error {
	sellerWallet, err := s.wallets.GetByUserID(ctx, order.SellerID)
	if err != nil {
		return err
	}
	if _, err := s.wallets.Credit(ctx, sellerWallet.ID, order.Amount, domain.TxnEscrowRelease, &order.ID); err != nil {
		return err
	}
	if fee := s.platformFee(order.Amount); fee > 0 {
		if _, err := s.wallets.Debit(ctx, sellerWallet.ID, fee, domain.TxnFee, &order.ID); err != nil {
			return err
		}
	}
	return nil
}

// RefundToBuyer returns the escrowed amount to the buyer in full.
func (s *Service) RefundToBuyer(ctx context.Context, order *domain.Order) error {
	buyerWallet, err := s.wallets.GetByUserID(ctx, order.BuyerID)
	if err != nil {
		return err
	}
	_, err = s.wallets.Credit(ctx, buyerWallet.ID, order.Amount, domain.TxnEscrowRefund, &order.ID)
	return err
}

// IsBenignRace reports whether an error from a release trigger is the
// expected outcome of losing the transition race rather than a failure.
func IsBenignRace(err error) bool {
	return errors.Is(err, domain.ErrInvalidState)
}
