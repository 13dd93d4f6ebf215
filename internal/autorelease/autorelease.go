package autorelease

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vbelyaev/escrowd/internal/config"
	"github.com/vbelyaev/escrowd/internal/domain"
)

var sweepingOrders sync.Map

type OrderRepo interface {
	FindDueForRelease(ctx context.Context, limit uint32) ([]domain.Order, error)
}

type OrderService interface {
	AutoRelease(ctx context.Context, orderID int) (*domain.Order, error)
}

// Service periodically sweeps orders whose hold deadline has passed and
// drives each through the idempotent auto-release transition. The deadline
// is pure data, so a crashed or restarted sweeper simply catches up on the
// next tick; racing the buyer's confirmation is safe because the losing
// trigger is a no-op.
type Service struct {
	orderRepo     OrderRepo
	orders        OrderService
	limit         uint32
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(cfg *config.Config, orderRepo OrderRepo, orders OrderService) *Service {
	return &Service{
		orderRepo:     orderRepo,
		orders:        orders,
		limit:         1000,
		workerPool:    NewWorkerPool(10),
		sweepInterval: cfg.SweepInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Auto-release sweeper started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				zap.L().Error("Sweep failed", zap.Error(err))
			}
		}
	}
}

// RunOnce performs a single sweep and reports how many orders it released.
// It is also the on-demand trigger behind the auto-release-check endpoint.
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	orders, err := s.orderRepo.FindDueForRelease(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch due orders", zap.Error(err))
		return 0, err
	}

	var released int64
	var g errgroup.Group
	for _, order := range orders {
		order := order

		if _, loaded := sweepingOrders.LoadOrStore(order.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			done := make(chan error, 1)
			err := s.workerPool.AddTask(ctx, func() error {
				defer sweepingOrders.Delete(order.ID)
				err := s.handleOrder(ctx, order, &released)
				done <- err
				return err
			})
			if err != nil {
				sweepingOrders.Delete(order.ID)
				return err
			}
			// The reported count must cover the whole batch, so wait for
			// the pool to finish the task, not just accept it.
			return <-done
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error sweeping due orders", zap.Error(err))
		return int(atomic.LoadInt64(&released)), err
	}
	return int(atomic.LoadInt64(&released)), nil
}

func (s *Service) handleOrder(ctx context.Context, order domain.Order, released *int64) error {
	completed, err := s.orders.AutoRelease(ctx, order.ID)
	if err != nil {
		zap.L().Error("Auto-release failed", zap.Int("orderID", order.ID), zap.Error(err))
		return err
	}
	if completed == nil {
		// Another trigger resolved the order between the batch read and
		// the conditional update. Expected under concurrency.
		zap.L().Debug("Order no longer eligible for auto-release", zap.Int("orderID", order.ID))
		return nil
	}
	atomic.AddInt64(released, 1)
	zap.L().Info("Order auto-released",
		zap.Int("orderID", completed.ID),
		zap.Int("sellerID", completed.SellerID),
		zap.Int64("amount", completed.Amount))
	return nil
}
