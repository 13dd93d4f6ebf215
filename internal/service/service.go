package service

import (
	"github.com/vbelyaev/escrowd/internal/autorelease"
	"github.com/vbelyaev/escrowd/internal/config"
	"github.com/vbelyaev/escrowd/internal/handlers/audit"
	"github.com/vbelyaev/escrowd/internal/handlers/auth"
	"github.com/vbelyaev/escrowd/internal/handlers/disputes"
	"github.com/vbelyaev/escrowd/internal/handlers/orders"
	"github.com/vbelyaev/escrowd/internal/handlers/wallet"
	"github.com/vbelyaev/escrowd/internal/listing"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"

	pkgauth "github.com/vbelyaev/escrowd/pkg/auth"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/repo"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/internal/service/authservice"
	"github.com/vbelyaev/escrowd/internal/service/depositservice"
	"github.com/vbelyaev/escrowd/internal/service/disputeservice"
	"github.com/vbelyaev/escrowd/internal/service/orderservice"
	"github.com/vbelyaev/escrowd/internal/service/walletservice"
	"github.com/vbelyaev/escrowd/internal/service/withdrawalservice"
)

type Services struct {
	AuthService       auth.Service
	WalletService     wallet.Service
	DepositService    wallet.DepositService
	WithdrawalService wallet.WithdrawalService
	OrderService      orders.Service
	DisputeService    disputes.Service
	AuditService      audit.Service

	// AutoReleaser is the same order service narrowed to the single
	// transition the background sweeper drives.
	AutoReleaser autorelease.OrderService
}

func New(repo *repo.Repositories, cfg *config.Config, txManager pg.TXManager,
	inventory listing.Inventory, notifier notify.Notifier) *Services {
	auditService := auditservice.New(repo.AuditRepo)
	walletService := walletservice.New(repo.WalletRepo, txManager)
	authService := authservice.New(repo.UserRepo, walletService, &pkgauth.HashService{}, &pkgauth.JWTService{})
	depositService := depositservice.New(repo.DepositRepo, walletService, auditService, txManager,
		domain.BasisPointFee(cfg.DepositFeeBPS))
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, walletService, auditService, notifier, txManager)
	orderService := orderservice.New(repo.OrderRepo, walletService, inventory, notifier,
		auditService, txManager, cfg.HoldDuration, domain.BasisPointFee(cfg.PlatformFeeBPS))
	disputeService := disputeservice.New(repo.DisputeRepo, repo.OrderRepo, orderService, auditService,
		notifier, txManager)

	return &Services{
		AuthService:       authService,
		WalletService:     walletService,
		DepositService:    depositService,
		WithdrawalService: withdrawalService,
		OrderService:      orderService,
		DisputeService:    disputeService,
		AuditService:      auditService,
		AutoReleaser:      orderService,
	}
}
