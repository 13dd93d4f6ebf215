package repo

import (
	"github.com/vbelyaev/escrowd/internal/pg"
	auditrepo "github.com/vbelyaev/escrowd/internal/repo/audit-repo"
	depositrepo "github.com/vbelyaev/escrowd/internal/repo/deposit-repo"
	disputerepo "github.com/vbelyaev/escrowd/internal/repo/dispute-repo"
	orderrepo "github.com/vbelyaev/escrowd/internal/repo/order-repo"
	userrepo "github.com/vbelyaev/escrowd/internal/repo/user-repo"
	walletrepo "github.com/vbelyaev/escrowd/internal/repo/wallet-repo"
	withdrawalrepo "github.com/vbelyaev/escrowd/internal/repo/withdrawal-repo"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/internal/service/authservice"
	"github.com/vbelyaev/escrowd/internal/service/depositservice"
	"github.com/vbelyaev/escrowd/internal/service/disputeservice"
	"github.com/vbelyaev/escrowd/internal/service/orderservice"
	"github.com/vbelyaev/escrowd/internal/service/walletservice"
	"github.com/vbelyaev/escrowd/internal/service/withdrawalservice"
)

type Repositories struct {
	UserRepo       authservice.Repo
	WalletRepo     walletservice.WalletRepo
	OrderRepo      orderservice.Repo
	DepositRepo    depositservice.Repo
	WithdrawalRepo withdrawalservice.Repo
	DisputeRepo    disputeservice.Repo
	AuditRepo      auditservice.AuditRepo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:       userrepo.New(conn),
		WalletRepo:     walletrepo.New(conn),
		OrderRepo:      orderrepo.New(conn),
		DepositRepo:    depositrepo.New(conn),
		WithdrawalRepo: withdrawalrepo.New(conn),
		DisputeRepo:    disputerepo.New(conn),
		AuditRepo:      auditrepo.New(conn),
	}
}
