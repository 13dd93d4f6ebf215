package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/vbelyaev/escrowd/internal/config"
	"github.com/vbelyaev/escrowd/internal/listing"
	"github.com/vbelyaev/escrowd/internal/notify"
	"github.com/vbelyaev/escrowd/internal/pg"
	"github.com/vbelyaev/escrowd/internal/repo"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/internal/service/authservice"
	"github.com/vbelyaev/escrowd/internal/service/depositservice"
	"github.com/vbelyaev/escrowd/internal/service/disputeservice"
	"github.com/vbelyaev/escrowd/internal/service/orderservice"
	"github.com/vbelyaev/escrowd/internal/service/walletservice"
	"github.com/vbelyaev/escrowd/internal/service/withdrawalservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos := &repo.Repositories{
		UserRepo:       authservice.NewMockRepo(ctrl),
		WalletRepo:     walletservice.NewMockWalletRepo(ctrl),
		OrderRepo:      orderservice.NewMockRepo(ctrl),
		DepositRepo:    depositservice.NewMockRepo(ctrl),
		WithdrawalRepo: withdrawalservice.NewMockRepo(ctrl),
		DisputeRepo:    disputeservice.NewMockRepo(ctrl),
		AuditRepo:      auditservice.NewMockAuditRepo(ctrl),
	}

	cfg := &config.Config{
		HoldDuration:   7 * 24 * time.Hour,
		PlatformFeeBPS: 250,
		DepositFeeBPS:  150,
	}

	services := New(repos, cfg, pg.NewMockTXManager(ctrl), listing.NewMockInventory(ctrl), notify.NewMockNotifier(ctrl))

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.WalletService)
	assert.NotNil(t, services.DepositService)
	assert.NotNil(t, services.WithdrawalService)
	assert.NotNil(t, services.OrderService)
	assert.NotNil(t, services.DisputeService)
	assert.NotNil(t, services.AuditService)
	assert.NotNil(t, services.AutoReleaser)
}
