package handlers

import (
	"net/http"

	_ "github.com/vbelyaev/escrowd/docs"
	audithandlers "github.com/vbelyaev/escrowd/internal/handlers/audit"
	authhandlers "github.com/vbelyaev/escrowd/internal/handlers/auth"
	disputehandlers "github.com/vbelyaev/escrowd/internal/handlers/disputes"
	ordershandlers "github.com/vbelyaev/escrowd/internal/handlers/orders"
	wallethandlers "github.com/vbelyaev/escrowd/internal/handlers/wallet"
	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/service"
	"github.com/vbelyaev/escrowd/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetWallet(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	InitiateDeposit(w http.ResponseWriter, r *http.Request)
	GetDeposits(w http.ResponseWriter, r *http.Request)
	ConfirmDeposit(w http.ResponseWriter, r *http.Request)
	FailDeposit(w http.ResponseWriter, r *http.Request)
	RequestWithdrawal(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	ListPendingWithdrawals(w http.ResponseWriter, r *http.Request)
	ApproveWithdrawal(w http.ResponseWriter, r *http.Request)
	RejectWithdrawal(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	ConfirmDelivery(w http.ResponseWriter, r *http.Request)
	CancelOrder(w http.ResponseWriter, r *http.Request)
	RunAutoRelease(w http.ResponseWriter, r *http.Request)
}

type DisputeHandler interface {
	OpenDispute(w http.ResponseWriter, r *http.Request)
	GetOrderDispute(w http.ResponseWriter, r *http.Request)
	ResolveDispute(w http.ResponseWriter, r *http.Request)
	ListDisputes(w http.ResponseWriter, r *http.Request)
}

type AuditHandler interface {
	GetEntries(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	WalletHandler  WalletHandler
	OrderHandler   OrderHandler
	DisputeHandler DisputeHandler
	AuditHandler   AuditHandler
}

func New(s *service.Services, sweeper ordershandlers.Sweeper) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		WalletHandler:  wallethandlers.New(s.WalletService, s.DepositService, s.WithdrawalService),
		OrderHandler:   ordershandlers.New(s.OrderService, sweeper),
		DisputeHandler: disputehandlers.New(s.DisputeService),
		AuditHandler:   audithandlers.New(s.AuditService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", h.WalletHandler.GetWallet)
				r.Get("/transactions", h.WalletHandler.GetTransactions)
			})
			r.Route("/deposits", func(r chi.Router) {
				r.Post("/", h.WalletHandler.InitiateDeposit)
				r.Get("/", h.WalletHandler.GetDeposits)
			})
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.WalletHandler.RequestWithdrawal)
				r.Get("/", h.WalletHandler.GetWithdrawals)
			})
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.CreateOrder)
				r.Get("/", h.OrderHandler.GetOrders)
				r.Get("/{id}", h.OrderHandler.GetOrder)
				r.Post("/{id}/confirm", h.OrderHandler.ConfirmDelivery)
				r.Post("/{id}/dispute", h.DisputeHandler.OpenDispute)
			r.Get("/{id}/dispute", h.DisputeHandler.GetOrderDispute)
			})
		})
	})

	// Payment gateway callbacks are authenticated upstream by the gateway
	// integration, not by user tokens.
	r.Route("/api/deposits", func(r chi.Router) {
		r.Post("/{ref}/confirm", h.WalletHandler.ConfirmDeposit)
		r.Post("/{ref}/fail", h.WalletHandler.FailDeposit)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.RequireRole(domain.RoleModerator, domain.RoleAdmin))
		r.Post("/api/orders/auto-release", h.OrderHandler.RunAutoRelease)
		r.Route("/api/moderator", func(r chi.Router) {
			r.Route("/disputes", func(r chi.Router) {
				r.Get("/", h.DisputeHandler.ListDisputes)
				r.Post("/{id}/resolve", h.DisputeHandler.ResolveDispute)
			})
			r.Route("/withdrawals", func(r chi.Router) {
				r.Get("/", h.WalletHandler.ListPendingWithdrawals)
				r.Post("/{id}/approve", h.WalletHandler.ApproveWithdrawal)
				r.Post("/{id}/reject", h.WalletHandler.RejectWithdrawal)
			})
			r.Post("/orders/{id}/cancel", h.OrderHandler.CancelOrder)
			r.Get("/audit", h.AuditHandler.GetEntries)
		})
	})

	return r
}
