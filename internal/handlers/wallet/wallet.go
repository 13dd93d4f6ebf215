package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/dto"
	walletrepo "github.com/vbelyaev/escrowd/internal/repo/wallet-repo"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/pkg/auth"
	"github.com/vbelyaev/escrowd/pkg/utils"
)

type Service interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	History(ctx context.Context, userID int, filter walletrepo.TxnFilter, limit, offset int) ([]domain.WalletTransaction, error)
}

type DepositService interface {
	Initiate(ctx context.Context, userID int, grossAmount int64) (*domain.Deposit, error)
	Confirm(ctx context.Context, externalRef string) (*domain.Deposit, error)
	Fail(ctx context.Context, externalRef string) (*domain.Deposit, error)
	ListForUser(ctx context.Context, userID, limit, offset int) ([]domain.Deposit, error)
}

type WithdrawalService interface {
	Request(ctx context.Context, userID int, amount int64, iban string) (*domain.WithdrawalRequest, error)
	Approve(ctx context.Context, requestID int, actor auditservice.Actor) (*domain.WithdrawalRequest, error)
	Reject(ctx context.Context, requestID int, actor auditservice.Actor, reason string) (*domain.WithdrawalRequest, error)
	ListForUser(ctx context.Context, userID, limit, offset int) ([]domain.WithdrawalRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.WithdrawalRequest, error)
}

type WalletHandler struct {
	walletService     Service
	depositService    DepositService
	withdrawalService WithdrawalService
}

func New(walletService Service, depositService DepositService, withdrawalService WithdrawalService) *WalletHandler {
	return &WalletHandler{
		walletService:     walletService,
		depositService:    depositService,
		withdrawalService: withdrawalService,
	}
}

func actorFromRequest(r *http.Request) auditservice.Actor {
	userID, _ := r.Context().Value(auth.UserIDKey).(int)
	return auditservice.Actor{
		ID:        userID,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// GetWallet godoc
//
//	@Summary		Get current wallet balance
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WalletResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Wallet not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/wallet [get]
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	wallet, err := h.walletService.GetByUserID(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WalletResponseDTO{
		Balance:   wallet.Balance,
		UpdatedAt: wallet.UpdatedAt,
	})
}

// GetTransactions godoc
//
//	@Summary		Get wallet transaction history
//	@Description	Newest-first ledger entries, optionally filtered by type and status.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Param			type	query		string	false	"transaction type filter"
//	@Param			status	query		string	false	"transaction status filter"
//	@Param			limit	query		int		false	"page size"
//	@Param			offset	query		int		false	"page offset"
//	@Success		200		{array}		dto.TransactionResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Unknown filter value"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/wallet/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var filter walletrepo.TxnFilter
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := domain.ParseTransactionType(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		filter.Type = &parsed
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseTransactionStatus(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		filter.Status = &parsed
	}

	limit, offset := utils.Pagination(r)
	txns, err := h.walletService.History(r.Context(), userID, filter, limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.TransactionResponseDTO, len(txns))
	for i, txn := range txns {
		response[i] = dto.TransactionResponseDTO{
			ID:             txn.ID,
			Type:           string(txn.Type),
			Amount:         txn.Amount,
			RelatedOrderID: txn.RelatedOrderID,
			Status:         string(txn.Status),
			CreatedAt:      txn.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// InitiateDeposit godoc
//
//	@Summary		Start a deposit
//	@Description	Creates a pending deposit and returns the external reference handed to the payment gateway.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit request payload"
//	@Success		201		{object}	dto.DepositResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Invalid amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [post]
func (h *WalletHandler) InitiateDeposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	deposit, err := h.depositService.Initiate(r.Context(), userID, req.Amount)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, depositToDTO(deposit))
}

// ConfirmDeposit godoc
//
//	@Summary		Payment gateway confirmation callback
//	@Description	Idempotent: replaying a confirmation for a completed deposit returns it unchanged.
//	@Tags			Wallet
//	@Produce		json
//	@Param			ref	path		string	true	"external deposit reference"
//	@Success		200	{object}	dto.DepositResponseDTO
//	@Failure		404	{object}	utils.Response	"Unknown reference"
//	@Failure		409	{object}	utils.Response	"Deposit already failed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/deposits/{ref}/confirm [post]
func (h *WalletHandler) ConfirmDeposit(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	deposit, err := h.depositService.Confirm(r.Context(), ref)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, depositToDTO(deposit))
}

// FailDeposit godoc
//
//	@Summary		Payment gateway failure callback
//	@Tags			Wallet
//	@Produce		json
//	@Param			ref	path		string	true	"external deposit reference"
//	@Success		200	{object}	dto.DepositResponseDTO
//	@Failure		404	{object}	utils.Response	"Unknown reference"
//	@Failure		409	{object}	utils.Response	"Deposit not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/deposits/{ref}/fail [post]
func (h *WalletHandler) FailDeposit(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	deposit, err := h.depositService.Fail(r.Context(), ref)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, depositToDTO(deposit))
}

// GetDeposits godoc
//
//	@Summary		Get deposit history
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.DepositResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/deposits [get]
func (h *WalletHandler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	limit, offset := utils.Pagination(r)
	deposits, err := h.depositService.ListForUser(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.DepositResponseDTO, len(deposits))
	for i := range deposits {
		response[i] = depositToDTO(&deposits[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// RequestWithdrawal godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Reserves the amount immediately; a moderator decision follows.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Withdrawal request payload"
//	@Success		201		{object}	dto.WithdrawalResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		422		{object}	utils.Response	"Invalid amount or IBAN"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [post]
func (h *WalletHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.withdrawalService.Request(r.Context(), userID, req.Amount, req.IBAN)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, withdrawalToDTO(request))
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawal history
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WalletHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	limit, offset := utils.Pagination(r)
	requests, err := h.withdrawalService.ListForUser(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i := range requests {
		response[i] = withdrawalToDTO(&requests[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListPendingWithdrawals godoc
//
//	@Summary		List withdrawal requests awaiting review
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/withdrawals [get]
func (h *WalletHandler) ListPendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r)
	requests, err := h.withdrawalService.ListPending(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.WithdrawalResponseDTO, len(requests))
	for i := range requests {
		response[i] = withdrawalToDTO(&requests[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ApproveWithdrawal godoc
//
//	@Summary		Approve a pending withdrawal request
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"withdrawal request id"
//	@Success		200	{object}	dto.WithdrawalResponseDTO
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"Request not found"
//	@Failure		409	{object}	utils.Response	"Request not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/withdrawals/{id}/approve [post]
func (h *WalletHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	request, err := h.withdrawalService.Approve(r.Context(), requestID, actorFromRequest(r))
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, withdrawalToDTO(request))
}

// RejectWithdrawal godoc
//
//	@Summary		Reject a pending withdrawal request
//	@Description	Rejection restores the reserved amount with a compensating credit.
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"withdrawal request id"
//	@Param			request	body		dto.WithdrawalRejectRequestDTO	true	"rejection reason"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		403		{object}	utils.Response	"Forbidden"
//	@Failure		404		{object}	utils.Response	"Request not found"
//	@Failure		409		{object}	utils.Response	"Request not pending"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/withdrawals/{id}/reject [post]
func (h *WalletHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req dto.WithdrawalRejectRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.withdrawalService.Reject(r.Context(), requestID, actorFromRequest(r), req.Reason)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, withdrawalToDTO(request))
}

func depositToDTO(d *domain.Deposit) dto.DepositResponseDTO {
	return dto.DepositResponseDTO{
		ID:          d.ID,
		GrossAmount: d.GrossAmount,
		FeeAmount:   d.FeeAmount,
		NetAmount:   d.NetAmount,
		Status:      string(d.Status),
		ExternalRef: d.ExternalRef,
		CreatedAt:   d.CreatedAt,
	}
}

func withdrawalToDTO(wr *domain.WithdrawalRequest) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:         wr.ID,
		Amount:     wr.Amount,
		IBAN:       wr.IBAN,
		Status:     string(wr.Status),
		ReviewedBy: wr.ReviewedBy,
		ReviewedAt: wr.ReviewedAt,
		CreatedAt:  wr.CreatedAt,
	}
}
