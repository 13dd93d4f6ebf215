package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/dto"
	"github.com/vbelyaev/escrowd/internal/service/auditservice"
	"github.com/vbelyaev/escrowd/pkg/auth"
	"github.com/vbelyaev/escrowd/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, buyerID, sellerID, listingID int, amount int64) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID, callerID int) (*domain.Order, error)
	ListOrders(ctx context.Context, userID, limit, offset int) ([]domain.Order, error)
	ConfirmDelivery(ctx context.Context, orderID, callerID int) (*domain.Order, error)
	Cancel(ctx context.Context, orderID int, actor auditservice.Actor, reason string) (*domain.Order, error)
}

// Sweeper runs one auto-release pass over orders whose protection
// window has elapsed.
type Sweeper interface {
	RunOnce(ctx context.Context) (int, error)
}

type OrderHandler struct {
	orderService Service
	sweeper      Sweeper
}

func New(orderService Service, sweeper Sweeper) *OrderHandler {
	return &OrderHandler{orderService: orderService, sweeper: sweeper}
}

// CreateOrder godoc
//
//	@Summary		Create an order and hold funds in escrow
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order payload"
//	@Success		201		{object}	dto.OrderResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		404		{object}	utils.Response	"Listing not found"
//	@Failure		409		{object}	utils.Response	"Listing unavailable"
//	@Failure		422		{object}	utils.Response	"Invalid payload"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	buyerID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.Create(r.Context(), buyerID, req.SellerID, req.ListingID, req.Amount)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, orderToDTO(order))
}

// GetOrder godoc
//
//	@Summary		Get a single order
//	@Description	Only the buyer and the seller of the order may read it.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"order id"
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID, callerID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderToDTO(order))
}

// GetOrders godoc
//
//	@Summary		List orders the caller participates in
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	limit, offset := utils.Pagination(r)
	orders, err := h.orderService.ListOrders(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.OrderResponseDTO, len(orders))
	for i := range orders {
		response[i] = orderToDTO(&orders[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ConfirmDelivery godoc
//
//	@Summary		Confirm delivery and release escrow to the seller
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"order id"
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Caller is not the buyer"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order not awaiting delivery"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders/{id}/confirm [post]
func (h *OrderHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.orderService.ConfirmDelivery(r.Context(), orderID, callerID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderToDTO(order))
}

// CancelOrder godoc
//
//	@Summary		Cancel an order and refund the buyer
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"order id"
//	@Param			request	body		dto.CancelOrderRequestDTO	true	"cancellation reason"
//	@Success		200		{object}	dto.OrderResponseDTO
//	@Failure		403		{object}	utils.Response	"Forbidden"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		409		{object}	utils.Response	"Order not awaiting delivery"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	actorID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req dto.CancelOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := auditservice.Actor{ID: actorID, IPAddress: r.RemoteAddr, UserAgent: r.UserAgent()}
	order, err := h.orderService.Cancel(r.Context(), orderID, actor, req.Reason)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderToDTO(order))
}

// RunAutoRelease godoc
//
//	@Summary		Trigger one auto-release sweep immediately
//	@Description	The sweep also runs periodically in the background; this endpoint forces a pass.
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SweepResponseDTO
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/auto-release [post]
func (h *OrderHandler) RunAutoRelease(w http.ResponseWriter, r *http.Request) {
	released, err := h.sweeper.RunOnce(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SweepResponseDTO{Released: released})
}

func orderToDTO(o *domain.Order) dto.OrderResponseDTO {
	return dto.OrderResponseDTO{
		ID:            o.ID,
		ListingID:     o.ListingID,
		BuyerID:       o.BuyerID,
		SellerID:      o.SellerID,
		Amount:        o.Amount,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		AutoReleaseAt: o.AutoReleaseAt,
		CompletedAt:   o.CompletedAt,
	}
}
