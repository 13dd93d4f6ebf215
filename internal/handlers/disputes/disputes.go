package disputes

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
	Open(ctx context.Context, orderID, callerID int, reason string) (*domain.Dispute, error)
	Resolve(ctx context.Context, disputeID int, actor auditservice.Actor, resolution domain.DisputeResolution) (*domain.Dispute, error)
	GetByOrder(ctx context.Context, orderID, callerID int) (*domain.Dispute, error)
	List(ctx context.Context, status *domain.DisputeStatus, limit, offset int) ([]domain.Dispute, error)
}

type DisputeHandler struct {
	disputeService Service
}

func New(disputeService Service) *DisputeHandler {
	return &DisputeHandler{disputeService: disputeService}
}

// OpenDispute godoc
//
//	@Summary		Open a dispute on an order
//	@Description	Freezes the escrowed funds until a moderator resolves the dispute.
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"order id"
//	@Param			request	body		dto.OpenDisputeRequestDTO	true	"dispute reason"
//	@Success		201		{object}	dto.DisputeResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not a participant"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		409		{object}	utils.Response	"Order not disputable"
//	@Failure		422		{object}	utils.Response	"Missing reason"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders/{id}/dispute [post]
func (h *DisputeHandler) OpenDispute(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req dto.OpenDisputeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dispute, err := h.disputeService.Open(r.Context(), orderID, callerID, req.Reason)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, disputeToDTO(dispute))
}

// GetOrderDispute godoc
//
//	@Summary		Get the dispute on an order
//	@Tags			Disputes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"order id"
//	@Success		200	{object}	dto.DisputeResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"No dispute on this order"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders/{id}/dispute [get]
func (h *DisputeHandler) GetOrderDispute(w http.ResponseWriter, r *http.Request) {
	callerID := r.Context().Value(auth.UserIDKey).(int)

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	dispute, err := h.disputeService.GetByOrder(r.Context(), orderID, callerID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, disputeToDTO(dispute))
}

// ResolveDispute godoc
//
//	@Summary		Resolve an open dispute
//	@Description	REFUND_BUYER returns the escrowed amount to the buyer; RELEASE_SELLER pays the seller.
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"dispute id"
//	@Param			request	body		dto.ResolveDisputeRequestDTO	true	"resolution verdict"
//	@Success		200		{object}	dto.DisputeResponseDTO
//	@Failure		403		{object}	utils.Response	"Forbidden"
//	@Failure		404		{object}	utils.Response	"Dispute not found"
//	@Failure		409		{object}	utils.Response	"Dispute already resolved"
//	@Failure		422		{object}	utils.Response	"Unknown resolution"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/disputes/{id}/resolve [post]
func (h *DisputeHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	actorID := r.Context().Value(auth.UserIDKey).(int)

	disputeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid dispute id")
		return
	}

	var req dto.ResolveDisputeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resolution, err := domain.ParseResolution(req.Resolution)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	actor := auditservice.Actor{ID: actorID, IPAddress: r.RemoteAddr, UserAgent: r.UserAgent()}
	dispute, err := h.disputeService.Resolve(r.Context(), disputeID, actor, resolution)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, disputeToDTO(dispute))
}

// ListDisputes godoc
//
//	@Summary		List disputes
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"dispute status filter"
//	@Success		200		{array}		dto.DisputeResponseDTO
//	@Failure		403		{object}	utils.Response	"Forbidden"
//	@Failure		422		{object}	utils.Response	"Unknown status"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/disputes [get]
func (h *DisputeHandler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	var status *domain.DisputeStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseDisputeStatus(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		status = &parsed
	}

	limit, offset := utils.Pagination(r)
	disputes, err := h.disputeService.List(r.Context(), status, limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.DisputeResponseDTO, len(disputes))
	for i := range disputes {
		response[i] = disputeToDTO(&disputes[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func disputeToDTO(d *domain.Dispute) dto.DisputeResponseDTO {
	out := dto.DisputeResponseDTO{
		ID:         d.ID,
		OrderID:    d.OrderID,
		OpenedBy:   d.OpenedBy,
		Reason:     d.Reason,
		Status:     string(d.Status),
		ResolvedBy: d.ResolvedBy,
		ResolvedAt: d.ResolvedAt,
		CreatedAt:  d.CreatedAt,
	}
	if d.Resolution != nil {
		resolution := string(*d.Resolution)
		out.Resolution = &resolution
	}
	return out
}
