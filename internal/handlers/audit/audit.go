package audit

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vbelyaev/escrowd/internal/domain"
	"github.com/vbelyaev/escrowd/internal/dto"
	auditrepo "github.com/vbelyaev/escrowd/internal/repo/audit-repo"
	"github.com/vbelyaev/escrowd/pkg/utils"
)

type Service interface {
	List(ctx context.Context, filter auditrepo.Filter, limit, offset int) ([]domain.AuditEntry, error)
}

type AuditHandler struct {
	auditService Service
}

func New(auditService Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetEntries godoc
//
//	@Summary		Query the audit log
//	@Description	Filterable by actor, action, target and time range. Newest entries first.
//	@Tags			Moderation
//	@Security		BearerAuth
//	@Produce		json
//	@Param			actor_id	query		int		false	"actor user id"
//	@Param			action		query		string	false	"action name, e.g. dispute.resolve"
//	@Param			target_id	query		int		false	"target entity id"
//	@Param			from		query		string	false	"RFC 3339 lower bound"
//	@Param			to			query		string	false	"RFC 3339 upper bound"
//	@Param			limit		query		int		false	"page size"
//	@Param			offset		query		int		false	"page offset"
//	@Success		200			{array}		dto.AuditEntryResponseDTO
//	@Failure		403			{object}	utils.Response	"Forbidden"
//	@Failure		422			{object}	utils.Response	"Malformed filter value"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/moderator/audit [get]
func (h *AuditHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	limit, offset := utils.Pagination(r)
	entries, err := h.auditService.List(r.Context(), filter, limit, offset)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	response := make([]dto.AuditEntryResponseDTO, len(entries))
	for i, entry := range entries {
		response[i] = dto.AuditEntryResponseDTO{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			Action:    entry.Action,
			TargetID:  entry.TargetID,
			Details:   entry.Details,
			IPAddress: entry.IPAddress,
			UserAgent: entry.UserAgent,
			CreatedAt: entry.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func filterFromQuery(r *http.Request) (auditrepo.Filter, error) {
	var filter auditrepo.Filter
	query := r.URL.Query()

	if raw := query.Get("actor_id"); raw != "" {
		actorID, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.ActorID = &actorID
	}
	if raw := query.Get("action"); raw != "" {
		filter.Action = &raw
	}
	if raw := query.Get("target_id"); raw != "" {
		targetID, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.TargetID = &targetID
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	return filter, nil
}
