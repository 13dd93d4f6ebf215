package dto

import (
	"encoding/json"
	"time"
)

type AuditEntryResponseDTO struct {
	ID        int             `json:"id" example:"101"`
	ActorID   int             `json:"actor_id" example:"3"`
	Action    string          `json:"action" example:"dispute.resolve"`
	TargetID  int             `json:"target_id" example:"7"`
	Details   json.RawMessage `json:"details"`
	IPAddress string          `json:"ip_address" example:"203.0.113.7"`
	UserAgent string          `json:"user_agent" example:"Mozilla/5.0"`
	CreatedAt time.Time       `json:"created_at" example:"2025-11-09T16:09:57+03:00"`
}
