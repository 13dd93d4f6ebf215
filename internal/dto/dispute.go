package dto

import "time"

type OpenDisputeRequestDTO struct {
	Reason string `json:"reason" example:"item never arrived"`
}

type ResolveDisputeRequestDTO struct {
	Resolution string `json:"resolution" example:"REFUND_BUYER"`
}

type DisputeResponseDTO struct {
	ID         int        `json:"id" example:"7"`
	OrderID    int        `json:"order_id" example:"42"`
	OpenedBy   int        `json:"opened_by" example:"1"`
	Reason     string     `json:"reason" example:"item never arrived"`
	Status     string     `json:"status" example:"OPEN"`
	Resolution *string    `json:"resolution,omitempty" example:"REFUND_BUYER"`
	ResolvedBy *int       `json:"resolved_by,omitempty" example:"3"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" example:"2025-11-09T16:09:57+03:00"`
}
