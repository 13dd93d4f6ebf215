package dto

import "time"

type CreateOrderRequestDTO struct {
	ListingID int   `json:"listing_id" example:"9"`
	SellerID  int   `json:"seller_id" example:"2"`
	Amount    int64 `json:"amount" example:"30000"`
}

type OrderResponseDTO struct {
	ID            int        `json:"id" example:"42"`
	ListingID     int        `json:"listing_id" example:"9"`
	BuyerID       int        `json:"buyer_id" example:"1"`
	SellerID      int        `json:"seller_id" example:"2"`
	Amount        int64      `json:"amount" example:"30000"`
	Status        string     `json:"status" example:"PENDING_DELIVERY"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-11-09T16:09:57+03:00"`
	AutoReleaseAt time.Time  `json:"auto_release_at" example:"2025-11-16T16:09:57+03:00"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

type CancelOrderRequestDTO struct {
	Reason string `json:"reason" example:"seller account banned"`
}

type SweepResponseDTO struct {
	Released int `json:"released" example:"3"`
}
