package dto

import "time"

type WalletResponseDTO struct {
	Balance   int64     `json:"balance" example:"50000"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-11-09T16:09:57+03:00"`
}

type TransactionResponseDTO struct {
	ID             int       `json:"id" example:"17"`
	Type           string    `json:"type" example:"ESCROW_HOLD"`
	Amount         int64     `json:"amount" example:"-30000"`
	RelatedOrderID *int      `json:"related_order_id,omitempty" example:"42"`
	Status         string    `json:"status" example:"COMPLETED"`
	CreatedAt      time.Time `json:"created_at" example:"2025-11-09T16:09:57+03:00"`
}

type DepositRequestDTO struct {
	Amount int64 `json:"amount" example:"100000"`
}

type DepositResponseDTO struct {
	ID          int       `json:"id" example:"3"`
	GrossAmount int64     `json:"gross_amount" example:"100000"`
	FeeAmount   int64     `json:"fee_amount" example:"1500"`
	NetAmount   int64     `json:"net_amount" example:"98500"`
	Status      string    `json:"status" example:"PENDING"`
	ExternalRef string    `json:"external_ref" example:"7e6b2b3e-0f1c-4f9a-9f0a-1f2e3d4c5b6a"`
	CreatedAt   time.Time `json:"created_at" example:"2025-11-09T16:09:57+03:00"`
}

type WithdrawalRequestDTO struct {
	Amount int64  `json:"amount" example:"25000"`
	IBAN   string `json:"iban" example:"DE89370400440532013000"`
}

type WithdrawalResponseDTO struct {
	ID         int        `json:"id" example:"5"`
	Amount     int64      `json:"amount" example:"25000"`
	IBAN       string     `json:"iban" example:"DE89370400440532013000"`
	Status     string     `json:"status" example:"PENDING"`
	ReviewedBy *int       `json:"reviewed_by,omitempty" example:"2"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" example:"2025-11-09T16:09:57+03:00"`
}

type WithdrawalRejectRequestDTO struct {
	Reason string `json:"reason" example:"destination account could not be verified"`
}
