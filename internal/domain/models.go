package domain

import (
	"encoding/json"
	"time"
)

// All money amounts are integer minor units (cents). Fees are expressed in
// basis points and applied by the configured fee schedule.

type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Wallet struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Balance   int64     `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TransactionType string

const (
	TxnDeposit       TransactionType = "DEPOSIT"
	TxnWithdrawal    TransactionType = "WITHDRAWAL"
	TxnEscrowHold    TransactionType = "ESCROW_HOLD"
	TxnEscrowRelease TransactionType = "ESCROW_RELEASE"
	TxnEscrowRefund  TransactionType = "ESCROW_REFUND"
	TxnFee           TransactionType = "FEE"
)

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnFailed    TransactionStatus = "FAILED"
)

// WalletTransaction rows are append-only; corrections are made by appending
// a compensating transaction, never by editing a row.
type WalletTransaction struct {
	ID             int               `db:"id"`
	WalletID       int               `db:"wallet_id"`
	Type           TransactionType   `db:"type"`
	Amount         int64             `db:"amount"`
	RelatedOrderID *int              `db:"related_order_id"`
	Status         TransactionStatus `db:"status"`
	CreatedAt      time.Time         `db:"created_at"`
}

type DepositStatus string

const (
	DepositPending   DepositStatus = "PENDING"
	DepositCompleted DepositStatus = "COMPLETED"
	DepositFailed    DepositStatus = "FAILED"
)

type Deposit struct {
	ID          int           `db:"id"`
	UserID      int           `db:"user_id"`
	GrossAmount int64         `db:"gross_amount"`
	FeeAmount   int64         `db:"fee_amount"`
	NetAmount   int64         `db:"net_amount"`
	Status      DepositStatus `db:"status"`
	ExternalRef string        `db:"external_ref"`
	CreatedAt   time.Time     `db:"created_at"`
}

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
	WithdrawalPaid     WithdrawalStatus = "PAID"
)

type WithdrawalRequest struct {
	ID         int              `db:"id"`
	UserID     int              `db:"user_id"`
	Amount     int64            `db:"amount"`
	IBAN       string           `db:"iban"`
	Status     WithdrawalStatus `db:"status"`
	ReviewedBy *int             `db:"reviewed_by"`
	ReviewedAt *time.Time       `db:"reviewed_at"`
	CreatedAt  time.Time        `db:"created_at"`
}

type OrderStatus string

const (
	OrderPendingDelivery OrderStatus = "PENDING_DELIVERY"
	OrderCompleted       OrderStatus = "COMPLETED"
	OrderDisputed        OrderStatus = "DISPUTED"
	OrderRefunded        OrderStatus = "REFUNDED"
	OrderCancelled       OrderStatus = "CANCELLED"
)

type Order struct {
	ID            int         `db:"id"`
	ListingID     int         `db:"listing_id"`
	BuyerID       int         `db:"buyer_id"`
	SellerID      int         `db:"seller_id"`
	Amount        int64       `db:"amount"`
	Status        OrderStatus `db:"status"`
	CreatedAt     time.Time   `db:"created_at"`
	AutoReleaseAt time.Time   `db:"auto_release_at"`
	CompletedAt   *time.Time  `db:"completed_at"`
}

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "OPEN"
	DisputeResolved DisputeStatus = "RESOLVED"
)

type DisputeResolution string

const (
	ResolutionRefundBuyer   DisputeResolution = "REFUND_BUYER"
	ResolutionReleaseSeller DisputeResolution = "RELEASE_SELLER"
)

type Dispute struct {
	ID         int                `db:"id"`
	OrderID    int                `db:"order_id"`
	OpenedBy   int                `db:"opened_by"`
	Reason     string             `db:"reason"`
	Status     DisputeStatus      `db:"status"`
	Resolution *DisputeResolution `db:"resolution"`
	ResolvedBy *int               `db:"resolved_by"`
	ResolvedAt *time.Time         `db:"resolved_at"`
	CreatedAt  time.Time          `db:"created_at"`
}

// Every privileged action has its own audit action constant.
const (
	AuditWithdrawalApprove = "withdrawal.approve"
	AuditWithdrawalReject  = "withdrawal.reject"
	AuditDisputeResolve    = "dispute.resolve"
	AuditOrderAutoRelease  = "order.auto_release"
	AuditOrderCancel       = "order.cancel"
	AuditDepositConfirm    = "deposit.confirm"
)

type AuditEntry struct {
	ID        int             `db:"id"`
	ActorID   int             `db:"actor_id"`
	Action    string          `db:"action"`
	TargetID  int             `db:"target_id"`
	Details   json.RawMessage `db:"details"`
	IPAddress string          `db:"ip_address"`
	UserAgent string          `db:"user_agent"`
	CreatedAt time.Time       `db:"created_at"`
}
