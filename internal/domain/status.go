package domain

import "fmt"

// Boundary parsers. Invalid values are rejected here so the core only ever
// sees the closed enumerations above.

func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TxnDeposit, TxnWithdrawal, TxnEscrowHold, TxnEscrowRelease, TxnEscrowRefund, TxnFee:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch t := TransactionStatus(s); t {
	case TxnPending, TxnCompleted, TxnFailed:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction status: %q", s)
}

func ParseDisputeStatus(s string) (DisputeStatus, error) {
	switch t := DisputeStatus(s); t {
	case DisputeOpen, DisputeResolved:
		return t, nil
	}
	return "", fmt.Errorf("unknown dispute status: %q", s)
}

func ParseResolution(s string) (DisputeResolution, error) {
	switch t := DisputeResolution(s); t {
	case ResolutionRefundBuyer, ResolutionReleaseSeller:
		return t, nil
	}
	return "", fmt.Errorf("unknown resolution: %q", s)
}
