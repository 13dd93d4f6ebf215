package domain

// FeeSchedule computes the fee withheld from an amount. Kept as a pure
// injectable function so the schedule can change without touching the
// ledger or the state machine.
type FeeSchedule func(amount int64) int64

// BasisPointFee returns a schedule charging bps/10000 of the amount,
// rounded down.
func BasisPointFee(bps int64) FeeSchedule {
	return func(amount int64) int64 {
		if amount <= 0 || bps <= 0 {
			return 0
		}
		return amount * bps / 10000
	}
}
