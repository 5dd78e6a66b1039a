package domain

// Valid reports whether t is one of the known leave types.
func (t LeaveType) Valid() bool {
	switch t {
	case LeavePaid, LeaveSick, LeaveUnpaid:
		return true
	}
	return false
}

// Available returns the remaining balance for a leave type. Unpaid leave is
// not limited by a balance.
func (b LeaveBalance) Available(t LeaveType) (float64, bool) {
	switch t {
	case LeavePaid:
		return b.Paid, true
	case LeaveSick:
		return b.Sick, true
	}
	return 0, false
}

// Covers reports whether the balance allows taking days of type t.
func (b LeaveBalance) Covers(t LeaveType, days float64) bool {
	available, limited := b.Available(t)
	return !limited || available >= days
}

// Consume returns the balance after an approved leave of days of type t:
// paid and sick counters decrease, the unpaid counter accumulates days taken.
func (b LeaveBalance) Consume(t LeaveType, days float64) (LeaveBalance, error) {
	if !b.Covers(t, days) {
		return b, ErrInsufficientBalance
	}
	switch t {
	case LeavePaid:
		b.Paid = Round2(b.Paid - days)
	case LeaveSick:
		b.Sick = Round2(b.Sick - days)
	case LeaveUnpaid:
		b.Unpaid = Round2(b.Unpaid + days)
	}
	return b, nil
}
