package booking

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Normalize maps unknown or empty statuses to pending, matching how the
// dashboard renders records created before payments existed.
func (s PaymentStatus) Normalize() PaymentStatus {
	switch s {
	case PaymentPaid, PaymentFailed:
		return s
	default:
		return PaymentPending
	}
}
