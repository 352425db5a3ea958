package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail    = "email:welcome"
	TaskPurchaseReceipt = "email:purchase_receipt"
	TaskCouponSold      = "email:coupon_sold"
	TaskPasswordReset   = "email:password_reset"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Purchase receipt payload (sent to the buyer after a transfer commits)
type PurchaseReceiptPayload struct {
	TransactionID string        `json:"transaction_id"`
	CouponName    string        `json:"coupon_name"`
	BuyerID       string        `json:"buyer_id"`
	Email         string        `json:"email"`
	Amount        float64       `json:"amount"`
	Envelope      EmailEnvelope `json:"envelope"`
	SentAt        time.Time     `json:"sent_at"`
}

// Coupon sold payload (sent to the seller after a transfer commits)
type CouponSoldPayload struct {
	TransactionID string        `json:"transaction_id"`
	CouponName    string        `json:"coupon_name"`
	SellerID      string        `json:"seller_id"`
	Email         string        `json:"email"`
	Amount        float64       `json:"amount"`
	Envelope      EmailEnvelope `json:"envelope"`
	SentAt        time.Time     `json:"sent_at"`
}

// Password reset payload
type PasswordResetPayload struct {
	UserID    string        `json:"user_id"`
	Email     string        `json:"email"`
	ResetURL  string        `json:"reset_url"`
	Envelope  EmailEnvelope `json:"envelope"`
	Requested time.Time     `json:"requested"`
}
