package coupon

import "time"

// Listing and transaction type tags stored in the "type" column.
const (
	TypeSell = "sell"
	TypeBuy  = "buy"
)

// Coupon is a listing offered for sale by its owner.
type Coupon struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Details    string    `json:"details"`
	Category   string    `json:"category,omitempty"`
	ExpiryDate time.Time `json:"expiry_date"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Transaction is the ledger entry for a completed purchase. Its ID is
// derived as buyerID_couponID so a retried purchase by the same buyer
// overwrites instead of duplicating.
type Transaction struct {
	ID          string    `json:"id"`
	CouponID    string    `json:"coupon_id"`
	CouponName  string    `json:"coupon_name"`
	CouponValue float64   `json:"coupon_value"`
	BuyerID     string    `json:"buyer_id"`
	BuyerEmail  string    `json:"buyer_email"`
	SellerID    string    `json:"seller_id"`
	SellerEmail string    `json:"seller_email"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Identity is the signed-in user as reported by the auth layer.
type Identity struct {
	ID    string
	Email string
}
