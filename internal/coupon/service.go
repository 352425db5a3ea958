package coupon

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Store is the document access the service needs. The Postgres
// implementation lives in store_pg.go; tests use an in-memory fake.
type Store interface {
	// Transfer runs fn against the current state of one listing inside a
	// single all-or-nothing unit. fn receives nil when the listing does not
	// exist. When fn returns a record, the store persists it (overwriting
	// any record with the same id) and deletes the listing in the same
	// unit; when fn returns an error nothing is written.
	Transfer(ctx context.Context, couponID string, fn func(*Coupon) (*Transaction, error)) error

	// ListByType returns all listings carrying the given type tag.
	ListByType(ctx context.Context, typ string) ([]Coupon, error)
}

// Defaults are the placeholder values substituted when a listing is
// missing fields at purchase time.
type Defaults struct {
	CouponName  string
	CouponValue float64
	SellerID    string
	SellerEmail string
}

// Placeholders matches the values the mobile app historically wrote.
var Placeholders = Defaults{
	CouponName:  "Unnamed",
	CouponValue: 500,
	SellerID:    "unknown",
	SellerEmail: "unknown@email.com",
}

// Service owns the coupon transfer operation and its read-only
// collaborators (discovery and exchange search).
type Service struct {
	store    Store
	defaults Defaults
	now      func() time.Time
}

func NewService(store Store, defaults Defaults) *Service {
	return &Service{store: store, defaults: defaults, now: time.Now}
}

// Purchase atomically converts a "sell" listing into a "buy" transaction
// record. The existence and expiry checks run inside the store's atomic
// unit so a stale read can never be acted on: a concurrent second buyer
// either observes the listing already deleted (ErrNotFound) or loses the
// commit (ErrStoreFailure).
func (s *Service) Purchase(ctx context.Context, buyer Identity, couponID string) (*Transaction, error) {
	if buyer.ID == "" {
		return nil, ErrUnauthenticated
	}

	var rec *Transaction
	err := s.store.Transfer(ctx, couponID, func(c *Coupon) (*Transaction, error) {
		if c == nil {
			return nil, ErrNotFound
		}
		now := s.now()
		if !c.ExpiryDate.After(now) {
			return nil, ErrExpired
		}
		rec = s.record(buyer, c, now)
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) record(buyer Identity, c *Coupon, now time.Time) *Transaction {
	name := c.Name
	if name == "" {
		name = s.defaults.CouponName
	}
	value := c.Value
	if value <= 0 {
		value = s.defaults.CouponValue
	}
	sellerID := c.UserID
	if sellerID == "" {
		sellerID = s.defaults.SellerID
	}
	sellerEmail := c.UserEmail
	if sellerEmail == "" {
		sellerEmail = s.defaults.SellerEmail
	}
	return &Transaction{
		ID:          buyer.ID + "_" + c.ID,
		CouponID:    c.ID,
		CouponName:  name,
		CouponValue: value,
		BuyerID:     buyer.ID,
		BuyerEmail:  buyer.Email,
		SellerID:    sellerID,
		SellerEmail: sellerEmail,
		Type:        TypeBuy,
		CreatedAt:   now,
	}
}

// ListForSale returns every "sell" listing not owned by the viewer,
// sorted ascending by expiry date.
func (s *Service) ListForSale(ctx context.Context, viewer Identity) ([]Coupon, error) {
	if viewer.ID == "" {
		return nil, ErrUnauthenticated
	}
	all, err := s.store.ListByType(ctx, TypeSell)
	if err != nil {
		return nil, err
	}
	out := make([]Coupon, 0, len(all))
	for _, c := range all {
		if c.UserID == viewer.ID {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(out[j].ExpiryDate)
	})
	return out, nil
}

// ExchangeSearch finds other users' listings worth proposing a swap for:
// same category, or same face value as the offered price.
func (s *Service) ExchangeSearch(ctx context.Context, viewer Identity, category string, price float64) ([]Coupon, error) {
	if viewer.ID == "" {
		return nil, ErrUnauthenticated
	}
	all, err := s.store.ListByType(ctx, TypeSell)
	if err != nil {
		return nil, err
	}
	var out []Coupon
	for _, c := range all {
		if c.UserID == viewer.ID {
			continue
		}
		if strings.EqualFold(c.Category, category) || c.Value == price {
			out = append(out, c)
		}
	}
	return out, nil
}
