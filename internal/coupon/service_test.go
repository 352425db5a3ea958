package coupon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory Store whose transfer unit is serialized by a
// mutex, mirroring the all-or-nothing semantics of the Postgres store.
type fakeStore struct {
	mu           sync.Mutex
	coupons      map[string]Coupon
	transactions map[string]Transaction
	failCommit   bool
}

func newFakeStore(coupons ...Coupon) *fakeStore {
	f := &fakeStore{
		coupons:      make(map[string]Coupon),
		transactions: make(map[string]Transaction),
	}
	for _, c := range coupons {
		f.coupons[c.ID] = c
	}
	return f
}

func (f *fakeStore) Transfer(_ context.Context, couponID string, fn func(*Coupon) (*Transaction, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var current *Coupon
	if c, ok := f.coupons[couponID]; ok {
		cc := c
		current = &cc
	}
	rec, err := fn(current)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	if f.failCommit {
		return fmt.Errorf("%w: simulated write conflict", ErrStoreFailure)
	}
	f.transactions[rec.ID] = *rec
	delete(f.coupons, couponID)
	return nil
}

func (f *fakeStore) ListByType(_ context.Context, typ string) ([]Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Coupon
	for _, c := range f.coupons {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out, nil
}

var testNow = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	s := NewService(store, Placeholders)
	s.now = func() time.Time { return testNow }
	return s
}

func listing(id, owner string, expiry time.Time) Coupon {
	return Coupon{
		ID:         id,
		UserID:     owner,
		UserEmail:  owner + "@example.com",
		Name:       "Pizza 50% off",
		Value:      250,
		Details:    "Valid on large pizzas",
		Category:   "Food",
		ExpiryDate: expiry,
		Type:       TypeSell,
		CreatedAt:  testNow.Add(-24 * time.Hour),
	}
}

func TestPurchase(t *testing.T) {
	alice := Identity{ID: "alice", Email: "alice@example.com"}

	tests := []struct {
		name     string
		buyer    Identity
		couponID string
		coupons  []Coupon
		wantErr  error
	}{
		{
			name:     "valid listing succeeds",
			buyer:    alice,
			couponID: "c1",
			coupons:  []Coupon{listing("c1", "bob", testNow.Add(48*time.Hour))},
		},
		{
			name:     "missing listing",
			buyer:    alice,
			couponID: "nope",
			coupons:  []Coupon{listing("c1", "bob", testNow.Add(48*time.Hour))},
			wantErr:  ErrNotFound,
		},
		{
			name:     "expired listing",
			buyer:    alice,
			couponID: "c1",
			coupons:  []Coupon{listing("c1", "bob", testNow.Add(-time.Minute))},
			wantErr:  ErrExpired,
		},
		{
			name:     "expiry exactly now is expired",
			buyer:    alice,
			couponID: "c1",
			coupons:  []Coupon{listing("c1", "bob", testNow)},
			wantErr:  ErrExpired,
		},
		{
			name:     "zero expiry is expired",
			buyer:    alice,
			couponID: "c1",
			coupons:  []Coupon{listing("c1", "bob", time.Time{})},
			wantErr:  ErrExpired,
		},
		{
			name:     "no signed-in identity",
			buyer:    Identity{},
			couponID: "c1",
			coupons:  []Coupon{listing("c1", "bob", testNow.Add(48*time.Hour))},
			wantErr:  ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(tt.coupons...)
			s := newTestService(store)

			rec, err := s.Purchase(context.Background(), tt.buyer, tt.couponID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Purchase error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if rec != nil {
					t.Fatalf("Purchase returned record %+v on failure", rec)
				}
				if len(store.transactions) != 0 {
					t.Fatalf("failed purchase wrote %d transaction(s)", len(store.transactions))
				}
				if len(store.coupons) != len(tt.coupons) {
					t.Fatalf("failed purchase mutated listings: %d left, want %d", len(store.coupons), len(tt.coupons))
				}
				return
			}

			if rec.ID != tt.buyer.ID+"_"+tt.couponID {
				t.Errorf("record id = %q, want %q", rec.ID, tt.buyer.ID+"_"+tt.couponID)
			}
			if rec.Type != TypeBuy {
				t.Errorf("record type = %q, want %q", rec.Type, TypeBuy)
			}
			if !rec.CreatedAt.Equal(testNow) {
				t.Errorf("record created at %v, want %v", rec.CreatedAt, testNow)
			}
			if _, still := store.coupons[tt.couponID]; still {
				t.Error("listing still exists after successful purchase")
			}
			if _, ok := store.transactions[rec.ID]; !ok {
				t.Error("transaction record not persisted")
			}
		})
	}
}

func TestPurchaseAppliesPlaceholders(t *testing.T) {
	bare := Coupon{
		ID:         "c1",
		ExpiryDate: testNow.Add(time.Hour),
		Type:       TypeSell,
	}
	store := newFakeStore(bare)
	s := newTestService(store)

	rec, err := s.Purchase(context.Background(), Identity{ID: "alice", Email: "alice@example.com"}, "c1")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if rec.CouponName != Placeholders.CouponName {
		t.Errorf("coupon name = %q, want %q", rec.CouponName, Placeholders.CouponName)
	}
	if rec.CouponValue != Placeholders.CouponValue {
		t.Errorf("coupon value = %v, want %v", rec.CouponValue, Placeholders.CouponValue)
	}
	if rec.SellerID != Placeholders.SellerID {
		t.Errorf("seller id = %q, want %q", rec.SellerID, Placeholders.SellerID)
	}
	if rec.SellerEmail != Placeholders.SellerEmail {
		t.Errorf("seller email = %q, want %q", rec.SellerEmail, Placeholders.SellerEmail)
	}
}

func TestPurchaseConcurrentSingleWinner(t *testing.T) {
	store := newFakeStore(listing("c1", "carol", testNow.Add(48*time.Hour)))
	s := newTestService(store)

	buyers := []Identity{
		{ID: "alice", Email: "alice@example.com"},
		{ID: "bob", Email: "bob@example.com"},
	}

	errs := make([]error, len(buyers))
	var wg sync.WaitGroup
	for i, b := range buyers {
		wg.Add(1)
		go func(i int, b Identity) {
			defer wg.Done()
			_, errs[i] = s.Purchase(context.Background(), b, "c1")
		}(i, b)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreFailure):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("got %d winner(s) and %d loser(s), want exactly one of each", wins, losses)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("%d transaction records after concurrent purchase, want 1", len(store.transactions))
	}
	if _, still := store.coupons["c1"]; still {
		t.Fatal("listing still exists after winning purchase")
	}
}

func TestPurchaseRetryAfterSuccess(t *testing.T) {
	store := newFakeStore(listing("c1", "carol", testNow.Add(48*time.Hour)))
	s := newTestService(store)
	alice := Identity{ID: "alice", Email: "alice@example.com"}

	if _, err := s.Purchase(context.Background(), alice, "c1"); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	_, err := s.Purchase(context.Background(), alice, "c1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("retried purchase error = %v, want ErrNotFound", err)
	}
	if len(store.transactions) != 1 {
		t.Fatalf("%d transaction records after retry, want 1", len(store.transactions))
	}
	if _, ok := store.transactions["alice_c1"]; !ok {
		t.Fatal("expected record keyed alice_c1")
	}
}

func TestPurchaseCommitConflict(t *testing.T) {
	store := newFakeStore(listing("c1", "carol", testNow.Add(48*time.Hour)))
	store.failCommit = true
	s := newTestService(store)

	_, err := s.Purchase(context.Background(), Identity{ID: "alice", Email: "a@example.com"}, "c1")
	if !errors.Is(err, ErrStoreFailure) {
		t.Fatalf("Purchase error = %v, want ErrStoreFailure", err)
	}
	if len(store.transactions) != 0 {
		t.Fatal("conflicting purchase wrote a transaction record")
	}
	if _, ok := store.coupons["c1"]; !ok {
		t.Fatal("conflicting purchase deleted the listing")
	}
}

func TestListForSale(t *testing.T) {
	store := newFakeStore(
		listing("soon", "bob", testNow.Add(24*time.Hour)),
		listing("later", "carol", testNow.Add(96*time.Hour)),
		listing("middle", "bob", testNow.Add(48*time.Hour)),
		listing("mine", "alice", testNow.Add(12*time.Hour)),
	)
	s := newTestService(store)

	got, err := s.ListForSale(context.Background(), Identity{ID: "alice"})
	if err != nil {
		t.Fatalf("ListForSale: %v", err)
	}

	wantOrder := []string{"soon", "middle", "later"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d coupons, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}

	if _, err := s.ListForSale(context.Background(), Identity{}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous ListForSale error = %v, want ErrUnauthenticated", err)
	}
}

func TestExchangeSearch(t *testing.T) {
	food := listing("food", "bob", testNow.Add(24*time.Hour))

	travel := listing("travel", "carol", testNow.Add(24*time.Hour))
	travel.Category = "Travel"
	travel.Value = 100

	pricey := listing("pricey", "dave", testNow.Add(24*time.Hour))
	pricey.Category = "Electronics"
	pricey.Value = 100

	mine := listing("mine", "alice", testNow.Add(24*time.Hour))
	mine.Value = 100

	store := newFakeStore(food, travel, pricey, mine)
	s := newTestService(store)

	got, err := s.ExchangeSearch(context.Background(), Identity{ID: "alice"}, "food", 100)
	if err != nil {
		t.Fatalf("ExchangeSearch: %v", err)
	}

	ids := make(map[string]bool, len(got))
	for _, c := range got {
		ids[c.ID] = true
	}
	for _, want := range []string{"food", "travel", "pricey"} {
		if !ids[want] {
			t.Errorf("expected %q in results, got %v", want, ids)
		}
	}
	if ids["mine"] {
		t.Error("own listing included in exchange results")
	}
	if len(got) != 3 {
		t.Errorf("got %d results, want 3", len(got))
	}
}
