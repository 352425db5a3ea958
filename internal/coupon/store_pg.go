package coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on Postgres. The transfer unit locks the
// listing row with SELECT ... FOR UPDATE so two concurrent purchases of
// the same coupon serialize: the loser re-reads after the winner's delete
// and finds no row.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const couponColumns = `id, user_id, COALESCE(user_email, ''), COALESCE(name, ''),
       COALESCE(value, 0), COALESCE(details, ''), COALESCE(category, ''),
       expiry_date, type, created_at`

func scanCoupon(row pgx.Row, c *Coupon) error {
	return row.Scan(&c.ID, &c.UserID, &c.UserEmail, &c.Name, &c.Value,
		&c.Details, &c.Category, &c.ExpiryDate, &c.Type, &c.CreatedAt)
}

func (s *PGStore) Transfer(ctx context.Context, couponID string, fn func(*Coupon) (*Transaction, error)) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	defer tx.Rollback(ctx)

	var current *Coupon
	var c Coupon
	err = scanCoupon(tx.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = $1 FOR UPDATE`, couponID), &c)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// leave current nil; fn decides what a missing listing means
	case err != nil:
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	default:
		current = &c
	}

	rec, err := fn(current)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, coupon_id, coupon_name, coupon_value,
			buyer_id, buyer_email, seller_id, seller_email, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			coupon_name = EXCLUDED.coupon_name,
			coupon_value = EXCLUDED.coupon_value,
			seller_id = EXCLUDED.seller_id,
			seller_email = EXCLUDED.seller_email,
			created_at = EXCLUDED.created_at`,
		rec.ID, rec.CouponID, rec.CouponName, rec.CouponValue,
		rec.BuyerID, rec.BuyerEmail, rec.SellerID, rec.SellerEmail,
		rec.Type, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, couponID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return nil
}

func (s *PGStore) ListByType(ctx context.Context, typ string) ([]Coupon, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE type = $1`, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []Coupon
	for rows.Next() {
		var c Coupon
		if err := scanCoupon(rows, &c); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}
