package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var users, listings, expired, transactions int
	var volume float64

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM coupons WHERE type = 'sell'`).Scan(&listings)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM coupons WHERE expiry_date < NOW()`).Scan(&expired)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&transactions)
	_ = db.Conn.QueryRow(ctx, `SELECT COALESCE(SUM(coupon_value), 0) FROM transactions`).Scan(&volume)

	return c.JSON(http.StatusOK, echo.Map{
		"users":            users,
		"active_listings":  listings,
		"expired_listings": expired,
		"transactions":     transactions,
		"total_volume":     volume,
	})
}
