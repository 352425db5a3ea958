package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/coupon"
	"github.com/couponhub/couponhub/internal/db"
)

// GET /admin/transactions
func ListTransactions(c echo.Context) error {
	limit := 50
	offset := 0
	if l := c.QueryParam("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	rows, err := db.Conn.Query(context.Background(), `
		SELECT id, coupon_id, coupon_name, coupon_value, buyer_id, buyer_email,
		       seller_id, seller_email, type, created_at
		FROM transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch transactions"})
	}
	defer rows.Close()

	var recs []coupon.Transaction
	for rows.Next() {
		var t coupon.Transaction
		if err := rows.Scan(&t.ID, &t.CouponID, &t.CouponName, &t.CouponValue,
			&t.BuyerID, &t.BuyerEmail, &t.SellerID, &t.SellerEmail, &t.Type, &t.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read transaction record"})
		}
		recs = append(recs, t)
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": recs})
}
