package coupon

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/db"
)

// MyListings returns the caller's own coupons currently up for sale.
// GET /coupons/mine
func MyListings(c echo.Context) error {
	me := identity(c)
	if me.ID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(),
		`SELECT `+couponColumns+` FROM coupons
		 WHERE user_id = $1 AND type = $2 ORDER BY created_at DESC`,
		me.ID, TypeSell,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch listings"})
	}
	defer rows.Close()

	var coupons []Coupon
	for rows.Next() {
		var cp Coupon
		if err := scanCoupon(rows, &cp); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read coupon record"})
		}
		coupons = append(coupons, cp)
	}
	return c.JSON(http.StatusOK, echo.Map{"coupons": coupons})
}

// MyPurchases returns the caller's completed purchases, newest first.
// GET /coupons/purchases
func MyPurchases(c echo.Context) error {
	me := identity(c)
	if me.ID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(), `
		SELECT id, coupon_id, coupon_name, coupon_value, buyer_id, buyer_email,
		       seller_id, seller_email, type, created_at
		FROM transactions
		WHERE buyer_id = $1 AND type = $2
		ORDER BY created_at DESC`,
		me.ID, TypeBuy,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch purchases"})
	}
	defer rows.Close()

	var recs []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.CouponID, &t.CouponName, &t.CouponValue,
			&t.BuyerID, &t.BuyerEmail, &t.SellerID, &t.SellerEmail, &t.Type, &t.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read transaction record"})
		}
		recs = append(recs, t)
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": recs})
}
