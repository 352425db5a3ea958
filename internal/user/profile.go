package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/coupon"
	"github.com/couponhub/couponhub/internal/db"
)

// GetProfile returns the caller's contact details together with their
// marketplace activity: coupons still listed for sale and completed
// purchases.
// GET /user/profile
func GetProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	var email string
	var p Profile
	err := db.Conn.QueryRow(ctx, `
		SELECT email, COALESCE(name, ''), COALESCE(gender, ''), COALESCE(age, ''),
		       COALESCE(phone, ''), COALESCE(address, ''), COALESCE(dob, '')
		FROM users WHERE id = $1`, userID).
		Scan(&email, &p.Name, &p.Gender, &p.Age, &p.Phone, &p.Address, &p.DOB)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	// Selling activity: own listings still on the market
	selling := []coupon.Coupon{}
	rows, err := db.Conn.Query(ctx, `
		SELECT id, user_id, COALESCE(user_email, ''), COALESCE(name, ''),
		       COALESCE(value, 0), COALESCE(details, ''), COALESCE(category, ''),
		       expiry_date, type, created_at
		FROM coupons WHERE user_id = $1 AND type = $2 ORDER BY created_at DESC`,
		userID, coupon.TypeSell)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch listings"})
	}
	defer rows.Close()
	for rows.Next() {
		var cp coupon.Coupon
		if err := rows.Scan(&cp.ID, &cp.UserID, &cp.UserEmail, &cp.Name, &cp.Value,
			&cp.Details, &cp.Category, &cp.ExpiryDate, &cp.Type, &cp.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read coupon record"})
		}
		selling = append(selling, cp)
	}

	// Buying activity: completed purchases
	bought := []coupon.Transaction{}
	trows, err := db.Conn.Query(ctx, `
		SELECT id, coupon_id, coupon_name, coupon_value, buyer_id, buyer_email,
		       seller_id, seller_email, type, created_at
		FROM transactions WHERE buyer_id = $1 AND type = $2 ORDER BY created_at DESC`,
		userID, coupon.TypeBuy)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch purchases"})
	}
	defer trows.Close()
	for trows.Next() {
		var t coupon.Transaction
		if err := trows.Scan(&t.ID, &t.CouponID, &t.CouponName, &t.CouponValue,
			&t.BuyerID, &t.BuyerEmail, &t.SellerID, &t.SellerEmail, &t.Type, &t.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read transaction record"})
		}
		bought = append(bought, t)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"email":   email,
		"profile": p,
		"selling": selling,
		"bought":  bought,
	})
}
