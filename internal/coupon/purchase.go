package coupon

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/alerts"
	"github.com/couponhub/couponhub/internal/feed"
)

// BuyCoupon performs the atomic transfer: validate the listing, write the
// transaction record and delete the listing in one unit.
// POST /coupons/:id/buy
func BuyCoupon(c echo.Context) error {
	couponID := c.Param("id")
	if couponID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "coupon id required"})
	}

	rec, err := svc.Purchase(c.Request().Context(), identity(c), couponID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, ErrExpired):
			return c.JSON(http.StatusGone, echo.Map{"error": err.Error()})
		case errors.Is(err, ErrStoreFailure):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete purchase"})
	}

	// Post-commit side effects: tell browsing clients to drop the listing
	// and queue receipts for both parties.
	feed.BroadcastListingSold(rec.CouponID, rec.CouponName)
	_ = alerts.EnqueuePurchaseReceipt(rec.ID, rec.CouponName, rec.BuyerID, rec.BuyerEmail, rec.CouponValue)
	if rec.SellerID != "" && rec.SellerID != Placeholders.SellerID {
		_ = alerts.EnqueueCouponSold(rec.ID, rec.CouponName, rec.SellerID, rec.SellerEmail, rec.CouponValue)
		_ = alerts.CreateNotification(rec.SellerID, "coupon_sold", "Your coupon has been sold",
			rec.CouponName+" was purchased", rec.ID)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"transaction": rec,
		"message":     "purchase complete",
	})
}
