package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/alerts"
	"github.com/couponhub/couponhub/internal/db"
	"github.com/couponhub/couponhub/internal/feed"
)

type AdminListing struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// GET /admin/listings
func ListListings(c echo.Context) error {
	rows, err := db.Conn.Query(context.Background(), `
		SELECT id, user_id, COALESCE(user_email, ''), COALESCE(name, ''),
		       COALESCE(value, 0), COALESCE(category, ''), expiry_date, created_at
		FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch listings"})
	}
	defer rows.Close()

	var listings []AdminListing
	for rows.Next() {
		var l AdminListing
		if err := rows.Scan(&l.ID, &l.UserID, &l.UserEmail, &l.Name, &l.Value,
			&l.Category, &l.ExpiryDate, &l.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read listing record"})
		}
		listings = append(listings, l)
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": listings})
}

// POST /admin/listings/:id/remove
// Takes an inappropriate listing off the market and tells its owner.
func RemoveListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "listing id required"})
	}

	var ownerID, name string
	err := db.Conn.QueryRow(context.Background(),
		`DELETE FROM coupons WHERE id = $1 RETURNING user_id, COALESCE(name, '')`, listingID).
		Scan(&ownerID, &name)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	feed.BroadcastListingSold(listingID, name)
	_ = alerts.CreateNotification(ownerID, "listing_removed", "Listing removed",
		"Your listing "+name+" was removed by a moderator", listingID)

	return c.JSON(http.StatusOK, echo.Map{"message": "listing removed", "listing_id": listingID})
}
