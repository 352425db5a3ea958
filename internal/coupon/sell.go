package coupon

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/db"
	"github.com/couponhub/couponhub/internal/feed"
)

type CreateListingRequest struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Details    string `json:"details"`
	Category   string `json:"category"`
	ExpiryDate string `json:"expiry_date"` // DD-MM-YYYY
}

// CreateListing puts a coupon up for sale.
// POST /coupons
func CreateListing(c echo.Context) error {
	me := identity(c)
	if me.ID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Value == "" || req.Details == "" || req.Category == "" || req.ExpiryDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please fill in all fields"})
	}

	value, err := strconv.ParseFloat(req.Value, 64)
	if err != nil || value <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be a positive number"})
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expiry date must be DD-MM-YYYY"})
	}
	if !expiry.After(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expiry date must be in the future"})
	}

	listing := Coupon{
		ID:         uuid.New().String(),
		UserID:     me.ID,
		UserEmail:  me.Email,
		Name:       req.Name,
		Value:      value,
		Details:    req.Details,
		Category:   req.Category,
		ExpiryDate: expiry,
		Type:       TypeSell,
		CreatedAt:  time.Now(),
	}

	_, err = db.Conn.Exec(c.Request().Context(), `
		INSERT INTO coupons (id, user_id, user_email, name, value, details, category, expiry_date, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		listing.ID, listing.UserID, listing.UserEmail, listing.Name, listing.Value,
		listing.Details, listing.Category, listing.ExpiryDate, listing.Type, listing.CreatedAt,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}

	feed.BroadcastListingCreated(listing.ID, listing.Name, listing.Value)

	return c.JSON(http.StatusCreated, echo.Map{
		"coupon":  listing,
		"message": "coupon listed for sale",
	})
}

// parseExpiry reads the DD-MM-YYYY form used by the mobile clients and
// pins the expiry to the end of that day.
func parseExpiry(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("expected DD-MM-YYYY, got %q", s)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("expected DD-MM-YYYY, got %q", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	t := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)
	// time.Date normalizes overflow (e.g. 31-02) into the next month
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
