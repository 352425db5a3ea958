package user

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/db"
)

// GetPublicProfile returns what a prospective buyer may see about a
// seller: display name, tenure and how many coupons they have on sale.
// GET /user/:id/profile
func GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}

	var (
		id        string
		name      string
		createdAt time.Time
		listings  int
	)
	err := db.Conn.QueryRow(context.Background(), `
		SELECT u.id, COALESCE(u.name, ''), u.created_at,
		       (SELECT COUNT(*) FROM coupons WHERE user_id = u.id AND type = 'sell')
		FROM users u WHERE u.id = $1`, userID).
		Scan(&id, &name, &createdAt, &listings)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":              id,
		"name":            name,
		"member_since":    createdAt.Format(time.RFC3339),
		"active_listings": listings,
	})
}
