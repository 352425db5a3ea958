package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/couponhub/couponhub/internal/db"
)

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Age     string `json:"age"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	DOB     string `json:"dob"`
}

// UpdateProfile merges the submitted fields into the stored profile;
// empty fields leave the stored value untouched.
// PATCH /user/profile
func UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    gender = COALESCE(NULLIF($2, ''), gender),
		    age = COALESCE(NULLIF($3, ''), age),
		    phone = COALESCE(NULLIF($4, ''), phone),
		    address = COALESCE(NULLIF($5, ''), address),
		    dob = COALESCE(NULLIF($6, ''), dob)
		WHERE id = $7
	`
	_, err := db.Conn.Exec(c.Request().Context(), query,
		req.Name, req.Gender, req.Age, req.Phone, req.Address, req.DOB, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated successfully",
	})
}
