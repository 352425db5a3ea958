package coupon

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ExchangeSearchRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// SearchExchange finds other users' coupons matching either the offered
// category or the offered price, as swap candidates.
// POST /coupons/exchange/search
func SearchExchange(c echo.Context) error {
	var req ExchangeSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Category == "" || req.Price == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please fill in all fields"})
	}
	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a number"})
	}

	matches, err := svc.ExchangeSearch(c.Request().Context(), identity(c), req.Category, price)
	if err != nil {
		if err == ErrUnauthenticated {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not search coupons"})
	}
	if matches == nil {
		matches = []Coupon{}
	}
	return c.JSON(http.StatusOK, echo.Map{"coupons": matches})
}
