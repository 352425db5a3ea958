package coupon

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// ListCoupons returns every coupon the viewer can buy, soonest expiry
// first.
// GET /coupons
func ListCoupons(c echo.Context) error {
	coupons, err := svc.ListForSale(c.Request().Context(), identity(c))
	if err != nil {
		if err == ErrUnauthenticated {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch coupons"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coupons": coupons})
}

// ListCouponSections returns buyable coupons grouped by expiry bucket,
// optionally narrowed by a case-insensitive name search.
// GET /coupons/sections?q=...&section=...
func ListCouponSections(c echo.Context) error {
	coupons, err := svc.ListForSale(c.Request().Context(), identity(c))
	if err != nil {
		if err == ErrUnauthenticated {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch coupons"})
	}

	if q := c.QueryParam("q"); q != "" {
		filtered := coupons[:0]
		for _, cp := range coupons {
			if strings.Contains(strings.ToLower(cp.Name), strings.ToLower(q)) {
				filtered = append(filtered, cp)
			}
		}
		coupons = filtered
	}

	sections := Categorize(coupons, time.Now())

	// A single section can be requested by its title, mirroring the
	// picker filter on the buy screen.
	if want := c.QueryParam("section"); want != "" {
		for _, s := range sections {
			if s.Title == want {
				return c.JSON(http.StatusOK, echo.Map{"sections": []Section{s}})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"sections": []Section{}})
	}

	return c.JSON(http.StatusOK, echo.Map{"sections": sections})
}
