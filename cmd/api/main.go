package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	appmw "github.com/couponhub/couponhub/internal/middleware"

	"github.com/couponhub/couponhub/internal/admin"
	"github.com/couponhub/couponhub/internal/alerts"
	"github.com/couponhub/couponhub/internal/auth"
	"github.com/couponhub/couponhub/internal/coupon"
	"github.com/couponhub/couponhub/internal/db"
	"github.com/couponhub/couponhub/internal/feed"
	"github.com/couponhub/couponhub/internal/user"
)

func main() {
	// Init subsystems
	_ = godotenv.Load()
	db.Init()
	alerts.Init()
	coupon.Init(db.Conn)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// Public auth routes
	e.POST("/signup", auth.Signup)
	e.POST("/login", auth.Login)
	e.POST("/auth/password/request", auth.RequestPasswordReset)
	e.POST("/auth/password/reset", auth.ResetPassword)
	e.POST("/auth/admin/bootstrap", auth.BootstrapAdmin)
	e.GET("/user/:id/profile", user.GetPublicProfile)

	// Authenticated group
	g := e.Group("")
	g.Use(appmw.JWTMiddleware)

	// Me and profile
	g.GET("/me", auth.Me)
	g.GET("/user/profile", user.GetProfile)
	g.PATCH("/user/profile", user.UpdateProfile)

	// Marketplace
	g.POST("/coupons", coupon.CreateListing)
	g.GET("/coupons", coupon.ListCoupons)
	g.GET("/coupons/sections", coupon.ListCouponSections)
	g.GET("/coupons/mine", coupon.MyListings)
	g.GET("/coupons/purchases", coupon.MyPurchases)
	g.POST("/coupons/:id/buy", coupon.BuyCoupon)
	g.POST("/coupons/exchange/search", coupon.SearchExchange)

	// Realtime feed
	g.GET("/ws/marketplace", feed.MarketplaceWS)

	// In-app notifications
	g.GET("/notifications", alerts.ListNotifications)
	g.POST("/notifications/:id/read", alerts.MarkNotificationRead)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(appmw.JWTMiddleware)
	adminGroup.Use(appmw.AdminGuard)
	adminGroup.GET("/stats", admin.Stats)
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.POST("/users/:id/suspend", admin.SuspendUser)
	adminGroup.POST("/users/:id/activate", admin.ActivateUser)
	adminGroup.GET("/listings", admin.ListListings)
	adminGroup.POST("/listings/:id/remove", admin.RemoveListing)
	adminGroup.GET("/transactions", admin.ListTransactions)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("API server listening on :%s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
