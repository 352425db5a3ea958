package middleware

import (
	"github.com/labstack/echo/v4"
)

// AdminGuard restricts a route group to admin tokens. Must run after
// JWTMiddleware, which populates the role claim on the context.
var AdminGuard echo.MiddlewareFunc = RequireRoles("admin")
