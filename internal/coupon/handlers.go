package coupon

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

var svc *Service

// Init wires the package-level service against the shared pool. Called
// once from main after db.Init.
func Init(pool *pgxpool.Pool) {
	svc = NewService(NewPGStore(pool), Placeholders)
}

// identity pulls the signed-in user from the context values set by the
// JWT middleware. A zero Identity means unauthenticated.
func identity(c echo.Context) Identity {
	id, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	return Identity{ID: id, Email: email}
}
