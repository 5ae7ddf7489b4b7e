package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
)

// setupAuthContext injects a resolved user into the request context, the way
// the auth middleware does after validating a token.
func setupAuthContext(c echo.Context, userID uuid.UUID, role domain.Role) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleKey, role)
	c.SetRequest(c.Request().WithContext(ctx))
}
