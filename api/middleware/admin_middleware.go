package middleware

import (
	"net/http"

	"usergate/internal/entity"
	"usergate/internal/repository"

	"github.com/labstack/echo/v4"
)

// AdminGuard re-validates the acting admin against the store on every
// request. Token claims stay syntactically valid for their whole lifetime,
// so a role change or a deactivation after issuance would otherwise go
// unnoticed until expiry.
type AdminGuard struct {
	Users         repository.UserRepository
	Deactivations repository.DeactivationRepository
}

// RequireActiveAdmin runs after RequireAuth. It refuses callers whose
// current role is no longer admin (403) and callers whose own account is
// currently deactivated (423), regardless of what the token claims say.
func (g AdminGuard) RequireActiveAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := UserIDFromContext(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		ctx := c.Request().Context()
		user, err := g.Users.FindByID(ctx, userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		if user.Role != entity.UserRoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}

		deactivated, err := g.Deactivations.IsDeactivated(ctx, userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if deactivated {
			return echo.NewHTTPError(http.StatusLocked, "account is deactivated")
		}
		return next(c)
	}
}
