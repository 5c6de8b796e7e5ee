package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey = "auth_user_id"
	contextRoleKey   = "auth_role"
	contextNameKey   = "auth_name"
	contextEmailKey  = "auth_email"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, role string, name string, email string) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextRoleKey, role)
	c.Set(contextNameKey, name)
	c.Set(contextEmailKey, email)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func RoleFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(string)
	return role, ok
}

func NameFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextNameKey)
	name, ok := value.(string)
	return name, ok
}

func EmailFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextEmailKey)
	email, ok := value.(string)
	return email, ok
}
