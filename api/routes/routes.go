package routes

import (
	"time"

	"usergate/api/handler"
	"usergate/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Deactivations  *handler.DeactivationHandler
	Histories      *handler.HistoryHandler
	AuthMiddleware middleware.AuthMiddleware
	AdminGuard     middleware.AdminGuard
	LoginRate      *middleware.RateLimiter
	SignupRate     *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	deactivationHandler *handler.DeactivationHandler,
	historyHandler *handler.HistoryHandler,
	authMiddleware middleware.AuthMiddleware,
	adminGuard middleware.AdminGuard,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		Deactivations:  deactivationHandler,
		Histories:      historyHandler,
		AuthMiddleware: authMiddleware,
		AdminGuard:     adminGuard,
		LoginRate:      middleware.NewRateLimiter(rate.Limit(5.0/60.0), 5, 10*time.Minute),
		SignupRate:     middleware.NewRateLimiter(rate.Limit(3.0/600.0), 3, 30*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/api/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.GET("/api/auth/validate", r.Auth.Validate)

	e.POST("/api/users", r.Users.Create, r.SignupRate.Middleware())

	admin := []echo.MiddlewareFunc{r.AuthMiddleware.RequireAuth, middleware.RequireRole("admin")}
	// State-changing routes re-check the actor's live role and status.
	activeAdmin := append(append([]echo.MiddlewareFunc{}, admin...), r.AdminGuard.RequireActiveAdmin)

	e.GET("/api/users", r.Users.List, admin...)
	e.GET("/api/users/activated", r.Users.ListActivated, admin...)
	e.GET("/api/users/deactivated", r.Users.ListDeactivated, admin...)
	e.GET("/api/users/:userId", r.Users.GetByID, admin...)
	e.PUT("/api/users/:userId", r.Users.Update, activeAdmin...)
	e.DELETE("/api/users/:userId", r.Users.Delete, activeAdmin...)

	e.POST("/api/users/:userId/deactivate", r.Deactivations.Deactivate, activeAdmin...)
	e.PUT("/api/users/:userId/reactivate", r.Deactivations.Reactivate, activeAdmin...)
	e.GET("/api/users/:userId/deactivated", r.Deactivations.GetDeactivatedUser, admin...)
	e.DELETE("/api/users/:deactivatedId/deactivated", r.Deactivations.Delete, activeAdmin...)
	e.GET("/api/deactivations", r.Deactivations.List, admin...)

	e.GET("/api/users/:userId/deactivation-history", r.Histories.GetByUser, admin...)
	e.GET("/api/deactivation-history", r.Histories.List, admin...)
}
