package main

import (
	"net/http"
	"os"
	"time"

	"usergate/api/handler"
	apiMiddleware "usergate/api/middleware"
	"usergate/api/routes"
	"usergate/config"
	"usergate/internal/repository"
	"usergate/internal/service"
	"usergate/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	jwtManager := utils.JWTManager{
		Secret:         secret,
		Issuer:         os.Getenv("JWT_ISSUER"),
		AccessTokenTTL: time.Hour,
	}

	userRepo := repository.NewUserRepository(db)
	deactivationRepo := repository.NewDeactivationRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	passwordHasher := service.BcryptPasswordHasher{}
	accessIssuer := service.JWTAccessIssuer{Manager: &jwtManager}
	emailSender := service.NewResendEmailSender(os.Getenv("RESEND_API_KEY"), os.Getenv("EMAIL_FROM"))

	authService := service.NewAuthService(userRepo, passwordHasher, accessIssuer)
	userService := service.NewUserService(userRepo, passwordHasher)
	deactivationService := service.NewDeactivationService(userRepo, deactivationRepo, emailSender, service.RealClock{}, logger)
	historyService := service.NewHistoryService(historyRepo)

	authHandler := handler.NewAuthHandler(authService, &jwtManager, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	deactivationHandler := handler.NewDeactivationHandler(deactivationService, validate)
	historyHandler := handler.NewHistoryHandler(historyService)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	adminGuard := apiMiddleware.AdminGuard{Users: userRepo, Deactivations: deactivationRepo}

	router := routes.NewRouter(app, authHandler, userHandler, deactivationHandler, historyHandler, authMiddleware, adminGuard)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
