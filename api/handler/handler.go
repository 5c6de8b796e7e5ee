package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"usergate/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrSelfTarget),
		errors.Is(err, service.ErrNotDeactivated),
		errors.Is(err, service.ErrUnknownField):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAccountDeactivated):
		status = http.StatusLocked
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrDeactivationNotFound),
		errors.Is(err, service.ErrHistoryNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		// Store and infra errors never reach the caller verbatim.
		return writeError(c, status, errors.New("internal server error"))
	}
	return writeError(c, status, err)
}

func parsePageLimit(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
