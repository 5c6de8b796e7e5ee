package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"usergate/internal/dto"
	"usergate/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type HistoryHandler struct {
	Service *service.HistoryService
}

func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: svc}
}

func (h *HistoryHandler) GetByUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	history, err := h.Service.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}

	response := dto.HistoryResponseFromEntity(history)
	if field := c.QueryParam("field"); field != "" {
		requested := splitFields(field)
		projected, invalid := response.Project(requested)
		if len(invalid) > 0 {
			return writeError(c, http.StatusBadRequest,
				fmt.Errorf("%w: %s", service.ErrUnknownField, strings.Join(invalid, ", ")))
		}
		return c.JSON(http.StatusOK, projected)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *HistoryHandler) List(c echo.Context) error {
	histories, err := h.Service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.HistoryResponsesFromEntities(histories))
}

func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}
